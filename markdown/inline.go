// Package markdown converts a small markdown dialect into an htmlnode tree.
//
// A document is split into blocks on blank lines. Each block is classified as
// a paragraph, heading, code block, quote, unordered list or ordered list, and
// its text is tokenized into inline spans (bold, italic, code, images and
// links) that become the leaves of the tree. Nothing nests: list items and
// quotes hold inline text only.
package markdown

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedInline is returned when an emphasis, code, image or link
// section cannot be closed.
var ErrMalformedInline = errors.New("malformed inline markdown")

// SpanKind is the type of a TextSpan.
type SpanKind int

const (
	Plain SpanKind = iota
	Bold
	Italic
	Code
	Link
	Image
)

var spanKindNames = [...]string{
	Plain:  "plain",
	Bold:   "bold",
	Italic: "italic",
	Code:   "code",
	Link:   "link",
	Image:  "image",
}

func (k SpanKind) String() string {
	if k < 0 || int(k) >= len(spanKindNames) {
		return fmt.Sprintf("SpanKind(%d)", int(k))
	}
	return spanKindNames[k]
}

// TextSpan is a typed fragment of inline text. Target holds the URL of a
// link or image and is unused by every other kind. An empty Target on a
// link or image is an empty URL, as in "[a]()".
type TextSpan struct {
	Content string
	Kind    SpanKind
	Target  string
}

func (s TextSpan) String() string {
	if s.Kind == Link || s.Kind == Image {
		return fmt.Sprintf("%s(%q, %q)", s.Kind, s.Content, s.Target)
	}
	return fmt.Sprintf("%s(%q)", s.Kind, s.Content)
}

var (
	// Capture groups: 1. alt text, 2. source
	imageRegexp = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	// Capture groups: 1. link text, 2. destination
	linkRegexp = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
)

// Tokenize splits text into spans. Bold is resolved before italic because
// "*" is part of "**", and images before links because a link is part of
// an image. Each pass only looks at spans that are still plain.
func Tokenize(text string) ([]TextSpan, error) {
	spans := []TextSpan{{Content: text, Kind: Plain}}

	var err error
	if strings.Contains(text, "**") {
		if spans, err = splitDelimiter(spans, "**", Bold); err != nil {
			return nil, err
		}
	}
	if strings.Contains(text, "*") {
		if spans, err = splitDelimiter(spans, "*", Italic); err != nil {
			return nil, err
		}
	}
	if strings.Contains(text, "`") {
		if spans, err = splitDelimiter(spans, "`", Code); err != nil {
			return nil, err
		}
	}
	if strings.Contains(text, "![") {
		if spans, err = splitSections(spans, Image, extractImages); err != nil {
			return nil, err
		}
	}
	if strings.Contains(text, "[") {
		if spans, err = splitSections(spans, Link, extractLinks); err != nil {
			return nil, err
		}
	}

	return spans, nil
}

// splitDelimiter splits every plain span on delim. Pieces alternate between
// plain and kind, starting with plain; empty pieces are dropped.
func splitDelimiter(spans []TextSpan, delim string, kind SpanKind) ([]TextSpan, error) {
	out := make([]TextSpan, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		pieces := strings.Split(s.Content, delim)
		if len(pieces)%2 == 0 {
			return nil, fmt.Errorf("%w: unclosed %q in %q", ErrMalformedInline, delim, s.Content)
		}
		for i, piece := range pieces {
			if piece == "" {
				continue
			}
			if i%2 == 0 {
				out = append(out, TextSpan{Content: piece, Kind: Plain})
			} else {
				out = append(out, TextSpan{Content: piece, Kind: kind})
			}
		}
	}
	return out, nil
}

// section is an image or link found in plain text.
type section struct {
	literal string
	text    string
	target  string
}

func extractImages(text string) []section {
	var found []section
	for _, m := range imageRegexp.FindAllStringSubmatch(text, -1) {
		found = append(found, section{literal: m[0], text: m[1], target: m[2]})
	}
	return found
}

// extractLinks finds links that are not preceded by "!". A rejected match
// restarts the search one byte after its opening bracket.
func extractLinks(text string) []section {
	var found []section
	for pos := 0; pos < len(text); {
		m := linkRegexp.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		start, end := pos+m[0], pos+m[1]
		if start > 0 && text[start-1] == '!' {
			pos = start + 1
			continue
		}
		found = append(found, section{
			literal: text[start:end],
			text:    text[pos+m[2] : pos+m[3]],
			target:  text[pos+m[4] : pos+m[5]],
		})
		pos = end
	}
	return found
}

// splitSections cuts every plain span around the sections found by extract.
func splitSections(spans []TextSpan, kind SpanKind, extract func(string) []section) ([]TextSpan, error) {
	out := make([]TextSpan, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		found := extract(s.Content)
		if len(found) == 0 {
			out = append(out, s)
			continue
		}

		rest := s.Content
		for _, sec := range found {
			before, after, ok := strings.Cut(rest, sec.literal)
			if !ok {
				return nil, fmt.Errorf("%w: unclosed %s section %q in %q", ErrMalformedInline, kind, sec.literal, s.Content)
			}
			if before != "" {
				out = append(out, TextSpan{Content: before, Kind: Plain})
			}
			out = append(out, TextSpan{Content: sec.text, Kind: kind, Target: sec.target})
			rest = after
		}
		if rest != "" {
			out = append(out, TextSpan{Content: rest, Kind: Plain})
		}
	}
	return out, nil
}
