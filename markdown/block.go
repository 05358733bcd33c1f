package markdown

import (
	"fmt"
	"strconv"
	"strings"
)

// BlockType is the kind of a block of markdown text.
type BlockType int

const (
	Paragraph BlockType = iota
	Heading
	CodeBlock
	Quote
	UnorderedList
	OrderedList
)

var blockTypeNames = [...]string{
	Paragraph:     "paragraph",
	Heading:       "heading",
	CodeBlock:     "code",
	Quote:         "quote",
	UnorderedList: "unordered_list",
	OrderedList:   "ordered_list",
}

func (t BlockType) String() string {
	if t < 0 || int(t) >= len(blockTypeNames) {
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
	return blockTypeNames[t]
}

const fence = "```"

// Segment splits a document into blocks on blank lines. Blocks are trimmed
// of surrounding whitespace and empty blocks are dropped.
func Segment(document string) []string {
	segments := strings.Split(document, "\n\n")
	blocks := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		blocks = append(blocks, s)
	}
	return blocks
}

// Classify returns the type of a single block. Checks run in order and the
// first match wins; anything unrecognised is a paragraph.
func Classify(block string) BlockType {
	switch {
	case HeadingLevel(block) > 0:
		return Heading
	case strings.HasPrefix(block, fence) && strings.HasSuffix(block, fence):
		return CodeBlock
	}

	lines := strings.Split(block, "\n")
	switch {
	case allLines(lines, isQuoteLine):
		return Quote
	case allLines(lines, isOrderedItem):
		return OrderedList
	case allLines(lines, isUnorderedItem):
		return UnorderedList
	}
	return Paragraph
}

// HeadingLevel returns the number of leading "#" characters of a heading
// block, or 0 if the block is not a heading. A heading has one to six "#"
// followed by a space.
func HeadingLevel(block string) int {
	level := 0
	for level < len(block) && block[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(block) || block[level] != ' ' {
		return 0
	}
	return level
}

func allLines(lines []string, pred func(line string, i int) bool) bool {
	for i, line := range lines {
		if !pred(line, i) {
			return false
		}
	}
	return true
}

func isQuoteLine(line string, _ int) bool {
	return strings.HasPrefix(line, ">")
}

func isUnorderedItem(line string, _ int) bool {
	return strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ")
}

func isOrderedItem(line string, i int) bool {
	return strings.HasPrefix(line, orderedMarker(i))
}

// orderedMarker is the marker expected on the i-th (0-based) line of an
// ordered list.
func orderedMarker(i int) string {
	return strconv.Itoa(i+1) + ". "
}
