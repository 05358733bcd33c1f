package markdown

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func plain(s string) TextSpan        { return TextSpan{Content: s, Kind: Plain} }
func bold(s string) TextSpan         { return TextSpan{Content: s, Kind: Bold} }
func italic(s string) TextSpan       { return TextSpan{Content: s, Kind: Italic} }
func code(s string) TextSpan         { return TextSpan{Content: s, Kind: Code} }
func link(s, url string) TextSpan    { return TextSpan{Content: s, Kind: Link, Target: url} }
func image(alt, url string) TextSpan { return TextSpan{Content: alt, Kind: Image, Target: url} }

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []TextSpan
	}{
		{"", []TextSpan{plain("")}},
		{"just some text, nothing else.", []TextSpan{plain("just some text, nothing else.")}},
		{"a **b** c", []TextSpan{plain("a "), bold("b"), plain(" c")}},
		{"This is text with a **bolded** word and **another**", []TextSpan{
			plain("This is text with a "), bold("bolded"), plain(" word and "), bold("another"),
		}},
		{"This is text with a **bolded word** and **another**", []TextSpan{
			plain("This is text with a "), bold("bolded word"), plain(" and "), bold("another"),
		}},
		{"the **farmer** is bad at **running**", []TextSpan{
			plain("the "), bold("farmer"), plain(" is bad at "), bold("running"),
		}},
		{"**bold** and *italic*", []TextSpan{bold("bold"), plain(" and "), italic("italic")}},
		{"This is text with a `code block` word", []TextSpan{
			plain("This is text with a "), code("code block"), plain(" word"),
		}},
		{"**bold with *nested* italic**", []TextSpan{bold("bold with *nested* italic")}},
		{"*italic with `code` inside*", []TextSpan{italic("italic with `code` inside")}},
		{"![alt](u1) and [text](u2)", []TextSpan{image("alt", "u1"), plain(" and "), link("text", "u2")}},
		{"This is text with a image ![rick roll](https://i.imgur.com/aKaOqIh.gif) and ![obi wan](https://i.imgur.com/fJRm4Vk.jpeg)", []TextSpan{
			plain("This is text with a image "),
			image("rick roll", "https://i.imgur.com/aKaOqIh.gif"),
			plain(" and "),
			image("obi wan", "https://i.imgur.com/fJRm4Vk.jpeg"),
		}},
		{"![rick roll](https://i.imgur.com/aKaOqIh.gif) rolled", []TextSpan{
			image("rick roll", "https://i.imgur.com/aKaOqIh.gif"), plain(" rolled"),
		}},
		{"![](https://i.imgur.com/aKaOqIh.gif)", []TextSpan{image("", "https://i.imgur.com/aKaOqIh.gif")}},
		{"[](https://boot.dev)", []TextSpan{link("", "https://boot.dev")}},
		{"[a](x)[b](y)", []TextSpan{link("a", "x"), link("b", "y")}},
		{"![a](x)![b](y)", []TextSpan{image("a", "x"), image("b", "y")}},
		{"[a]() and ![b]()", []TextSpan{link("a", ""), plain(" and "), image("b", "")}},
		{"![a](x)[b](y)", []TextSpan{image("a", "x"), link("b", "y")}},
		{"an [unclosed bracket and (parens)", []TextSpan{plain("an [unclosed bracket and (parens)")}},
		{"**[bold link](u)** then [plain](v)", []TextSpan{bold("[bold link](u)"), plain(" then "), link("plain", "v")}},
		{
			"This is **text** with an *italic* word and a `code block` and an ![obi wan image](https://i.imgur.com/fJRm4Vk.jpeg) and a [link](https://boot.dev)",
			[]TextSpan{
				plain("This is "),
				bold("text"),
				plain(" with an "),
				italic("italic"),
				plain(" word and a "),
				code("code block"),
				plain(" and an "),
				image("obi wan image", "https://i.imgur.com/fJRm4Vk.jpeg"),
				plain(" and a "),
				link("link", "https://boot.dev"),
			},
		},
	}

	for _, tc := range tests {
		got, err := Tokenize(tc.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %s", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.expected, got); diff != "" {
			t.Errorf("%q: diff (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestTokenizeMalformed(t *testing.T) {
	tests := []string{
		"a **b",
		"This is text with a **missing ending delimiter",
		"an *unclosed italic",
		"an `unclosed code span",
		"`a *b` c",
		"**one** and **two",
	}

	for _, input := range tests {
		spans, err := Tokenize(input)
		if !errors.Is(err, ErrMalformedInline) {
			t.Errorf("%q: expected ErrMalformedInline, got %v (%v)", input, err, spans)
		}
	}
}

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		input    string
		expected []section
	}{
		{"no links", nil},
		{"![image](x) only", nil},
		{"![image](x) and [link](y)", []section{{literal: "[link](y)", text: "link", target: "y"}}},
		{"[one](a) [two](b)", []section{
			{literal: "[one](a)", text: "one", target: "a"},
			{literal: "[two](b)", text: "two", target: "b"},
		}},
	}

	for _, tc := range tests {
		got := extractLinks(tc.input)
		if diff := cmp.Diff(tc.expected, got, cmp.AllowUnexported(section{})); diff != "" {
			t.Errorf("%q: diff (-want +got):\n%s", tc.input, diff)
		}
	}
}

func TestExtractImages(t *testing.T) {
	got := extractImages("![rick roll](https://i.imgur.com/aKaOqIh.gif) and ![obi wan](https://i.imgur.com/fJRm4Vk.jpeg) and [link](u)")
	expected := []section{
		{literal: "![rick roll](https://i.imgur.com/aKaOqIh.gif)", text: "rick roll", target: "https://i.imgur.com/aKaOqIh.gif"},
		{literal: "![obi wan](https://i.imgur.com/fJRm4Vk.jpeg)", text: "obi wan", target: "https://i.imgur.com/fJRm4Vk.jpeg"},
	}
	if diff := cmp.Diff(expected, got, cmp.AllowUnexported(section{})); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestSplitSectionsUnclosed(t *testing.T) {
	extract := func(string) []section {
		return []section{{literal: "[gone](nowhere)", text: "gone", target: "nowhere"}}
	}
	_, err := splitSections([]TextSpan{plain("text without it")}, Link, extract)
	if !errors.Is(err, ErrMalformedInline) {
		t.Errorf("expected ErrMalformedInline, got %v", err)
	}
}

func TestSplitSectionsSkipsTypedSpans(t *testing.T) {
	spans := []TextSpan{bold("[x](y)"), plain("see [x](y)")}
	got, err := splitSections(spans, Link, extractLinks)
	if err != nil {
		t.Fatal(err)
	}
	expected := []TextSpan{bold("[x](y)"), plain("see "), link("x", "y")}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestSpanKindString(t *testing.T) {
	if got := Image.String(); got != "image" {
		t.Errorf("expected image, got %s", got)
	}
	if got := SpanKind(99).String(); got != "SpanKind(99)" {
		t.Errorf("expected SpanKind(99), got %s", got)
	}
	if got := link("a", "u").String(); got != `link("a", "u")` {
		t.Errorf(`expected link("a", "u"), got %s`, got)
	}
	if got := link("a", "").String(); got != `link("a", "")` {
		t.Errorf(`expected link("a", ""), got %s`, got)
	}
	if got := image("", "").String(); got != `image("", "")` {
		t.Errorf(`expected image("", ""), got %s`, got)
	}
	if got := plain("x").String(); got != `plain("x")` {
		t.Errorf(`expected plain("x"), got %s`, got)
	}
}
