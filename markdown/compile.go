package markdown

import (
	"fmt"
	"strings"

	"git.sr.ht/~dvko/mdsite/htmlnode"
)

// RenderPage converts a markdown document into an HTML string wrapped in a
// single <div>.
func RenderPage(document string) (string, error) {
	root, err := ToNode(document)
	if err != nil {
		return "", err
	}
	return htmlnode.Render(root)
}

// ToNode converts a markdown document into a tree with one child per block
// under a <div> root.
func ToNode(document string) (*htmlnode.ParentNode, error) {
	blocks := Segment(document)
	children := make([]htmlnode.Node, 0, len(blocks))
	for _, block := range blocks {
		n, err := BlockToNode(block, Classify(block))
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return htmlnode.NewParent("div", children), nil
}

// BlockToNode converts a single block of the given type into a subtree.
func BlockToNode(block string, typ BlockType) (htmlnode.Node, error) {
	switch typ {
	case Paragraph:
		return textToParent("p", block)
	case Heading:
		level := HeadingLevel(block)
		if level == 0 {
			return nil, fmt.Errorf("invalid heading block %q", block)
		}
		return textToParent(fmt.Sprintf("h%d", level), block[level+1:])
	case CodeBlock:
		return codeToNode(block), nil
	case Quote:
		lines := strings.Split(block, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimPrefix(line, ">")
		}
		return textToParent("blockquote", strings.Join(lines, "\n"))
	case UnorderedList:
		return listToNode("ul", block, func(int) int { return 2 })
	case OrderedList:
		return listToNode("ol", block, func(i int) int { return len(orderedMarker(i)) })
	default:
		return nil, fmt.Errorf("unknown block type %v", typ)
	}
}

// codeToNode strips the fences and keeps the inner text literally. A block
// shorter than two fences shares its fence characters and is empty inside.
func codeToNode(block string) htmlnode.Node {
	block = strings.TrimSpace(block)
	inner := ""
	if len(block) >= 2*len(fence) {
		inner = block[len(fence) : len(block)-len(fence)]
	}
	return htmlnode.NewParent("pre", []htmlnode.Node{htmlnode.NewLeaf("code", inner)})
}

// listToNode turns every line into an <li>. markerLen returns the width of
// the marker on the i-th line.
func listToNode(tag, block string, markerLen func(i int) int) (htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for i, line := range lines {
		n := markerLen(i)
		if n > len(line) {
			return nil, fmt.Errorf("invalid list item %q", line)
		}
		item, err := textToParent("li", line[n:])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return htmlnode.NewParent(tag, items), nil
}

func textToParent(tag, text string) (*htmlnode.ParentNode, error) {
	children, err := textToChildren(text)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent(tag, children), nil
}

func textToChildren(text string) ([]htmlnode.Node, error) {
	spans, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	children := make([]htmlnode.Node, 0, len(spans))
	for _, s := range spans {
		leaf, err := SpanToLeaf(s)
		if err != nil {
			return nil, err
		}
		children = append(children, leaf)
	}
	return children, nil
}

// SpanToLeaf converts a span into the leaf that renders it.
func SpanToLeaf(s TextSpan) (*htmlnode.LeafNode, error) {
	switch s.Kind {
	case Plain:
		return htmlnode.NewLeaf("", s.Content), nil
	case Bold:
		return htmlnode.NewLeaf("b", s.Content), nil
	case Italic:
		return htmlnode.NewLeaf("i", s.Content), nil
	case Code:
		return htmlnode.NewLeaf("code", s.Content), nil
	case Link:
		return htmlnode.NewLeaf("a", s.Content, htmlnode.Attr{Key: "href", Value: s.Target}), nil
	case Image:
		return htmlnode.NewLeaf("img", "",
			htmlnode.Attr{Key: "src", Value: s.Target},
			htmlnode.Attr{Key: "alt", Value: s.Content}), nil
	default:
		return nil, fmt.Errorf("unknown span kind %v", s.Kind)
	}
}
