// Package htmlnode holds the output tree built from a markdown document and
// renders it to HTML text.
package htmlnode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLeafValue      = errors.New("leaf node requires a value")
	ErrParentChildren = errors.New("parent node requires children")
)

// Node is either a *LeafNode or a *ParentNode.
type Node interface {
	HTML() (string, error)
	render(sb *strings.Builder) error
	node()
}

// Attr is a single HTML attribute.
type Attr struct {
	Key, Value string
}

// Attrs is an ordered list of attributes, rendered in insertion order.
type Attrs []Attr

// HTML renders the attributes as space-prefixed key="value" pairs.
func (a Attrs) HTML() string {
	var sb strings.Builder
	a.render(&sb)
	return sb.String()
}

func (a Attrs) render(sb *strings.Builder) {
	for _, attr := range a {
		fmt.Fprintf(sb, ` %s="%s"`, attr.Key, attr.Value)
	}
}

// LeafNode holds a literal value. A leaf without a tag renders as raw text.
// A nil Value is invalid and fails to render.
type LeafNode struct {
	Tag   string
	Value *string
	Attrs Attrs
}

// NewLeaf returns a leaf with the given tag, value and attributes.
func NewLeaf(tag, value string, attrs ...Attr) *LeafNode {
	return &LeafNode{Tag: tag, Value: &value, Attrs: attrs}
}

func (*LeafNode) node() {}

func (n *LeafNode) HTML() (string, error) {
	var sb strings.Builder
	if err := n.render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (n *LeafNode) render(sb *strings.Builder) error {
	if n.Value == nil {
		return fmt.Errorf("<%s>: %w", n.Tag, ErrLeafValue)
	}
	if n.Tag == "" {
		sb.WriteString(*n.Value)
		return nil
	}

	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	n.Attrs.render(sb)
	sb.WriteByte('>')
	sb.WriteString(*n.Value)
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
	return nil
}

func (n *LeafNode) String() string {
	value := "<nil>"
	if n.Value != nil {
		value = fmt.Sprintf("%q", *n.Value)
	}
	return fmt.Sprintf("LeafNode(%s, %s, %v)", n.Tag, value, []Attr(n.Attrs))
}

// ParentNode holds an ordered list of children. An empty Tag splices the
// children into the surrounding output without a wrapper element. A nil
// Children list is invalid and fails to render; an empty one renders as an
// empty element.
type ParentNode struct {
	Tag      string
	Children []Node
	Attrs    Attrs
}

// NewParent returns a parent with the given tag, children and attributes.
// A nil children slice is replaced by an empty one.
func NewParent(tag string, children []Node, attrs ...Attr) *ParentNode {
	if children == nil {
		children = []Node{}
	}
	return &ParentNode{Tag: tag, Children: children, Attrs: attrs}
}

func (*ParentNode) node() {}

func (n *ParentNode) HTML() (string, error) {
	var sb strings.Builder
	if err := n.render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (n *ParentNode) render(sb *strings.Builder) error {
	if n.Children == nil {
		return fmt.Errorf("<%s>: %w", n.Tag, ErrParentChildren)
	}

	if n.Tag != "" {
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		n.Attrs.render(sb)
		sb.WriteByte('>')
	}
	for i, child := range n.Children {
		if child == nil {
			return fmt.Errorf("<%s>: child %d is nil: %w", n.Tag, i, ErrParentChildren)
		}
		if err := child.render(sb); err != nil {
			return err
		}
	}
	if n.Tag != "" {
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	}
	return nil
}

func (n *ParentNode) String() string {
	children := make([]string, len(n.Children))
	for i, c := range n.Children {
		children[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("ParentNode(%s, [%s], %v)", n.Tag, strings.Join(children, ", "), []Attr(n.Attrs))
}

// Render returns the HTML for the tree rooted at n.
func Render(n Node) (string, error) {
	if n == nil {
		return "", errors.New("cannot render nil node")
	}
	return n.HTML()
}
