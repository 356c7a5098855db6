// Package hast defines the HTML-like element tree that sits between the
// rendered Markdown and the ADF compiler.
//
// A tree is made of three node kinds: a single root, elements carrying a tag
// name and attributes, and text leaves. Rehype plugins receive the root and
// may rewrite it in place before compilation.
package hast

import "strings"

// Kind identifies the variant of a Node.
type Kind int

// Node kinds. The zero value is not a valid kind and is ignored by consumers.
const (
	KindUnknown Kind = iota
	KindRoot
	KindElement
	KindText
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Node is a single element tree node.
// TagName and Attributes are set on elements only, Value on text nodes only.
type Node struct {
	Kind       Kind
	TagName    string
	Attributes map[string]string
	Children   []*Node
	Value      string
}

// NewRoot returns a root node holding children.
func NewRoot(children ...*Node) *Node {
	return &Node{Kind: KindRoot, Children: children}
}

// NewElement returns an element node. attrs may be nil.
func NewElement(tagName string, attrs map[string]string, children ...*Node) *Node {
	return &Node{Kind: KindElement, TagName: tagName, Attributes: attrs, Children: children}
}

// NewText returns a text leaf.
func NewText(value string) *Node {
	return &Node{Kind: KindText, Value: value}
}

// Attr returns the named attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attributes == nil {
		return "", false
	}
	v, ok := n.Attributes[name]
	return v, ok
}

// SetAttr sets an attribute, allocating the map on first use.
func (n *Node) SetAttr(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// AppendChild adds children at the end of n.
func (n *Node) AppendChild(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// IsElement reports whether n is an element with one of the given tag names.
// With no names it reports whether n is an element at all.
func (n *Node) IsElement(tagNames ...string) bool {
	if n == nil || n.Kind != KindElement {
		return false
	}
	if len(tagNames) == 0 {
		return true
	}
	for _, t := range tagNames {
		if n.TagName == t {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// TextContent concatenates every descendant text value in document order.
// Structure and attributes are ignored.
func TextContent(n *Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == KindText {
		return n.Value
	}
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n *Node) {
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if c.Kind == KindText {
			b.WriteString(c.Value)
			continue
		}
		writeText(b, c)
	}
}
