// Package mdast carries the parsed Markdown syntax tree handed to remark
// plugins. The tree is a goldmark AST; node text lives in Source.
package mdast

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Tree is a parsed Markdown document.
type Tree struct {
	Root   ast.Node
	Source []byte
}

// Walk visits every node of the tree, see ast.Walk.
func (t *Tree) Walk(fn ast.Walker) error {
	if t == nil || t.Root == nil {
		return nil
	}
	return ast.Walk(t.Root, fn)
}

// Headings returns every heading in document order.
func (t *Tree) Headings() []*ast.Heading {
	var headings []*ast.Heading
	_ = t.Walk(func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, h)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// Text returns the plain text under n, ignoring inline formatting.
func (t *Tree) Text(n ast.Node) string {
	if t == nil || n == nil {
		return ""
	}
	var b strings.Builder
	t.writeText(&b, n)
	return b.String()
}

func (t *Tree) writeText(b *strings.Builder, n ast.Node) {
	switch v := n.(type) {
	case *ast.Text:
		b.Write(v.Segment.Value(t.Source))
		if v.SoftLineBreak() || v.HardLineBreak() {
			b.WriteByte(' ')
		}
		return
	case *ast.String:
		b.Write(v.Value)
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t.writeText(b, c)
	}
}
