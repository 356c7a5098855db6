package hast

import (
	"golang.org/x/net/html"
)

// FromHTML converts parsed HTML nodes into a root element tree.
// Document and doctype wrappers are unwrapped, comments are dropped.
func FromHTML(nodes ...*html.Node) *Node {
	root := NewRoot()
	for _, n := range nodes {
		root.AppendChild(convertHTML(n)...)
	}
	return root
}

func convertHTML(n *html.Node) []*Node {
	if n == nil {
		return nil
	}

	switch n.Type {
	case html.TextNode:
		return []*Node{NewText(n.Data)}

	case html.ElementNode:
		el := NewElement(n.Data, nil)
		for _, a := range n.Attr {
			if a.Namespace != "" {
				continue
			}
			el.SetAttr(a.Key, a.Val)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			el.AppendChild(convertHTML(c)...)
		}
		return []*Node{el}

	case html.DocumentNode:
		var out []*Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			out = append(out, convertHTML(c)...)
		}
		return out
	}

	return nil
}
