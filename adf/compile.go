package adf

import (
	"github.com/alnah/go-md2adf/hast"
)

// DefaultCodeLanguage is the language attribute set on every code block
// when the compiler has none configured.
const DefaultCodeLanguage = "javascript"

// defaultHref is used for links without an href attribute.
const defaultHref = "#"

// Compiler converts element trees to ADF documents.
// The zero value is ready to use.
type Compiler struct {
	// CodeLanguage is the language attribute of compiled code blocks.
	// Empty means DefaultCodeLanguage.
	CodeLanguage string
}

// Compile converts root with the default compiler.
func Compile(root *hast.Node) *Document {
	return Compiler{}.Compile(root)
}

// Compile converts an element tree rooted at root into a document.
// It never fails: a nil or non-root input yields an empty document.
func (c Compiler) Compile(root *hast.Node) *Document {
	doc := NewDocument()
	if root == nil || root.Kind != hast.KindRoot {
		return doc
	}
	doc.Content = append(doc.Content, c.convertChildren(root)...)
	return doc
}

// convertChildren converts each child and flattens the results in order.
func (c Compiler) convertChildren(n *hast.Node) []*Node {
	content := []*Node{}
	for _, child := range n.Children {
		content = append(content, c.convert(child)...)
	}
	return content
}

// convert returns the nodes produced by n: none, one, or the promoted
// children of a transparent element.
func (c Compiler) convert(n *hast.Node) []*Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case hast.KindRoot:
		return c.convertChildren(n)
	case hast.KindText:
		return []*Node{Text(n.Value)}
	case hast.KindElement:
		return c.convertElement(n)
	}
	return nil
}

func (c Compiler) convertElement(n *hast.Node) []*Node {
	switch n.TagName {
	case "p", "li":
		// List items collapse to a single paragraph.
		return []*Node{Paragraph(c.convertChildren(n)...)}

	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.TagName[1] - '0')
		return []*Node{Heading(level, c.convertChildren(n)...)}

	case "ul":
		return []*Node{c.list(TypeBulletList, n)}

	case "ol":
		return []*Node{c.list(TypeOrderedList, n)}

	case "strong", "b":
		return []*Node{Text(hast.TextContent(n), Mark{Type: MarkStrong})}

	case "em", "i":
		return []*Node{Text(hast.TextContent(n), Mark{Type: MarkEm})}

	case "code":
		return []*Node{Text(hast.TextContent(n), Mark{Type: MarkCode})}

	case "pre":
		return []*Node{CodeBlock(c.codeLanguage(), hast.TextContent(n))}

	case "a":
		href, ok := n.Attr("href")
		if !ok {
			href = defaultHref
		}
		return []*Node{Text(hast.TextContent(n), LinkMark(href))}
	}

	// Unknown tags are transparent.
	return c.convertChildren(n)
}

// list builds a list node, wrapping every converted child in a listItem.
func (c Compiler) list(listType string, n *hast.Node) *Node {
	items := c.convertChildren(n)
	content := make([]*Node, 0, len(items))
	for _, item := range items {
		if item.Type == TypeListItem {
			content = append(content, item)
			continue
		}
		content = append(content, ListItem(item))
	}
	return &Node{Type: listType, Content: content}
}

func (c Compiler) codeLanguage() string {
	if c.CodeLanguage == "" {
		return DefaultCodeLanguage
	}
	return c.CodeLanguage
}
