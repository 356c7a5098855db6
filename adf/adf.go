// Package adf models Atlassian Document Format documents and compiles
// element trees into them.
//
// Only the node kinds the compiler emits are modeled: doc, paragraph,
// heading, bulletList, orderedList, listItem, codeBlock and text, with the
// strong, em, code and link marks.
package adf

import "encoding/json"

// DocumentVersion is the only ADF version emitted.
const DocumentVersion = 1

// Node types.
const (
	TypeDoc         = "doc"
	TypeParagraph   = "paragraph"
	TypeHeading     = "heading"
	TypeBulletList  = "bulletList"
	TypeOrderedList = "orderedList"
	TypeListItem    = "listItem"
	TypeCodeBlock   = "codeBlock"
	TypeText        = "text"
)

// Mark types.
const (
	MarkStrong = "strong"
	MarkEm     = "em"
	MarkCode   = "code"
	MarkLink   = "link"
)

// Document is the top-level ADF node.
type Document struct {
	Version int     `json:"version"`
	Type    string  `json:"type"`
	Content []*Node `json:"content"`
}

// NewDocument returns an empty version 1 document.
func NewDocument(content ...*Node) *Document {
	if content == nil {
		content = []*Node{}
	}
	return &Document{Version: DocumentVersion, Type: TypeDoc, Content: content}
}

// MarshalJSON always emits a content array, even when empty.
func (d Document) MarshalJSON() ([]byte, error) {
	type document Document
	if d.Content == nil {
		d.Content = []*Node{}
	}
	return json.Marshal(document(d))
}

// Node is a block or inline ADF node.
// Text and Marks are meaningful on text nodes only, Content on blocks only.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark is an inline formatting annotation on a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

type textJSON struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Marks []Mark `json:"marks,omitempty"`
}

type blockJSON struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content"`
}

// MarshalJSON encodes text nodes as {type, text, marks?} and block nodes as
// {type, attrs?, content}, so an empty text or an empty block still carries
// its text or content key.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Type == TypeText {
		return json.Marshal(textJSON{Type: n.Type, Text: n.Text, Marks: n.Marks})
	}
	content := n.Content
	if content == nil {
		content = []*Node{}
	}
	return json.Marshal(blockJSON{Type: n.Type, Attrs: n.Attrs, Content: content})
}

// Paragraph returns a paragraph wrapping content.
func Paragraph(content ...*Node) *Node {
	return &Node{Type: TypeParagraph, Content: content}
}

// Heading returns a heading of the given level.
func Heading(level int, content ...*Node) *Node {
	return &Node{Type: TypeHeading, Attrs: map[string]any{"level": level}, Content: content}
}

// ListItem returns a list item wrapping block content.
func ListItem(content ...*Node) *Node {
	return &Node{Type: TypeListItem, Content: content}
}

// CodeBlock returns a code block holding text in the given language.
func CodeBlock(language, text string) *Node {
	return &Node{
		Type:    TypeCodeBlock,
		Attrs:   map[string]any{"language": language},
		Content: []*Node{Text(text)},
	}
}

// Text returns a text node with optional marks.
func Text(text string, marks ...Mark) *Node {
	return &Node{Type: TypeText, Text: text, Marks: marks}
}

// LinkMark returns a link mark pointing at href.
func LinkMark(href string) Mark {
	return Mark{Type: MarkLink, Attrs: map[string]any{"href": href}}
}
