package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2adf/hast"
	"github.com/alnah/go-md2adf/mdast"
)

// Sentinel errors for the Goldmark stages.
var (
	ErrParse          = errors.New("markdown parsing failed")
	ErrHTMLConversion = errors.New("HTML conversion failed")
)

// blockContainers hold block children only; newline-only text between
// their children is rendering whitespace, not content.
var blockContainers = map[string]bool{
	"ul": true, "ol": true, "li": true, "blockquote": true,
	"table": true, "thead": true, "tbody": true, "tr": true,
}

// Goldmark parses Markdown and builds element trees using goldmark (pure Go).
// It holds no per-document state and is safe for concurrent use.
type Goldmark struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewGoldmark creates a Goldmark backend with GFM extensions.
func NewGoldmark() *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
		),
		goldmark.WithRendererOptions(
			// Inline HTML is kept so <b>, <i> and friends reach the compiler;
			// the rendered HTML is sanitized before it is parsed.
			gmhtml.WithUnsafe(),
		),
	)
	return &Goldmark{md: md, policy: bluemonday.UGCPolicy()}
}

// Parse parses Markdown source into a syntax tree.
func (g *Goldmark) Parse(ctx context.Context, source []byte) (tree *mdast.Tree, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	root := g.md.Parser().Parse(text.NewReader(source))
	return &mdast.Tree{Root: root, Source: source}, nil
}

// ToHTMLTree renders the syntax tree to HTML, sanitizes it and parses the
// result into an element tree.
func (g *Goldmark) ToHTMLTree(ctx context.Context, tree *mdast.Tree) (*hast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tree == nil || tree.Root == nil {
		return hast.NewRoot(), nil
	}

	var buf bytes.Buffer
	if err := g.md.Renderer().Render(&buf, tree.Source, tree.Root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	sanitized := g.policy.SanitizeReader(&buf)

	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(sanitized, context)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	root := hast.FromHTML(nodes...)
	trimBlockWhitespace(root)
	return root, nil
}

// trimBlockWhitespace drops newline-only text nodes emitted between block
// elements, at the root and inside block containers.
func trimBlockWhitespace(n *hast.Node) {
	if n.Kind == hast.KindRoot || blockContainers[n.TagName] {
		kept := n.Children[:0]
		for _, c := range n.Children {
			if c.Kind == hast.KindText && isLayoutWhitespace(c.Value) {
				continue
			}
			kept = append(kept, c)
		}
		n.Children = kept
	}
	for _, c := range n.Children {
		trimBlockWhitespace(c)
	}
}

func isLayoutWhitespace(s string) bool {
	return strings.Contains(s, "\n") && strings.TrimSpace(s) == ""
}
