package md2adf

import (
	"context"

	"github.com/alnah/go-md2adf/adf"
	"github.com/alnah/go-md2adf/hast"
	"github.com/alnah/go-md2adf/internal/pipeline"
	"github.com/alnah/go-md2adf/mdast"
)

// Compile-time interface implementation checks.
var (
	_ Backend                       = (*pipeline.Goldmark)(nil)
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ Compiler                      = adf.Compiler{}
)

// Backend parses Markdown and converts Markdown trees to element trees.
// Implementations must be safe for concurrent use; one Backend may be
// shared by many Transformers.
type Backend interface {
	Parse(ctx context.Context, source []byte) (*mdast.Tree, error)
	ToHTMLTree(ctx context.Context, tree *mdast.Tree) (*hast.Node, error)
}

// NewGoldmarkBackend creates the production Backend: goldmark with GFM,
// HTML sanitized by bluemonday and parsed with golang.org/x/net/html.
func NewGoldmarkBackend() Backend {
	return pipeline.NewGoldmark()
}
