package md2adf

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/alnah/go-md2adf/hast"
	"github.com/alnah/go-md2adf/mdast"
)

// Names of the bundled plugins available to configuration files.
const (
	HeadingTrackerName = "heading-tracker"
	StripTitleName     = "strip-title"
	RewriteLinksName   = "rewrite-links"
)

// HeadingTracker counts the document's headings into
// File.Data[DataHeadingCount].
func HeadingTracker(Options) (RemarkStep, error) {
	return func(_ context.Context, tree *mdast.Tree, file *File) error {
		file.Data[DataHeadingCount] = len(tree.Headings())
		return nil
	}, nil
}

// StripTitle removes the first top-level heading of the configured level
// (option "level", default 1) and stores its text in File.Data[DataTitle].
// Confluence shows the page title separately from the body.
func StripTitle(opts Options) (RemarkStep, error) {
	level, err := intOption(opts, "level", 1)
	if err != nil {
		return nil, err
	}
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("option %q must be between 1 and 6, got %d", "level", level)
	}

	return func(_ context.Context, tree *mdast.Tree, file *File) error {
		if tree == nil || tree.Root == nil {
			return nil
		}
		for c := tree.Root.FirstChild(); c != nil; c = c.NextSibling() {
			h, ok := c.(*ast.Heading)
			if !ok || h.Level != level {
				continue
			}
			file.Data[DataTitle] = tree.Text(h)
			tree.Root.RemoveChild(tree.Root, h)
			return nil
		}
		return nil
	}, nil
}

// RewriteLinks resolves relative link targets against the "base" option.
// Anchors, absolute and protocol-relative URLs are left unchanged.
func RewriteLinks(opts Options) (RehypeStep, error) {
	raw, err := stringOption(opts, "base")
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, errors.New(`option "base" is required`)
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	return func(_ context.Context, root *hast.Node, _ *File) error {
		hast.Walk(root, func(n *hast.Node) bool {
			if !n.IsElement("a") {
				return true
			}
			href, ok := n.Attr("href")
			if !ok || !isRelativeLink(href) {
				return true
			}
			ref, err := url.Parse(href)
			if err != nil {
				return true // Leave unparsable targets untouched
			}
			n.SetAttr("href", base.ResolveReference(ref).String())
			return true
		})
		return nil
	}, nil
}

// isRelativeLink reports whether href should be resolved against a base.
func isRelativeLink(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "//") {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return !u.IsAbs()
}
