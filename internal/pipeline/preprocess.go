package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// Line ending normalization, precompiled for performance.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// byteOrderMark is a leading UTF-8 BOM, stripped before parsing.
const byteOrderMark = "\uFEFF"

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) (Preprocessed, error)
}

// Preprocessed is Markdown ready for parsing, with its front matter split off.
type Preprocessed struct {
	Body string
	Meta map[string]any
}

// CommonMarkPreprocessor applies transformations before CommonMark parsing.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown normalizes line endings and extracts front matter.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) (Preprocessed, error) {
	if err := ctx.Err(); err != nil {
		return Preprocessed{}, err
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)

	meta, body := splitFrontMatter(content)
	return Preprocessed{Body: body, Meta: meta}, nil
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// splitFrontMatter separates a leading front matter block (YAML "---" or
// TOML "+++") from the Markdown body.
// Content without front matter is returned unchanged with nil metadata.
// A leading block that does not decode to a mapping stays in the body:
// "---\nHello\n---" is a thematic break and a setext heading.
func splitFrontMatter(content string) (map[string]any, string) {
	if !hasFrontMatter(content) {
		return nil, content
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return nil, content
	}
	if len(meta) == 0 && !isBlankBlock(content[:len(content)-len(body)]) {
		// comments or null only
		return nil, content
	}
	return meta, string(body)
}

// isBlankBlock reports whether a delimited block has nothing between its
// delimiter lines.
func isBlankBlock(block string) bool {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) < 2 {
		return false
	}
	for _, line := range lines[1 : len(lines)-1] {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// hasFrontMatter reports whether content opens with a front matter
// delimiter line. A leading "---" followed by a blank line is a thematic
// break, not front matter.
func hasFrontMatter(content string) bool {
	for _, delim := range []string{"---\n", "+++\n"} {
		if strings.HasPrefix(content, delim) {
			rest := content[len(delim):]
			return rest != "" && !strings.HasPrefix(rest, "\n")
		}
	}
	return false
}
