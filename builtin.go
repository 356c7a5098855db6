package md2adf

import (
	"context"
	"fmt"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/alnah/go-md2adf/adf"
	"github.com/alnah/go-md2adf/hast"
	"github.com/alnah/go-md2adf/mdast"
)

// Names of the built-in plugins.
const (
	ConfluenceMacrosName = "confluence-macros"
	ConfluenceADFName    = "confluence-adf"
)

// OptionLanguage is the confluence-adf option naming the code block language.
const OptionLanguage = "language"

// ConfluenceMacros is the built-in Markdown-tree step that runs between
// user steps. It leaves the tree unchanged and reserves the position for
// Confluence macro handling.
func ConfluenceMacros(Options) (RemarkStep, error) {
	return func(context.Context, *mdast.Tree, *File) error {
		return nil
	}, nil
}

// ConfluenceADF is the built-in element-tree step. It attaches the ADF
// compiler to the File, configured with the "language" option used for
// code blocks (see adf.DefaultCodeLanguage).
func ConfluenceADF(opts Options) (RehypeStep, error) {
	language, err := stringOption(opts, OptionLanguage)
	if err != nil {
		return nil, err
	}
	if err := validateLanguage(language); err != nil {
		return nil, err
	}
	compiler := adf.Compiler{CodeLanguage: language}
	return func(_ context.Context, _ *hast.Node, file *File) error {
		file.SetCompiler(compiler)
		return nil
	}, nil
}

// BuiltinRemarkPlugins returns the built-in Markdown-tree entries.
func BuiltinRemarkPlugins() []RemarkEntry {
	return []RemarkEntry{
		{Name: ConfluenceMacrosName, Plugin: ConfluenceMacros, Options: Options{}},
	}
}

// BuiltinRehypePlugins returns the built-in element-tree entries.
func BuiltinRehypePlugins() []RehypeEntry {
	return builtinRehypePlugins("")
}

func builtinRehypePlugins(language string) []RehypeEntry {
	opts := Options{}
	if language != "" {
		opts[OptionLanguage] = language
	}
	return []RehypeEntry{
		{Name: ConfluenceADFName, Plugin: ConfluenceADF, Options: opts},
	}
}

// validateLanguage checks that a code language is known to chroma.
// An empty language selects the compiler default.
func validateLanguage(language string) error {
	if language == "" {
		return nil
	}
	if lexers.Get(language) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	return nil
}

// stringOption reads an optional string option.
func stringOption(opts Options, key string) (string, error) {
	v, ok := opts[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("option %q must be a string, got %T", key, v)
	}
	return s, nil
}

// intOption reads an optional integer option. Numbers decoded from
// configuration files arrive as float64 and must be integral.
func intOption(opts Options, key string, def int) (int, error) {
	v, ok := opts[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("option %q must be an integer, got %v", key, v)
}
