// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for a missing --config file.
// Suggests the conventional file names probed when --config is omitted.
func ForConfigNotFound(conventional []string) string {
	hint := "use --config /path/to/file.yaml"
	if len(conventional) > 0 {
		hint += " or create " + conventional[0] + " in the working directory"
	}
	return format(hint)
}

// ForUnknownPlugin returns hints listing the registered plugin names.
func ForUnknownPlugin(remark, rehype []string) string {
	var hints []string
	if len(remark) > 0 {
		hints = append(hints, "remark plugins: "+strings.Join(remark, ", "))
	}
	if len(rehype) > 0 {
		hints = append(hints, "rehype plugins: "+strings.Join(rehype, ", "))
	}
	return formatHints(hints)
}

// ForUnknownLanguage returns a hint for an unrecognized --code-language.
func ForUnknownLanguage() string {
	return format("use a language name or alias such as go, python, bash or json")
}

// ForNoInput returns a hint for a missing input argument.
func ForNoInput() string {
	return format("pass a Markdown file or directory, e.g. md2adf docs/")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
