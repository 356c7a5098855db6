package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2adf [flags] <input>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown files to Atlassian Document Format (ADF) JSON.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (searched for .md and .markdown)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A single input file without --output is written to stdout.")
	fmt.Fprintln(w, "Otherwise each file.md becomes file.json, next to the source or under --output.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "  -c, --config <path>          Config file (default: markdown-confluence-sync.config.{yaml,yml,json})")
	fmt.Fprintln(w, "  -l, --code-language <name>   Language attribute for code blocks (default: javascript)")
	fmt.Fprintln(w, "      --plugins                Print the resolved plugin configuration and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show detailed timing")
	fmt.Fprintln(w, "      --version                Show version information")
	fmt.Fprintln(w, "  -h, --help                   Show this help")
}
