// Package md2adf converts Markdown documents to Atlassian Document Format
// (ADF), the JSON document model used by Confluence.
//
// # Quick Start
//
// Create a transformer and convert Markdown:
//
//	tr := md2adf.NewTransformer()
//
//	doc, err := tr.Transform(ctx, "# Hello\n\nWorld")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := json.Marshal(doc)
//
// A Transformer loads its configuration on first use and is safe for
// concurrent use afterwards.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (BOM, line endings, front matter)
//  2. Parsing via Goldmark (GFM) into a Markdown tree
//  3. Markdown-tree steps: user "before" steps, confluence-macros, user "after" steps
//  4. HTML rendering, sanitizing (bluemonday) and parsing into an element tree
//  5. Element-tree steps: user "before" steps, confluence-adf, user "after" steps
//  6. Compiling the element tree to ADF (package adf)
//
// # Plugins
//
// A plugin binds options to a step. Entries may be given as a plugin, as
// []any{plugin} or []any{plugin, options}, or as an Entry:
//
//	tr := md2adf.NewTransformer(
//	    md2adf.WithRemarkPluginsBefore(md2adf.StripTitle),
//	    md2adf.WithRehypePluginsAfter([]any{md2adf.RewriteLinks, md2adf.Options{
//	        "base": "https://wiki.example.com/docs/",
//	    }}),
//	)
//
// # Configuration
//
// Without explicit options, the transformer reads the first of
// markdown-confluence-sync.config.yaml, .yml or .json in the working
// directory. Configuration files name plugins registered in a Registry:
//
//	remarkPluginsBefore:
//	  - [strip-title, {level: 1}]
//	rehypePluginsAfter:
//	  - [rewrite-links, {base: "https://wiki.example.com/docs/"}]
//
// An option set on the transformer replaces the matching file field, even
// when the option lists no entries.
package md2adf
