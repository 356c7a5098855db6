// Package pipeline implements the Markdown-to-element-tree stages of the
// ADF conversion.
//
// This package handles the stages that surround the plugin steps:
//   - Markdown preprocessing (line normalization, front matter extraction)
//   - Markdown parsing via Goldmark (GFM)
//   - HTML rendering, sanitizing (bluemonday) and parsing (x/net/html)
//     into the element tree consumed by the ADF compiler
//
// Plugin steps and ADF compilation live outside this package: the root
// md2adf package runs the steps between these stages, and the adf package
// compiles the final element tree.
package pipeline
