package md2adf

import (
	"github.com/alnah/go-md2adf/adf"
	"github.com/alnah/go-md2adf/hast"
)

// Keys written to File.Data by the bundled plugins.
const (
	DataHeadingCount = "headingCount"
	DataTitle        = "title"
)

// Compiler turns a finished element tree into an ADF document.
type Compiler interface {
	Compile(root *hast.Node) *adf.Document
}

// File carries per-document state through one transformation.
// Steps read front matter from Meta and exchange results through Data.
type File struct {
	Path string
	Meta map[string]any
	Data map[string]any

	compiler Compiler
}

// NewFile creates an empty File for the document at path (may be empty).
func NewFile(path string) *File {
	return &File{
		Path: path,
		Meta: map[string]any{},
		Data: map[string]any{},
	}
}

// SetCompiler sets the compiler used once all steps have run.
func (f *File) SetCompiler(c Compiler) {
	f.compiler = c
}

// Compiler returns the compiler attached by a step, or the default compiler.
func (f *File) Compiler() Compiler {
	if f.compiler == nil {
		return adf.Compiler{}
	}
	return f.compiler
}
