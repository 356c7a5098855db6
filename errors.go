package md2adf

import (
	"errors"

	"github.com/alnah/go-md2adf/internal/config"
	"github.com/alnah/go-md2adf/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Configuration errors.
	ErrConfigLoad    = config.ErrConfigLoad
	ErrInvalidConfig = config.ErrInvalidConfig

	// Plugin errors.
	ErrInvalidPluginEntry = errors.New("invalid plugin entry")
	ErrUnknownPlugin      = errors.New("unknown plugin")
	ErrPluginAttach       = errors.New("failed to attach plugin")
	ErrStepExecution      = errors.New("pipeline step failed")

	// Conversion errors.
	ErrParse          = pipeline.ErrParse
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// Option validation errors.
	ErrUnknownLanguage = errors.New("unknown code language")
)
