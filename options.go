package md2adf

import (
	"io"
	"log/slog"
)

// Option configures a Transformer.
type Option func(*Transformer)

// transformerConfig holds construction-time settings. A nil plugin field
// means "not set"; a non-nil empty field overrides the configuration file.
type transformerConfig struct {
	configPath   string
	configDir    string
	config       *Config
	codeLanguage string

	remarkBefore []any
	remarkAfter  []any
	rehypeBefore []any
	rehypeAfter  []any
}

// WithConfigPath sets an explicit configuration file location.
// A path that does not exist means "no configuration".
func WithConfigPath(path string) Option {
	return func(t *Transformer) {
		t.cfg.configPath = path
	}
}

// WithConfigDir sets the directory probed for conventional configuration
// file names and against which a relative WithConfigPath resolves.
// Defaults to the working directory.
func WithConfigDir(dir string) Option {
	return func(t *Transformer) {
		t.cfg.configDir = dir
	}
}

// WithConfig supplies an already loaded configuration; no file is read.
func WithConfig(cfg *Config) Option {
	return func(t *Transformer) {
		t.cfg.config = cfg
	}
}

// WithRemarkPluginsBefore sets the Markdown-tree entries run before the
// built-in steps. Entries take any shape accepted by Normalize. Setting
// this option, even to no entries, overrides the configuration file.
func WithRemarkPluginsBefore(entries ...any) Option {
	return func(t *Transformer) {
		t.cfg.remarkBefore = append([]any{}, entries...)
	}
}

// WithRemarkPluginsAfter sets the Markdown-tree entries run after the
// built-in steps, overriding the configuration file.
func WithRemarkPluginsAfter(entries ...any) Option {
	return func(t *Transformer) {
		t.cfg.remarkAfter = append([]any{}, entries...)
	}
}

// WithRehypePluginsBefore sets the element-tree entries run before the
// built-in steps, overriding the configuration file.
func WithRehypePluginsBefore(entries ...any) Option {
	return func(t *Transformer) {
		t.cfg.rehypeBefore = append([]any{}, entries...)
	}
}

// WithRehypePluginsAfter sets the element-tree entries run after the
// built-in steps, overriding the configuration file.
func WithRehypePluginsAfter(entries ...any) Option {
	return func(t *Transformer) {
		t.cfg.rehypeAfter = append([]any{}, entries...)
	}
}

// WithBackend sets the parser and HTML tree builder (e.g., a test double).
func WithBackend(b Backend) Option {
	return func(t *Transformer) {
		t.backend = b
	}
}

// WithRegistry sets the registry used to resolve plugin names from
// configuration files.
func WithRegistry(r *Registry) Option {
	return func(t *Transformer) {
		t.registry = r
	}
}

// WithCodeLanguage sets the language attribute of compiled code blocks.
// Unknown languages fail initialization with ErrUnknownLanguage.
func WithCodeLanguage(language string) Option {
	return func(t *Transformer) {
		t.cfg.codeLanguage = language
	}
}

// WithLogger sets the structured logger. Defaults to discarding output.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		t.logger = logger
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
