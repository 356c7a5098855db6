package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2adf/internal/fileutil"
	"github.com/alnah/go-md2adf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigLoad    = errors.New("failed to load config")
	ErrInvalidConfig = errors.New("invalid config")
)

// FileNames lists the conventional config file names, in precedence order.
var FileNames = []string{
	"markdown-confluence-sync.config.yaml",
	"markdown-confluence-sync.config.yml",
	"markdown-confluence-sync.config.json",
}

// Plugin array keys.
const (
	KeyRemarkPluginsBefore = "remarkPluginsBefore"
	KeyRemarkPluginsAfter  = "remarkPluginsAfter"
	KeyRehypePluginsBefore = "rehypePluginsBefore"
	KeyRehypePluginsAfter  = "rehypePluginsAfter"
)

// PluginKeys lists the plugin array keys in validation order.
var PluginKeys = []string{
	KeyRemarkPluginsBefore,
	KeyRemarkPluginsAfter,
	KeyRehypePluginsBefore,
	KeyRehypePluginsAfter,
}

// PluginSpec references a registered plugin by name, with its options.
type PluginSpec struct {
	Name    string
	Options map[string]any
}

// Config holds the plugin configuration read from a config file.
type Config struct {
	// Path is the file the configuration was read from (empty when built in code).
	Path string

	RemarkPluginsBefore []PluginSpec
	RemarkPluginsAfter  []PluginSpec
	RehypePluginsBefore []PluginSpec
	RehypePluginsAfter  []PluginSpec

	// Extra holds every other top-level key, e.g. connection settings
	// consumed by other tools. The converter ignores it.
	Extra map[string]any
}

// Load resolves and loads the configuration relative to the working directory.
// See LoadFrom.
func Load(explicitPath string) (*Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("%w: resolving working directory: %v", ErrConfigLoad, err)
	}
	return LoadFrom(dir, explicitPath)
}

// LoadFrom loads the configuration file at explicitPath, or the first of
// FileNames found in dir when explicitPath is empty. Relative explicit paths
// resolve against dir.
//
// A missing file is not an error: LoadFrom returns nil, nil.
func LoadFrom(dir, explicitPath string) (*Config, error) {
	path, ok := resolvePath(dir, explicitPath)
	if !ok {
		return nil, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w %s: %v", ErrConfigLoad, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		if errors.Is(err, ErrInvalidConfig) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, fmt.Errorf("%w %s: %v", ErrConfigLoad, path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func resolvePath(dir, explicitPath string) (string, bool) {
	if explicitPath == "" {
		return fileutil.FirstExisting(dir, FileNames)
	}
	path := explicitPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if !fileutil.FileExists(path) {
		return "", false
	}
	return path, true
}

// Parse decodes and validates a YAML or JSON configuration document.
// A document with no content (blank, comments or document markers only) is
// an empty configuration; an explicit null is not. Decoding failures are
// returned as is; shape violations wrap ErrInvalidConfig.
func Parse(data []byte) (*Config, error) {
	if isBlankDocument(data) {
		return &Config{}, nil
	}

	doc, err := yamlutil.Decode(data)
	if err != nil {
		return nil, err
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}

	return fromDocument(doc.(map[string]any)), nil
}

// isBlankDocument reports whether data holds only whitespace, YAML comments
// and document start or end markers.
func isBlankDocument(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0, line[0] == '#':
		case bytes.Equal(line, []byte("---")), bytes.Equal(line, []byte("...")):
		default:
			return false
		}
	}
	return true
}

// fromDocument maps a validated document onto Config.
func fromDocument(doc map[string]any) *Config {
	cfg := &Config{}
	fields := map[string]*[]PluginSpec{
		KeyRemarkPluginsBefore: &cfg.RemarkPluginsBefore,
		KeyRemarkPluginsAfter:  &cfg.RemarkPluginsAfter,
		KeyRehypePluginsBefore: &cfg.RehypePluginsBefore,
		KeyRehypePluginsAfter:  &cfg.RehypePluginsAfter,
	}

	for key, value := range doc {
		field, ok := fields[key]
		if !ok {
			if cfg.Extra == nil {
				cfg.Extra = make(map[string]any)
			}
			cfg.Extra[key] = value
			continue
		}

		entries := value.([]any)
		specs := make([]PluginSpec, 0, len(entries))
		for _, e := range entries {
			pair := e.([]any)
			spec := PluginSpec{Name: pair[0].(string), Options: map[string]any{}}
			if len(pair) == 2 {
				spec.Options = pair[1].(map[string]any)
			}
			specs = append(specs, spec)
		}
		*field = specs
	}

	return cfg
}
