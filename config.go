package md2adf

import "github.com/alnah/go-md2adf/internal/config"

// Config is a loaded configuration file.
type Config = config.Config

// PluginSpec is a plugin reference from a configuration file: a registered
// name and its options.
type PluginSpec = config.PluginSpec

// ConfigFileNames lists the conventional configuration file names, probed
// in order.
var ConfigFileNames = config.FileNames

// LoadConfig loads the configuration file at path, or the first
// conventional file in the working directory when path is empty.
// It returns nil, nil when no file exists.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// ParseConfig decodes and validates configuration file content (YAML or JSON).
func ParseConfig(data []byte) (*Config, error) {
	return config.Parse(data)
}
