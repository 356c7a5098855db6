// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData       = errors.New("yamlutil: nil or empty data")
	ErrInputTooLarge = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

// ToJSON converts a YAML (or JSON) document to its JSON encoding.
func ToJSON(data []byte) ([]byte, error) {
	if err := validateInput(data); err != nil {
		return nil, err
	}
	out, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// Decode parses a YAML document into generic values: map[string]any,
// []any, string, float64, bool and nil, the shapes encoding/json produces.
// Callers get one value model whatever the source syntax.
func Decode(data []byte) (any, error) {
	raw, err := ToJSON(data)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return v, nil
}
