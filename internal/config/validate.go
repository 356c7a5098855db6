package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaJSON describes a configuration document. Plugin entries mirror the
// [plugin, options?] pair accepted in code, with the plugin referenced by
// its registered name.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "remarkPluginsBefore": {"$ref": "#/$defs/plugins"},
    "remarkPluginsAfter":  {"$ref": "#/$defs/plugins"},
    "rehypePluginsBefore": {"$ref": "#/$defs/plugins"},
    "rehypePluginsAfter":  {"$ref": "#/$defs/plugins"}
  },
  "$defs": {
    "plugins": {
      "type": "array",
      "items": {"$ref": "#/$defs/entry"}
    },
    "entry": {
      "type": "array",
      "minItems": 1,
      "maxItems": 2,
      "prefixItems": [
        {"type": "string", "minLength": 1},
        {"type": "object"}
      ]
    }
  }
}`

const schemaURL = "config.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// Issue is a single validation failure.
type Issue struct {
	Location string // e.g. "remarkPluginsBefore[0][1]", or "config" for the document
	Message  string
}

func (i Issue) String() string {
	return i.Location + ": " + i.Message
}

// Validate checks the shape of a decoded configuration document.
// Every failure is reported, each naming its field and index.
func Validate(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("%w: compiling schema: %v", ErrInvalidConfig, err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	issues := collectIssues(validationErr)
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.String()
	}
	return fmt.Errorf("%w: %s (plugin entries are [name] or [name, {options}])",
		ErrInvalidConfig, strings.Join(parts, "; "))
}

// collectIssues flattens the leaves of a validation error tree.
func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: formatLocation(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

// formatLocation turns a JSON pointer such as "/remarkPluginsBefore/0/1"
// into "remarkPluginsBefore[0][1]".
func formatLocation(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return "config"
	}

	var b strings.Builder
	for i, token := range strings.Split(pointer, "/") {
		token = strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
		if _, err := strconv.Atoi(token); err == nil && i > 0 {
			b.WriteString("[" + token + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}
