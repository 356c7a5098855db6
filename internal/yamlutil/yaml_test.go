package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2adf/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestDecode - Parses YAML into generic JSON-shaped values
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "mapping with sequences",
			data: []byte("name: test\nplugins:\n  - [toc, {maxDepth: 3}]\n"),
			check: func(t *testing.T, v any) {
				m, ok := v.(map[string]any)
				if !ok {
					t.Fatalf("value is %T, want map[string]any", v)
				}
				if m["name"] != "test" {
					t.Errorf("name = %v, want %q", m["name"], "test")
				}
				plugins, ok := m["plugins"].([]any)
				if !ok || len(plugins) != 1 {
					t.Fatalf("plugins = %#v, want one entry", m["plugins"])
				}
				entry, ok := plugins[0].([]any)
				if !ok || len(entry) != 2 {
					t.Fatalf("entry = %#v, want two elements", plugins[0])
				}
				opts, ok := entry[1].(map[string]any)
				if !ok {
					t.Fatalf("options = %T, want map[string]any", entry[1])
				}
				if opts["maxDepth"] != float64(3) {
					t.Errorf("maxDepth = %#v, want float64(3)", opts["maxDepth"])
				}
			},
		},
		{
			name: "JSON input",
			data: []byte(`{"a": [1, true, null]}`),
			check: func(t *testing.T, v any) {
				m := v.(map[string]any)
				list := m["a"].([]any)
				if len(list) != 3 || list[1] != true || list[2] != nil {
					t.Errorf("a = %#v, want [1 true nil]", list)
				}
			},
		},
		{
			name: "top-level sequence",
			data: []byte("- a\n- b\n"),
			check: func(t *testing.T, v any) {
				if _, ok := v.([]any); !ok {
					t.Errorf("value is %T, want []any", v)
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			wantErr: yamlutil.ErrNilData,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := yamlutil.Decode(tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, v)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecode_SyntaxError - Wraps parser errors with the package prefix
// ---------------------------------------------------------------------------

func TestDecode_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := yamlutil.Decode([]byte("key: [unclosed"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error %q should start with %q", err, "yamlutil:")
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Rejects oversized input
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	// Not parallel: mutates package-level MaxInputSize.
	original := yamlutil.MaxInputSize
	yamlutil.MaxInputSize = 16
	defer func() { yamlutil.MaxInputSize = original }()

	_, err := yamlutil.ToJSON([]byte("key: " + strings.Repeat("x", 32)))
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("error = %v, want ErrInputTooLarge", err)
	}

	if _, err := yamlutil.ToJSON([]byte("k: v")); err != nil {
		t.Errorf("small input error = %v", err)
	}
}
