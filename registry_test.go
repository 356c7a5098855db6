package md2adf

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-md2adf/internal/config"
	"github.com/alnah/go-md2adf/mdast"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()

	wantRemark := []string{ConfluenceMacrosName, HeadingTrackerName, StripTitleName}
	if got := r.RemarkNames(); !slices.Equal(got, wantRemark) {
		t.Errorf("RemarkNames() = %v, want %v", got, wantRemark)
	}
	wantRehype := []string{ConfluenceADFName, RewriteLinksName}
	if got := r.RehypeNames(); !slices.Equal(got, wantRehype) {
		t.Errorf("RehypeNames() = %v, want %v", got, wantRehype)
	}

	if _, ok := r.Remark(HeadingTrackerName); !ok {
		t.Errorf("Remark(%q) not found", HeadingTrackerName)
	}
	if _, ok := r.Rehype(HeadingTrackerName); ok {
		t.Errorf("Rehype(%q) found a remark plugin", HeadingTrackerName)
	}
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := r.RegisterRemark("noop", noopPlugin); err != nil {
		t.Fatalf("RegisterRemark() error = %v", err)
	}
	if err := r.RegisterRemark("noop", HeadingTracker); err != nil {
		t.Fatalf("RegisterRemark() replace error = %v", err)
	}

	p, ok := r.Remark("noop")
	if !ok {
		t.Fatal("Remark(noop) not found")
	}
	if got := funcName(p); got != "HeadingTracker" {
		t.Errorf("registered plugin = %q, want replacement HeadingTracker", got)
	}

	if err := r.RegisterRemark("", noopPlugin); !errors.Is(err, ErrInvalidPluginEntry) {
		t.Errorf("empty name error = %v, want ErrInvalidPluginEntry", err)
	}
	if err := r.RegisterRehype("x", nil); !errors.Is(err, ErrInvalidPluginEntry) {
		t.Errorf("nil plugin error = %v, want ErrInvalidPluginEntry", err)
	}
}

func TestResolveSpecs(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()

	t.Run("known names keep options", func(t *testing.T) {
		t.Parallel()

		entries, err := resolveSpecs([]config.PluginSpec{
			{Name: StripTitleName, Options: map[string]any{"level": float64(2)}},
			{Name: HeadingTrackerName, Options: map[string]any{}},
		}, r.Remark)
		if err != nil {
			t.Fatalf("resolveSpecs() error = %v", err)
		}
		if len(entries) != 2 || entries[0].Name != StripTitleName || entries[1].Name != HeadingTrackerName {
			t.Fatalf("entries = %+v", entries)
		}
		if entries[0].Options["level"] != float64(2) {
			t.Errorf("Options = %v", entries[0].Options)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := resolveSpecs[*mdast.Tree]([]config.PluginSpec{{Name: "nope"}}, r.Remark)
		if !errors.Is(err, ErrUnknownPlugin) {
			t.Fatalf("error = %v, want ErrUnknownPlugin", err)
		}
		if !strings.Contains(err.Error(), `"nope"`) {
			t.Errorf("error %q should name the plugin", err)
		}
	})
}
