package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestFileExists - Regular files only
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "existing file", path: file, want: true},
		{name: "directory", path: dir, want: false},
		{name: "missing", path: filepath.Join(dir, "missing.md"), want: false},
		{name: "empty path", path: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFirstExisting - Ordered probing
// ---------------------------------------------------------------------------

func TestFirstExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.yml", "c.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	got, ok := FirstExisting(dir, []string{"a.yaml", "b.yml", "c.json"})
	if !ok {
		t.Fatal("FirstExisting() ok = false, want true")
	}
	if want := filepath.Join(dir, "b.yml"); got != want {
		t.Errorf("FirstExisting() = %q, want %q", got, want)
	}

	if _, ok := FirstExisting(dir, []string{"nope"}); ok {
		t.Error("FirstExisting() ok = true for missing names")
	}
	if _, ok := FirstExisting(dir, nil); ok {
		t.Error("FirstExisting() ok = true for no names")
	}
}

// ---------------------------------------------------------------------------
// TestIsMarkdown / TestReplaceExt - Path helpers
// ---------------------------------------------------------------------------

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"doc.md":         true,
		"DOC.MD":         true,
		"a/b.markdown":   true,
		"notes.txt":      false,
		"md":             false,
		"archive.md.bak": false,
	}
	for path, want := range tests {
		if got := IsMarkdown(path); got != want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, ext, want string
	}{
		{"doc.md", ".json", "doc.json"},
		{"dir/page.markdown", ".json", "dir/page.json"},
		{"noext", ".json", "noext.json"},
	}
	for _, tt := range tests {
		tt := tt
		if got := ReplaceExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("ReplaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Writes, replaces, leaves no temp files
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("first write error = %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("second write error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (no leftover temp files)", len(entries))
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.json")
	if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Error("expected error for missing parent directory")
	}
}
