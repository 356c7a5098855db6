package main

// Notes:
// - runMain is exercised end to end with the real transformer and a temp
//   WorkDir, so conventional config files in the repository never leak in.
// - maxprocs and signal delivery in main() are not tested.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	md2adf "github.com/alnah/go-md2adf"
)

// testEnv returns an Environment writing to buffers, rooted in a temp dir.
func testEnv(t *testing.T) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	return &Environment{Stdout: &stdout, Stderr: &stderr, WorkDir: t.TempDir()}, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestRunMain - Flags, exit codes and output
// ---------------------------------------------------------------------------

func TestRunMain_HelpAndVersion(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(t)
	if code := runMain([]string{"--help"}, env); code != ExitSuccess {
		t.Fatalf("--help exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "Usage: md2adf") {
		t.Errorf("help output missing usage line:\n%s", stdout)
	}

	stdout.Reset()
	if code := runMain([]string{"--version"}, env); code != ExitSuccess {
		t.Fatalf("--version exit = %d", code)
	}
	if got := stdout.String(); got != "md2adf "+Version+"\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestRunMain_UsageError(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(t)
	if code := runMain([]string{"--bogus"}, env); code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Usage: md2adf") {
		t.Errorf("stderr should include usage:\n%s", stderr)
	}
}

func TestRunMain_NoInput(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(t)
	if code := runMain(nil, env); code != ExitIO {
		t.Errorf("exit = %d, want %d", code, ExitIO)
	}
	if !strings.Contains(stderr.String(), "hint:") {
		t.Errorf("stderr should carry a hint:\n%s", stderr)
	}
}

func TestRunMain_SingleFileToStdout(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(t)
	writeTree(t, env.WorkDir, map[string]string{"page.md": "# Title\n\nBody"})

	code := runMain([]string{filepath.Join(env.WorkDir, "page.md")}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}

	var doc struct {
		Version int               `json:"version"`
		Type    string            `json:"type"`
		Content []json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if doc.Version != 1 || doc.Type != "doc" || len(doc.Content) != 2 {
		t.Errorf("unexpected document: %s", stdout)
	}
}

func TestRunMain_BatchToDirectory(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(t)
	writeTree(t, env.WorkDir, map[string]string{
		"docs/a.md":     "# A",
		"docs/sub/b.md": "- b",
	})
	out := filepath.Join(env.WorkDir, "out")

	code := runMain([]string{"-o", out, "-w", "2", filepath.Join(env.WorkDir, "docs")}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}

	for _, rel := range []string{"a.json", filepath.Join("sub", "b.json")} {
		data, err := os.ReadFile(filepath.Join(out, rel))
		if err != nil {
			t.Fatalf("missing output %s: %v", rel, err)
		}
		if !json.Valid(data) {
			t.Errorf("%s is not valid JSON", rel)
		}
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("summary missing:\n%s", stdout)
	}
}

func TestRunMain_PluginsFromConfig(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(t)
	writeTree(t, env.WorkDir, map[string]string{
		"markdown-confluence-sync.config.yaml": "remarkPluginsBefore:\n  - [strip-title]\n",
	})

	if code := runMain([]string{"--plugins"}, env); code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}

	var got md2adf.PluginConfiguration
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if len(got.Remark) != 2 || got.Remark[0] != md2adf.StripTitleName {
		t.Errorf("remark = %v, want [%s %s]", got.Remark, md2adf.StripTitleName, md2adf.ConfluenceMacrosName)
	}
}

func TestRunMain_ConfigErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing explicit config", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv(t)
		if code := runMain([]string{"--config", "absent.yaml", "--plugins"}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "markdown-confluence-sync.config.yaml") {
			t.Errorf("hint should name the conventional file:\n%s", stderr)
		}
	})

	t.Run("unknown plugin lists registered names", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv(t)
		writeTree(t, env.WorkDir, map[string]string{
			"custom.json": `{"rehypePluginsAfter": [["nope"]]}`,
		})
		if code := runMain([]string{"-c", "custom.json", "--plugins"}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), md2adf.RewriteLinksName) {
			t.Errorf("hint should list registered plugins:\n%s", stderr)
		}
	})

	t.Run("unknown code language", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t)
		if code := runMain([]string{"-l", "not-a-language", "--plugins"}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}
