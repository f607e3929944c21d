package workflows

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/go-cmp/cmp"

	kerrors "github.com/PolarWolf314/projscan/internal/errors"
	logger "github.com/PolarWolf314/projscan/internal/logging"
	"github.com/PolarWolf314/projscan/internal/output"
	"github.com/PolarWolf314/projscan/internal/scan"
)

var testRoot = filepath.Join(string(filepath.Separator), "repo")

func writeTree(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	for name, content := range files {
		if err := util.WriteFile(fsys, name, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return fsys
}

func runScan(t *testing.T, opts ScanOptions) (*ScanResult, []string, []string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	opts.Root = testRoot
	opts.Stdout = &stdout
	opts.Logger = logger.Logger{Writer: &stderr}
	if opts.Mode == "" {
		opts.Mode = scan.ModeIgnore
	}
	if opts.Format == "" {
		opts.Format = output.FormatTriples
	}

	result, err := Scan(context.Background(), opts)
	return result, splitLines(stdout.String()), splitLines(stderr.String()), err
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestScanPrintsTriples(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		".git/HEAD":           "",
		"libs/p/project.json": `{"name":"P","targets":{"t1":{"configurations":{"debug":{},"release":{}}},"t2":{"configurations":{}}}}`,
	})

	result, stdout, stderr, err := runScan(t, ScanOptions{FS: fsys})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if diff := cmp.Diff([]string{"P:t1:debug", "P:t1:release"}, stdout); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if len(stderr) != 0 {
		t.Errorf("Expected no diagnostics, got %v", stderr)
	}
	if result.ProjectFiles != 1 || result.Parsed != 1 || result.Rows != 2 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestScanWarnsOnMalformedFileAndContinues(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		".git/HEAD":      "",
		"a/project.json": `{"name":"A","targets":{"build":{"configurations":{"prod":{}}}}}`,
		"b/project.json": `{"name": "B", "targets": `,
		"c/project.json": `{"name":"C","targets":{"test":{"configurations":{"ci":{}}}}}`,
	})

	result, stdout, stderr, err := runScan(t, ScanOptions{FS: fsys})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if diff := cmp.Diff([]string{"A:build:prod", "C:test:ci"}, stdout); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if len(stderr) != 1 {
		t.Fatalf("Expected exactly one warning, got %v", stderr)
	}
	if !strings.HasPrefix(stderr[0], "Warning: ") || !strings.Contains(stderr[0], "b/project.json") {
		t.Errorf("Expected warning naming b/project.json, got %q", stderr[0])
	}
	if result.Skipped != 1 || result.Parsed != 2 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestScanNeverEmitsIgnoredProjects(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		".git/HEAD":             "",
		".gitignore":            "dist/\n",
		"apps/web/project.json": `{"name":"web","targets":{"build":{"configurations":{"prod":{}}}}}`,
		"dist/web/project.json": `{"name":"dist-web","targets":{"build":{"configurations":{"prod":{}}}}}`,
		"tmp/project.json":      `{"name":"tmp","targets":{"build":{"configurations":{"prod":{}}}}}`,
	})

	_, stdout, _, err := runScan(t, ScanOptions{FS: fsys, Exclude: []string{"tmp/"}})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if diff := cmp.Diff([]string{"web:build:prod"}, stdout); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
}

func TestScanSimpleModeSkipsDotDirectoriesOnly(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		".git/HEAD":         "",
		".gitignore":        "dist/\n",
		".foo/project.json": `{"name":"hidden","targets":{"b":{"configurations":{"x":{}}}}}`,
		"dist/project.json": `{"name":"dist","targets":{"b":{"configurations":{"x":{}}}}}`,
	})

	_, stdout, _, err := runScan(t, ScanOptions{FS: fsys, Mode: scan.ModeSimple})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if diff := cmp.Diff([]string{"dist:b:x"}, stdout); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
}

func TestScanPathsFormat(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		".git/HEAD":             "",
		"apps/web/project.json": `{"name":"web"}`,
		"libs/bad/project.json": `not json`,
		"libs/ui/README.md":     "",
	})

	result, stdout, stderr, err := runScan(t, ScanOptions{FS: fsys, Format: output.FormatPaths})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []string{
		filepath.Join("apps", "web", "project.json"),
		filepath.Join("libs", "bad", "project.json"),
	}
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if len(stderr) != 0 {
		t.Errorf("Paths mode should not parse files, got diagnostics %v", stderr)
	}
	if result.Parsed != 0 || result.ProjectFiles != 2 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestScanIsIdempotent(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		".git/HEAD":        "",
		"z/project.json":   `{"name":"z","targets":{"b":{"configurations":{"x":{},"y":{}}}}}`,
		"a/project.json":   `{"name":"a","targets":{"b":{"configurations":{"x":{}}}}}`,
		"m/n/project.json": `{"name":"n","targets":{"t":{"configurations":{"q":{}}}}}`,
	})

	_, first, _, err := runScan(t, ScanOptions{FS: fsys})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	_, second, _, err := runScan(t, ScanOptions{FS: fsys})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Second scan differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a:b:x", "n:t:q", "z:b:x", "z:b:y"}, first); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
}

// failingFS fails to list one directory.
type failingFS struct {
	billy.Filesystem
	fail string
}

func (f failingFS) ReadDir(path string) ([]os.FileInfo, error) {
	if path == f.fail {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrPermission}
	}
	return f.Filesystem.ReadDir(path)
}

func TestScanTraversalErrors(t *testing.T) {
	newFS := func(t *testing.T) billy.Filesystem {
		return failingFS{
			Filesystem: writeTree(t, map[string]string{
				".git/HEAD":           "",
				"a/project.json":      `{"name":"a","targets":{"b":{"configurations":{"x":{}}}}}`,
				"locked/project.json": `{"name":"locked","targets":{"b":{"configurations":{"x":{}}}}}`,
				"z/project.json":      `{"name":"z","targets":{"b":{"configurations":{"x":{}}}}}`,
			}),
			fail: "locked",
		}
	}

	for _, mode := range scan.Modes {
		t.Run(string(mode)+"/warn", func(t *testing.T) {
			result, stdout, stderr, err := runScan(t, ScanOptions{FS: newFS(t), Mode: mode})
			if err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if diff := cmp.Diff([]string{"a:b:x", "z:b:x"}, stdout); diff != "" {
				t.Errorf("Output mismatch (-want +got):\n%s", diff)
			}
			if len(stderr) != 1 || !strings.Contains(stderr[0], "Error walking directory") {
				t.Errorf("Expected one traversal warning, got %v", stderr)
			}
			if result.WalkErrors != 1 {
				t.Errorf("Expected 1 walk error, got %d", result.WalkErrors)
			}
		})

		t.Run(string(mode)+"/strict", func(t *testing.T) {
			_, stdout, _, err := runScan(t, ScanOptions{FS: newFS(t), Mode: mode, Strict: true})
			if !errors.Is(err, kerrors.ErrTraversal) {
				t.Fatalf("Expected ErrTraversal, got: %v", err)
			}
			if !errors.Is(err, os.ErrPermission) {
				t.Errorf("Expected the cause to be kept, got: %v", err)
			}
			// Output before the failure has already been written.
			if diff := cmp.Diff([]string{"a:b:x"}, stdout); diff != "" {
				t.Errorf("Output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanHonoursGlobalExcludes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("home directory lookup differs on Windows")
	}
	home := "/home/tester"
	t.Setenv("HOME", home)

	globalFS := writeTree(t, map[string]string{
		home + "/.gitconfig":        "[core]\n\texcludesfile = " + home + "/.gitignore_global\n",
		home + "/.gitignore_global": "scratch/\n",
	})
	fsys := writeTree(t, map[string]string{
		".git/HEAD":            "",
		"scratch/project.json": `{"name":"scratch","targets":{"b":{"configurations":{"x":{}}}}}`,
		"keep/project.json":    `{"name":"keep","targets":{"b":{"configurations":{"x":{}}}}}`,
	})

	_, stdout, _, err := runScan(t, ScanOptions{FS: fsys, GlobalExcludes: true, GlobalFS: globalFS})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if diff := cmp.Diff([]string{"keep:b:x"}, stdout); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}

	_, stdout, _, err = runScan(t, ScanOptions{FS: fsys, GlobalFS: globalFS})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(stdout) != 2 {
		t.Errorf("Expected global excludes to be off, got %v", stdout)
	}
}

func TestScanReadsDefaultGlobalIgnoreFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("home directory lookup differs on Windows")
	}
	home := "/home/tester"
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	globalFS := writeTree(t, map[string]string{
		home + "/.config/git/ignore": "scratch/\n",
	})
	fsys := writeTree(t, map[string]string{
		".git/HEAD":            "",
		"scratch/project.json": `{"name":"scratch","targets":{"b":{"configurations":{"x":{}}}}}`,
		"keep/project.json":    `{"name":"keep","targets":{"b":{"configurations":{"x":{}}}}}`,
	})

	_, stdout, stderr, err := runScan(t, ScanOptions{FS: fsys, GlobalExcludes: true, GlobalFS: globalFS})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if diff := cmp.Diff([]string{"keep:b:x"}, stdout); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if len(stderr) != 0 {
		t.Errorf("Expected no diagnostics, got %v", stderr)
	}
}

func TestScanSkipsProjectWithInvalidUTF8(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		".git/HEAD":      "",
		"a/project.json": "{\"name\":\"P\xff\",\"targets\":{\"b\":{\"configurations\":{\"x\":{}}}}}",
		"b/project.json": `{"name":"B","targets":{"b":{"configurations":{"x":{}}}}}`,
	})

	result, stdout, stderr, err := runScan(t, ScanOptions{FS: fsys})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if diff := cmp.Diff([]string{"B:b:x"}, stdout); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if len(stderr) != 1 || !strings.Contains(stderr[0], "failed to read a/project.json") {
		t.Errorf("Expected one read warning for a/project.json, got %v", stderr)
	}
	if result.Skipped != 1 || result.Parsed != 1 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestScanRejectsUnknownOptions(t *testing.T) {
	fsys := writeTree(t, map[string]string{".git/HEAD": ""})

	if _, _, _, err := runScan(t, ScanOptions{FS: fsys, Mode: "fast"}); !errors.Is(err, kerrors.ErrUnknownMode) {
		t.Errorf("Expected ErrUnknownMode, got: %v", err)
	}
	if _, _, _, err := runScan(t, ScanOptions{FS: fsys, Format: "yaml"}); !errors.Is(err, kerrors.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got: %v", err)
	}
}

func TestLocateRoot(t *testing.T) {
	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}
	nested := filepath.Join(repo, "apps", "web")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create directories: %v", err)
	}

	root, err := LocateRoot(nested)
	if err != nil {
		t.Fatalf("LocateRoot failed: %v", err)
	}
	if root != repo {
		t.Errorf("LocateRoot = %q, want %q", root, repo)
	}
}

func TestScanIncludePatterns(t *testing.T) {
	fsys := writeTree(t, map[string]string{
		".git/HEAD":             "",
		"apps/web/project.json": `{"name":"web","targets":{"b":{"configurations":{"x":{}}}}}`,
		"libs/ui/project.json":  `{"name":"ui","targets":{"b":{"configurations":{"x":{}}}}}`,
		"libs/bad/project.json": `{`,
	})

	result, stdout, stderr, err := runScan(t, ScanOptions{FS: fsys, Include: []string{"apps/**"}})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if diff := cmp.Diff([]string{"web:b:x"}, stdout); diff != "" {
		t.Errorf("Output mismatch (-want +got):\n%s", diff)
	}
	if len(stderr) != 0 {
		t.Errorf("Excluded files should not be parsed, got %v", stderr)
	}
	if result.Excluded != 2 {
		t.Errorf("Expected 2 excluded files, got %d", result.Excluded)
	}

	if _, _, _, err := runScan(t, ScanOptions{FS: fsys, Include: []string{"[apps"}}); !errors.Is(err, kerrors.ErrInvalidPattern) {
		t.Errorf("Expected ErrInvalidPattern, got: %v", err)
	}
}
