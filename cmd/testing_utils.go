// Package cmd contains testing utilities shared by the command tests.
// They build throwaway repositories and run the command tree against them
// with captured output.
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// setupTestRepo creates a repository in a temporary directory, writes files
// into it and changes into it. User settings and the home directory are
// pointed at an empty temporary directory so the host's git and projscan
// configuration cannot leak into the test.
func setupTestRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	repo := t.TempDir()
	if err := os.Mkdir(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create .git: %v", err)
	}
	writeFiles(t, repo, files)

	userDir := t.TempDir()
	t.Setenv("HOME", userDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(userDir, ".config"))
	t.Setenv("NO_COLOR", "1")

	chdir(t, repo)
	return repo
}

// writeFiles writes each file under dir, creating parent directories.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// chdir changes the working directory and restores it when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
	})
}

// executeCommand runs a fresh command tree with args and returns what it
// wrote to stdout and stderr.
func executeCommand(args ...string) (string, string, error) {
	ResetGlobalState()

	var stdout, stderr bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	// cobra falls back to os.Args when args is nil.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
