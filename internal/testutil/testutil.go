// Package testutil provides testing utilities for texsnip tests.
package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteScript creates an executable shell script in dir and returns its
// path. The script prints output to stdout and exits with the given status.
// Tests that exercise subprocess handling use these instead of depending on
// a LaTeX toolchain being installed.
func WriteScript(t *testing.T, dir, name, output string, exitStatus int) string {
	t.Helper()

	SkipOnWindows(t)

	path := filepath.Join(dir, name)
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s' %q\nexit %d\n", output, exitStatus)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script %s: %v", name, err)
	}
	return path
}

// WriteStderrScript creates an executable shell script that writes to
// stderr before exiting, for verifying combined output capture.
func WriteStderrScript(t *testing.T, dir, name, stdout, stderr string, exitStatus int) string {
	t.Helper()

	SkipOnWindows(t)

	path := filepath.Join(dir, name)
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s' %q\nprintf '%%s' %q >&2\nexit %d\n", stdout, stderr, exitStatus)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script %s: %v", name, err)
	}
	return path
}

// SetupConfigDir points XDG_CONFIG_HOME at a scratch directory so tests
// never touch the user's real configuration, and returns the texsnip
// config directory inside it.
func SetupConfigDir(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)

	dir := filepath.Join(root, "texsnip")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	return dir
}

// WriteConfigFile writes content as the config file inside dir.
func WriteConfigFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// WriteLogLines writes raw lines as a texsnip.log file in dir, for tests
// that read logs back.
func WriteLogLines(t *testing.T, dir string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, "texsnip.log")
	var content string
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write log file: %v", err)
	}
	return path
}

// SkipOnWindows skips tests that depend on POSIX shell scripts or
// file descriptor semantics.
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX environment, skipping on windows")
	}
}

// SkipIfNoSh skips the test if /bin/sh is not available.
func SkipIfNoSh(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH, skipping test")
	}
}
