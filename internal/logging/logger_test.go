package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// readLogEntries parses every JSON line of the log file in dir.
func readLogEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info("starting render", "snippet", "x^2")
	logger.Debug("resolved renderer", "command", "pdflatex")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries := readLogEntries(t, dir)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	if entries[0]["msg"] != "starting render" {
		t.Errorf("msg = %v, want %q", entries[0]["msg"], "starting render")
	}
	if entries[0]["snippet"] != "x^2" {
		t.Errorf("snippet attr = %v, want %q", entries[0]["snippet"], "x^2")
	}
	if entries[1]["level"] != "DEBUG" {
		t.Errorf("level = %v, want DEBUG", entries[1]["level"])
	}
}

func TestNewLoggerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(filepath.Join(dir, LogFileName)); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("kept as well")
	logger.Close()

	entries := readLogEntries(t, dir)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["msg"] != "kept" {
		t.Errorf("msg = %v, want %q", entries[0]["msg"], "kept")
	}
}

func TestLoggerSourceAttribution(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info("direct call")
	end := logger.BeginInfo("grouped work")
	end(nil)
	logger.Close()

	entries := readLogEntries(t, dir)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Every record must point at this test file, not at the logger internals
	// or the testing harness. The group header is the easy one to get wrong:
	// it passes through one more wrapper frame than Info does.
	for _, entry := range entries {
		msg := entry["msg"].(string)
		src, ok := entry["source"].(map[string]any)
		if !ok {
			t.Fatalf("entry %q has no source object", msg)
		}
		file, _ := src["file"].(string)
		if !strings.HasSuffix(file, "logger_test.go") {
			t.Errorf("entry %q source file = %q, want logger_test.go", msg, file)
		}
	}

	if entries[1]["msg"] != "grouped work" {
		t.Fatalf("entry 1 = %q, want the group header", entries[1]["msg"])
	}
}

func TestLoggerNestedGroups(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info("outside")
	endOuter := logger.BeginInfo("outer")
	logger.Info("one deep")
	endInner := logger.BeginDebug("inner")
	logger.Info("two deep")
	endInner(nil)
	endOuter(errors.New("boom"))
	logger.Info("outside again")
	logger.Close()

	entries := readLogEntries(t, dir)
	msgs := make([]string, len(entries))
	for i, entry := range entries {
		msgs[i] = entry["msg"].(string)
	}

	want := []string{
		"outside",
		"outer",
		"  one deep",
		"  inner",
		"    two deep",
		"  inner done",
		"outer failed",
		"outside again",
	}

	if len(msgs) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(msgs), len(want), msgs)
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, msgs[i], want[i])
		}
	}
}

func TestLoggerSharedIndentAcrossChildren(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	child := logger.WithComponent("renderer")

	end := logger.BeginInfo("outer")
	child.Info("from child")
	end(nil)
	logger.Close()

	entries := readLogEntries(t, dir)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[1]["msg"] != "  from child" {
		t.Errorf("child msg = %q, want indentation from parent's group", entries[1]["msg"])
	}
	if entries[1]["component"] != "renderer" {
		t.Errorf("component = %v, want renderer", entries[1]["component"])
	}
}

func TestLoggerWith(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	child := logger.With("run_id", "abc123", "attempt", 2)
	child.Info("retrying")
	logger.Info("no extra attrs")
	logger.Close()

	entries := readLogEntries(t, dir)
	if entries[0]["run_id"] != "abc123" {
		t.Errorf("run_id = %v, want abc123", entries[0]["run_id"])
	}
	if entries[0]["attempt"] != float64(2) {
		t.Errorf("attempt = %v, want 2", entries[0]["attempt"])
	}
	if _, ok := entries[1]["run_id"]; ok {
		t.Error("parent logger should not carry child attrs")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()

	// Must not panic or write anywhere.
	logger.Info("discarded")
	end := logger.BeginInfo("discarded group")
	end(nil)

	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
