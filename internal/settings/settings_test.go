package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/texsnip/texsnip/internal/errors"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(t.TempDir(), ConfigFileName)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 for missing file", s.Len())
	}
	if got := s.GetString("scale", "1.0"); got != "1.0" {
		t.Errorf("GetString default = %q, want %q", got, "1.0")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenConfig(dir)
	if err != nil {
		t.Fatalf("OpenConfig failed: %v", err)
	}

	s.Set("preamble", "\\usepackage{amsmath}")
	s.Set("scale", 1.5)
	s.Set("gui_shown", true)

	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := OpenConfig(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	if got := reloaded.GetString("preamble", ""); got != "\\usepackage{amsmath}" {
		t.Errorf("preamble = %q", got)
	}
	if got := reloaded.Get("scale", nil); got != 1.5 {
		t.Errorf("scale = %v, want 1.5", got)
	}
	if !reloaded.GetBool("gui_shown", false) {
		t.Error("gui_shown = false, want true")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	s, err := OpenConfig(dir)
	if err != nil {
		t.Fatalf("OpenConfig failed: %v", err)
	}
	s.Set("key", "value")

	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Errorf("expected config file to exist: %v", err)
	}
}

func TestOpenCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	_, err := OpenConfig(dir)
	if err == nil {
		t.Fatal("expected error for corrupt file")
	}

	var fatal *errors.FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("error = %T, want *errors.FatalError", err)
	}
	if fatal.Path != path {
		t.Errorf("Path = %q, want %q", fatal.Path, path)
	}
}

func TestOpenCacheToleratesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CacheFileName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	s, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 for corrupt cache", s.Len())
	}

	// A subsequent Save must replace the corrupt file.
	s.Set("last_preamble", "\\usepackage{tikz}")
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := OpenCache(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if got := reloaded.GetString("last_preamble", ""); got != "\\usepackage{tikz}" {
		t.Errorf("last_preamble = %q after recovery save", got)
	}
}

func TestOpenCacheMissingFile(t *testing.T) {
	s, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0 for missing cache", s.Len())
	}
}

func TestOpenCachePropagatesIOErrors(t *testing.T) {
	dir := t.TempDir()
	// A directory where the cache file should be produces a read error that
	// is neither a missing file nor a parse failure.
	if err := os.Mkdir(filepath.Join(dir, CacheFileName), 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	_, err := OpenCache(dir)
	if err == nil {
		t.Fatal("expected I/O error to propagate")
	}
	if errors.IsFatal(err) {
		t.Errorf("error = %v, want a plain read error, not a fatal parse error", err)
	}
}

func TestTypedGetters(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenConfig(dir)
	if err != nil {
		t.Fatalf("OpenConfig failed: %v", err)
	}
	s.Set("dpi", 300)
	s.Set("scale", "2")
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// JSON round trip turns numbers into float64; getters convert back.
	reloaded, err := OpenConfig(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	t.Run("int from float64", func(t *testing.T) {
		if got := reloaded.GetInt("dpi", 0); got != 300 {
			t.Errorf("GetInt = %d, want 300", got)
		}
	})

	t.Run("int from string", func(t *testing.T) {
		if got := reloaded.GetInt("scale", 0); got != 2 {
			t.Errorf("GetInt = %d, want 2", got)
		}
	})

	t.Run("default on wrong type", func(t *testing.T) {
		reloaded.Set("dpi", []any{1, 2})
		if got := reloaded.GetInt("dpi", 72); got != 72 {
			t.Errorf("GetInt = %d, want default 72", got)
		}
	})

	t.Run("default on missing key", func(t *testing.T) {
		if got := reloaded.GetBool("absent", true); got != true {
			t.Error("GetBool should fall back to default")
		}
	})
}

func TestDeleteAndHas(t *testing.T) {
	s, err := Open(t.TempDir(), ConfigFileName)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	s.Set("key", "value")
	if !s.Has("key") {
		t.Error("expected Has to be true after Set")
	}

	s.Delete("key")
	if s.Has("key") {
		t.Error("expected Has to be false after Delete")
	}
	if s.Has("never-set") {
		t.Error("expected Has to be false for unknown key")
	}
}

func TestNilValueFallsBackToDefault(t *testing.T) {
	s, err := Open(t.TempDir(), ConfigFileName)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	s.Set("explicit_null", nil)
	if got := s.Get("explicit_null", "fallback"); got != "fallback" {
		t.Errorf("Get = %v, want fallback for nil value", got)
	}
}

func TestSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenConfig(dir)
	if err != nil {
		t.Fatalf("OpenConfig failed: %v", err)
	}
	s.Set("key", "value")
	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// No temp files may be left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != ConfigFileName {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory contents = %v, want only %s", names, ConfigFileName)
	}
}
