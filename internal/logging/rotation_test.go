package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingWriterNoRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFileName)

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 0, MaxBackups: 0})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}

	payload := []byte("a log line\n")
	if _, err := rw.Write(payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("file contents = %q, want %q", data, payload)
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFileName)

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}

	// Two writes of 600KB each exceed the 1MB limit on the second write.
	chunk := bytes.Repeat([]byte("x"), 600*1024)
	if _, err := rw.Write(chunk); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if _, err := rw.Write(chunk); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// The first chunk should have been moved to the .1 backup.
	backup, err := os.Stat(path + ".1")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if backup.Size() != int64(len(chunk)) {
		t.Errorf("backup size = %d, want %d", backup.Size(), len(chunk))
	}

	current, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected current log file: %v", err)
	}
	if current.Size() != int64(len(chunk)) {
		t.Errorf("current size = %d, want %d", current.Size(), len(chunk))
	}
}

func TestRotatingWriterBackupLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFileName)

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}

	chunk := bytes.Repeat([]byte("y"), 1024*1024)
	// Each write after the first triggers a rotation.
	for i := 0; i < 5; i++ {
		if _, err := rw.Write(chunk); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	for _, name := range []string{path, path + ".1", path + ".2"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("expected %s to exist: %v", filepath.Base(name), err)
		}
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("expected %s.3 to have been pruned", filepath.Base(path))
	}
}

func TestRotatingWriterWriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFileName)

	rw, err := NewRotatingWriter(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := rw.Write([]byte("late")); err == nil {
		t.Error("expected write after close to fail")
	}
}

func TestRotatingWriterCurrentSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFileName)

	rw, err := NewRotatingWriter(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	defer rw.Close()

	if rw.CurrentSize() != 0 {
		t.Errorf("CurrentSize = %d, want 0", rw.CurrentSize())
	}
	if _, err := rw.Write([]byte("12345")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if rw.CurrentSize() != 5 {
		t.Errorf("CurrentSize = %d, want 5", rw.CurrentSize())
	}
}
