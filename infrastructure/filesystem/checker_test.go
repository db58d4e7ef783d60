package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChecker(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(file, []byte("12345"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c := NewChecker()

	if !c.Exists(file) {
		t.Error("Exists() = false for existing file")
	}
	if c.Exists(filepath.Join(dir, "missing.mkv")) {
		t.Error("Exists() = true for missing file")
	}
	if !c.IsWritableDir(dir) {
		t.Error("IsWritableDir() = false for temp dir")
	}
	if c.IsWritableDir(file) {
		t.Error("IsWritableDir() = true for a regular file")
	}
	if c.IsWritableDir(filepath.Join(dir, "nope")) {
		t.Error("IsWritableDir() = true for a missing dir")
	}
	if got := c.Size(file); got != 5 {
		t.Errorf("Size() = %d, want 5", got)
	}
	if got := c.Size(filepath.Join(dir, "missing.mkv")); got != 0 {
		t.Errorf("Size() of missing file = %d, want 0", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("IsWritableDir() left %d entries behind, want 1", len(entries))
	}
}
