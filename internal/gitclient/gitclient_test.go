package gitclient

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestInitCreatesRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in test environment")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "pkg")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if err := New().Init(target); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if _, err := os.Stat(filepath.Join(target, ".git")); err != nil {
		t.Errorf("expected .git directory after Init: %v", err)
	}
}
