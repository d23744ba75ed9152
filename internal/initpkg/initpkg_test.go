package initpkg

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nitrate-lang/no3/internal/gitclient"
	"github.com/nitrate-lang/no3/internal/logging"
	"github.com/nitrate-lang/no3/internal/manifest"
)

func testLogger() *logging.Logger {
	return logging.New("test", logging.Error, io.Discard, 0)
}

func TestCreatePackageExecutable(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in test environment")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "pkg")

	opts := Options{
		Name:        "@gh-x/pkg",
		Description: "an example package",
		License:     "MIT",
		Version:     manifest.NewVersion(0, 0, 0),
		Category:    manifest.Executable,
	}

	if err := CreatePackage(target, opts, testLogger(), gitclient.New()); err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}

	for _, rel := range []string{
		"docs/.gitkeep", "src/main.nit", "README.md", "LICENSE",
		"CODE_OF_CONDUCT.md", "CONTRIBUTING.md", "SECURITY.md",
		".gitignore", ".dockerignore", "CMakeLists.txt", "no3.json", ".git",
	} {
		if _, err := os.Stat(filepath.Join(target, rel)); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(target, "no3.json"))
	if err != nil {
		t.Fatalf("reading no3.json: %v", err)
	}
	if _, err := manifest.FromJSON(data); err != nil {
		t.Errorf("generated no3.json failed validation: %v", err)
	}
}

func TestCreatePackageFailsIfDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "pkg")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	opts := Options{Name: "@gh-x/y", License: "MIT", Category: manifest.Executable}
	if err := CreatePackage(target, opts, testLogger(), gitclient.New()); err == nil {
		t.Fatalf("expected CreatePackage to refuse an existing directory")
	}
}

func TestGenerateReadmeMentionsGithubInstall(t *testing.T) {
	opts := Options{Name: "@gh-acme/widgets", Description: "widgets", License: "MIT", Category: manifest.Library}
	readme := GenerateReadme(opts)

	if !strings.Contains(readme, "github.com/acme/widgets") {
		t.Errorf("expected README to reference the GitHub install path, got:\n%s", readme)
	}
}
