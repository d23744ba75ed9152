// Package initpkg materializes a new package's on-disk layout: the
// docs/src tree, templated documentation files, the initial no3.json
// manifest, and a fresh Git repository, generalized from
// init/InitPackage.cc and init/InitialData.cc.
package initpkg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nitrate-lang/no3/internal/gitclient"
	"github.com/nitrate-lang/no3/internal/logging"
	"github.com/nitrate-lang/no3/internal/manifest"
)

// sourceExt is the file extension for generated and formatted source
// files.
const sourceExt = ".nit"

// Options describes the package CreatePackage materializes.
type Options struct {
	Name        string
	Description string
	License     string
	Version     manifest.Version
	Category    manifest.Category
}

// CreatePackage creates a new package directory tree at packagePath and
// initializes a Git repository in it. It fails without creating
// anything if packagePath already exists; a failure partway through
// writing files leaves a partial tree behind (the caller is expected to
// remove it), matching the original's per-file atomicity.
func CreatePackage(packagePath string, opts Options, logger *logging.Logger, git *gitclient.Client) error {
	logger.Debugf("CreatePackage: initializing new package at %s", packagePath)

	exists, err := pathExists(packagePath)
	if err != nil {
		return fmt.Errorf("initpkg: checking %s: %w", packagePath, err)
	}
	if exists {
		return fmt.Errorf("initpkg: package directory already exists: %s", packagePath)
	}

	if err := writeDirectoryStructure(packagePath, opts, logger); err != nil {
		return err
	}

	if err := git.Init(packagePath); err != nil {
		return fmt.Errorf("initpkg: %w", err)
	}

	logger.Debugf("CreatePackage: successfully initialized package at %s", packagePath)
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// createLocalFile writes init to path, creating parent directories as
// needed. It fails if path already exists, matching CreateLocalFile's
// refusal to overwrite.
func createLocalFile(path string, init string, logger *logging.Logger) error {
	exists, err := pathExists(path)
	if err != nil {
		return fmt.Errorf("initpkg: checking %s: %w", path, err)
	}
	if exists {
		logger.Warningf("createLocalFile: file already exists: %s", path)
		return fmt.Errorf("initpkg: file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("initpkg: creating parent directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(init), 0o644); err != nil {
		return fmt.Errorf("initpkg: writing %s: %w", path, err)
	}

	logger.Tracef("createLocalFile: wrote %d bytes to %s", len(init), path)
	return nil
}

func writeDirectoryStructure(packagePath string, opts Options, logger *logging.Logger) error {
	logger.Tracef("writeDirectoryStructure: initializing default package files at %s", packagePath)

	if err := createLocalFile(filepath.Join(packagePath, "docs", ".gitkeep"), GenerateGitKeep(), logger); err != nil {
		return err
	}

	switch opts.Category {
	case manifest.Library, manifest.StandardLibrary:
		src := filepath.Join(packagePath, "src", "lib"+sourceExt)
		if err := createLocalFile(src, GenerateDefaultLibrarySource(), logger); err != nil {
			return err
		}
	case manifest.Executable:
		src := filepath.Join(packagePath, "src", "main"+sourceExt)
		if err := createLocalFile(src, GenerateDefaultMainSource(), logger); err != nil {
			return err
		}
	}

	if err := createLocalFile(filepath.Join(packagePath, "README.md"), GenerateReadme(opts), logger); err != nil {
		return err
	}
	if err := createLocalFile(filepath.Join(packagePath, "LICENSE"), GenerateLicense(opts.License), logger); err != nil {
		return err
	}
	if err := createLocalFile(filepath.Join(packagePath, "CODE_OF_CONDUCT.md"), GenerateCodeOfConduct(), logger); err != nil {
		return err
	}
	if err := createLocalFile(filepath.Join(packagePath, "CONTRIBUTING.md"), GenerateContributingPolicy(opts), logger); err != nil {
		return err
	}
	if err := createLocalFile(filepath.Join(packagePath, "SECURITY.md"), GenerateSecurityPolicy(opts.Name), logger); err != nil {
		return err
	}
	if err := createLocalFile(filepath.Join(packagePath, ".gitignore"), GenerateGitIgnore(), logger); err != nil {
		return err
	}
	if err := createLocalFile(filepath.Join(packagePath, ".dockerignore"), GenerateDockerIgnore(), logger); err != nil {
		return err
	}
	if err := createLocalFile(filepath.Join(packagePath, "CMakeLists.txt"), GenerateCMakeListsTxt(opts.Name), logger); err != nil {
		return err
	}

	manifestBody, err := generateInitialManifest(opts)
	if err != nil {
		return fmt.Errorf("initpkg: generating initial manifest: %w", err)
	}
	if err := createLocalFile(filepath.Join(packagePath, "no3.json"), manifestBody, logger); err != nil {
		return err
	}

	logger.Tracef("writeDirectoryStructure: successfully initialized package directory structure at %s", packagePath)
	return nil
}

// defaultOptimization returns the rapid/debug/release flag sets a freshly
// initialized package ships with (InitPackage.cc's literal -O0/-O2/-O3
// assignment).
func defaultOptimization() manifest.Optimization {
	opt := manifest.DefaultOptimization()
	opt.Rapid = manifest.Switch{
		Alpha: []string{"-O0"}, Beta: []string{"-O0"}, Gamma: []string{"-O0"},
		LLVM: []string{"-O1"}, LTO: []string{"-O0"}, Runtime: []string{"-O0"},
	}
	opt.Debug = manifest.Switch{
		Alpha: []string{"-O2"}, Beta: []string{"-O2"}, Gamma: []string{"-O2"},
		LLVM: []string{"-O3"}, LTO: []string{"-O0"}, Runtime: []string{"-O1"},
	}
	opt.Release = manifest.Switch{
		Alpha: []string{"-O3"}, Beta: []string{"-O3"}, Gamma: []string{"-O3"},
		LLVM: []string{"-O3"}, LTO: []string{"-O3"}, Runtime: []string{"-O3"},
	}
	return opt
}

func generateInitialManifest(opts Options) (string, error) {
	m := manifest.New(opts.Name, opts.Description)
	m.License = opts.License
	m.Category = opts.Category
	m.Version = opts.Version
	m.Optimization = defaultOptimization()

	data, correctSchema, err := m.ToJSON(false)
	if err != nil {
		return "", err
	}
	if !correctSchema {
		return "", fmt.Errorf("initial manifest failed its own schema validation")
	}

	return string(data), nil
}
