// Package gitclient wraps the external "git" executable, the sole Git
// collaborator this driver needs: initializing a fresh repository after
// a package's on-disk layout has been materialized, generalized from
// init/InitPackage.cc's InitPackageRepository (which calls libgit2's
// git_repository_init directly; this driver shells out to the git CLI
// instead, since no libgit2 binding appears anywhere in the example
// corpus).
package gitclient

import (
	"fmt"
	"os/exec"
)

// Client runs git subcommands against the local system's git binary.
type Client struct {
	// Exe overrides the executable name/path used to invoke git; empty
	// means "git" resolved via PATH.
	Exe string
}

// New returns a Client that invokes the system "git" executable.
func New() *Client {
	return &Client{Exe: "git"}
}

func (c *Client) exe() string {
	if c.Exe == "" {
		return "git"
	}
	return c.Exe
}

// Init creates a fresh, empty Git repository at path (git init path).
// path must already exist as a directory.
func (c *Client) Init(path string) error {
	cmd := exec.Command(c.exe(), "init", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gitclient: git init %s: %w: %s", path, err, out)
	}
	return nil
}
