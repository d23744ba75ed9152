// Package manifest implements the package descriptor model serialized at
// <package>/no3.json: its schema, validation rules, and bidirectional JSON
// mapping, generalized from core/package/Manifest.hh and Manifest.cc.
package manifest

import "github.com/google/uuid"

// Category classifies what a package produces.
type Category int

const (
	Executable Category = iota
	Library
	StandardLibrary
)

func (c Category) String() string {
	switch c {
	case StandardLibrary:
		return "std"
	case Library:
		return "lib"
	case Executable:
		return "exe"
	default:
		return "exe"
	}
}

func parseCategory(s string) (Category, bool) {
	switch s {
	case "std":
		return StandardLibrary, true
	case "lib":
		return Library, true
	case "exe":
		return Executable, true
	default:
		return 0, false
	}
}

// Version is a major.minor.patch triple. Minor defaults to 1 when built
// with NewVersion and no patch supplied, matching the default-constructed
// manifest in the original model.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// NewVersion constructs a Version, defaulting Minor to 1 when the caller
// passes 0 minor and 0 patch (the manifest's default-constructed version).
func NewVersion(major, minor, patch uint32) Version {
	if minor == 0 && patch == 0 {
		minor = 1
	}
	return Version{Major: major, Minor: minor, Patch: patch}
}

// ContactRole is one of the closed set of roles a Contact may hold.
type ContactRole int

const (
	Owner ContactRole = iota
	Contributor
	Maintainer
	Support
)

func (r ContactRole) String() string {
	switch r {
	case Owner:
		return "owner"
	case Contributor:
		return "contributor"
	case Maintainer:
		return "maintainer"
	case Support:
		return "support"
	default:
		return "contributor"
	}
}

func parseContactRole(s string) (ContactRole, bool) {
	switch s {
	case "owner":
		return Owner, true
	case "contributor":
		return Contributor, true
	case "maintainer":
		return Maintainer, true
	case "support":
		return Support, true
	default:
		return 0, false
	}
}

// Contact is a person associated with a package.
type Contact struct {
	Name  string
	Email string
	Phone string // empty means unset
	Roles []ContactRole
}

// Platforms restricts which build targets a package allows or denies.
// Both default to ["*"] (wildcard allow, wildcard deny) on a fresh
// manifest, matching the original's default-constructed Platforms.
type Platforms struct {
	Allow []string
	Deny  []string
}

// DefaultPlatforms returns the wildcard-allow, wildcard-deny default.
func DefaultPlatforms() Platforms {
	return Platforms{Allow: []string{"*"}, Deny: []string{"*"}}
}

// Switch is the set of compiler flags active at one optimization stage.
type Switch struct {
	Alpha   []string
	Beta    []string
	Gamma   []string
	LLVM    []string
	LTO     []string
	Runtime []string
}

// Requirements is the minimum hardware a profile needs to build or run.
// Defaults match the original's Optimization::Requirements constructor:
// 1 core, 2 MiB memory, 0 storage.
type Requirements struct {
	MinCores   uint32
	MinMemory  uint32
	MinStorage uint32
}

// DefaultRequirements returns the manifest's default hardware floor.
func DefaultRequirements() Requirements {
	return Requirements{MinCores: 1, MinMemory: 2 * 1024 * 1024, MinStorage: 0}
}

// Optimization holds the three mandatory, non-removable build profiles
// (rapid, debug, release) plus the hardware requirements shared across
// them.
type Optimization struct {
	Rapid        Switch
	Debug        Switch
	Release      Switch
	Requirements Requirements
}

// DefaultOptimization returns an Optimization with all three profiles
// present and empty, and default Requirements.
func DefaultOptimization() Optimization {
	return Optimization{Requirements: DefaultRequirements()}
}

// Dependency references another package by UUID and the minimum version
// required.
type Dependency struct {
	UUID    string
	Version Version
}

// NewDependencyUUID generates a fresh random UUID suitable for a new
// Dependency entry, in the same dashed hex form VerifyUntrustedJSON
// checks dependency uuids against.
func NewDependencyUUID() string {
	return uuid.NewString()
}

// AddDependency appends a dependency on the package identified by
// depUUID at the given minimum version, validating depUUID's shape
// first.
func (m *Manifest) AddDependency(depUUID string, version Version) error {
	if _, err := uuid.Parse(depUUID); err != nil {
		return err
	}

	m.Dependencies = append(m.Dependencies, Dependency{UUID: depUUID, Version: version})
	return nil
}

// Manifest is the package descriptor record serialized as no3.json.
type Manifest struct {
	Name         string
	Description  string
	License      string
	Category     Category
	Version      Version
	Contacts     []Contact
	Platforms    Platforms
	Optimization Optimization
	Dependencies []Dependency

	// Blockchain carries an opaque, shape-checked ownership/signature
	// chain. No cryptography is implemented here; entries are validated
	// structurally and otherwise passed through unchanged.
	Blockchain []BlockchainEntry
}

// BlockchainEntry is one link in the manifest's ownership chain. Its
// fields are shape-checked by VerifyUntrustedJSON but never interpreted.
type BlockchainEntry struct {
	UUID      string
	Category  string // one of "eco-root", "eco-domain", "user-account", "package", "subpackage"
	PublicKey KeyPair
	Signature Signature
}

// KeyPair is an ed25519 public key, shape-checked as {"type":"ed25519","value":<64 hex chars>}.
type KeyPair struct {
	Type  string
	Value string
}

// Signature is an ed25519 signature, shape-checked as {"type":"ed25519","value":<128 hex chars>}.
type Signature struct {
	Type  string
	Value string
}

// New returns a default-constructed Manifest: category Executable,
// license "MIT", version 0.1, wildcard platforms, default optimization
// profiles, and no contacts, dependencies, or blockchain entries.
func New(name, description string) Manifest {
	return Manifest{
		Name:         name,
		Description:  description,
		License:      "MIT",
		Category:     Executable,
		Version:      NewVersion(0, 0, 0),
		Platforms:    DefaultPlatforms(),
		Optimization: DefaultOptimization(),
	}
}
