package manifest

import (
	"regexp"
	"strings"

	"github.com/nitrate-lang/no3/internal/spdx"
)

// nameRegex is the authoritative package-name grammar: "@" then an
// optional lowercase ecosystem prefix ("gh-", "gl-", ...), an owner
// segment, "/", a 3-32 character name segment, then an optional
// ":<generation>" suffix.
var nameRegex = regexp.MustCompile(
	`^@([a-z]+-)?([a-zA-Z0-9]+|[a-zA-Z0-9][a-zA-Z0-9-]+[a-zA-Z0-9])/([a-zA-Z0-9][a-zA-Z0-9-]{1,30}[a-zA-Z0-9])(:\d+)?$`,
)

// GetNameRegex returns the compiled package-name pattern used by
// IsValidName.
func GetNameRegex() *regexp.Regexp {
	return nameRegex
}

// IsValidName reports whether name is a well-formed package name: it
// must match nameRegex, contain no "--" substring, and (unless it starts
// with the standard-library prefix "@std/") its owner segment must
// contain a hyphen identifying a Git provider.
func IsValidName(name string) bool {
	if !nameRegex.MatchString(name) {
		return false
	}

	if strings.Contains(name, "--") {
		return false
	}

	isStandardLib := strings.HasPrefix(name, "@std/")
	slash := strings.IndexByte(name, '/')
	if slash < 0 {
		return false
	}
	owner := name[1:slash]

	if !isStandardLib && !strings.Contains(owner, "-") {
		return false
	}

	return true
}

// IsValidLicense reports whether license is an exact (case-insensitive)
// match in the built-in SPDX identifier table.
func IsValidLicense(license string) bool {
	return spdx.IsExactMatch(license)
}
