// Package spdx implements the built-in SPDX license identifier table:
// exact case-insensitive membership test and closest-match suggestion,
// generalized from core/static/SPDX.cc. The web-lookup half of the
// original (SPDX-API.cc) is out of scope; this package only ever
// consults the identifiers compiled into the binary.
package spdx

import (
	"strings"

	"github.com/nitrate-lang/no3/internal/assert"
)

// identifiers is keyed by lowercase SPDX id, valued by the canonical
// (case-sensitive) spelling, mirroring SPDX_IDENTIFIERS in the original.
// It is not exhaustive of the full SPDX license list, only the
// identifiers a package manifest is likely to carry.
var identifiers = buildTable(
	"0BSD", "AFL-3.0", "AGPL-3.0-only", "AGPL-3.0-or-later", "Apache-2.0",
	"Artistic-2.0", "BSD-2-Clause", "BSD-3-Clause", "BSL-1.0", "CC0-1.0",
	"CC-BY-4.0", "CC-BY-SA-4.0", "EPL-1.0", "EPL-2.0", "GPL-2.0-only",
	"GPL-2.0-or-later", "GPL-3.0-only", "GPL-3.0-or-later", "ISC",
	"LGPL-2.1-only", "LGPL-2.1-or-later", "LGPL-3.0-only", "LGPL-3.0-or-later",
	"MIT", "MIT-0", "MPL-2.0", "MS-PL", "NCSA", "OFL-1.1", "OSL-3.0",
	"PostgreSQL", "Unlicense", "WTFPL", "Zlib",
)

func buildTable(ids ...string) map[string]string {
	m := make(map[string]string, len(ids))
	for _, id := range ids {
		m[strings.ToLower(id)] = id
	}
	return m
}

// IsExactMatch reports whether query matches an SPDX identifier exactly,
// ignoring case.
func IsExactMatch(query string) bool {
	_, ok := identifiers[strings.ToLower(query)]
	return ok
}

// Suggest returns the SPDX identifier with the smallest Levenshtein
// distance to query, for CLI diagnostics ("did you mean ...?"). It
// panics if the table is empty, which never happens with the built-in
// table.
func Suggest(query string) string {
	assert.Invariant(len(identifiers) != 0, "spdx: identifier table is empty")

	lower := strings.ToLower(query)

	var (
		best     string
		bestDist = -1
	)
	for lowerID, canonical := range identifiers {
		dist := levenshtein(lowerID, lower)
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			best = canonical
		}
	}

	return best
}

// levenshtein computes the edit distance between a and b.
func levenshtein(a, b string) int {
	m, n := len(a), len(b)
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
