// Package assert holds the single internal-invariant helper used across
// the driver: a deliberate panic for programmer errors, distinct from
// the (T, error) returns used for everything recoverable (spec.md §7).
package assert

import "fmt"

// Invariant panics with msg if cond is false. Use only for conditions
// that indicate a bug in this program, never for recoverable failures
// (malformed input, missing files, network errors) which must be
// returned as errors instead.
func Invariant(cond bool, msg string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("invariant violated: "+msg, args...))
	}
}
