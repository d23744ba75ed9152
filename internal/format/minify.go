package format

import "strings"

// MinifySource applies the same whitespace/comment stripping FormatFile
// uses in Minify mode to a raw source string, for callers (like `impl
// parse --format=minify`) that want minified text without writing to a
// file.
func MinifySource(src string, cfg Config) string {
	return minifyText(src, cfg)
}

// minifyText collapses insignificant whitespace out of src. Comments
// starting with "//" are dropped unless cfg.Comments.Preserve is set;
// block comments are left untouched since the stub frontend performs
// no real lexing and a naive scan risks corrupting string literals
// containing "/*".
func minifyText(src string, cfg Config) string {
	lines := strings.Split(src, "\n")
	var out []string

	for _, line := range lines {
		line = stripLineComment(line, cfg)
		line = strings.TrimSpace(line)
		line = collapseSpaces(line)
		if line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// stripLineComment removes a trailing "//" comment from line, unless
// comments are configured to be preserved. It does not attempt to
// distinguish a "//" inside a string literal from a real comment,
// matching the minifier's intentionally simple scope.
func stripLineComment(line string, cfg Config) string {
	if cfg.Comments.Preserve {
		return line
	}
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

// collapseSpaces replaces runs of horizontal whitespace with a single
// space.
func collapseSpaces(line string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range line {
		if r == ' ' || r == '\t' {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
