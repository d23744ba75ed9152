// Package buffer implements the immutable per-version text snapshots that
// back every open document: UTF-8 storage with UTF-8<->UTF-16 offset
// arithmetic as required by the Language Server Protocol's position
// encoding.
package buffer

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Buffer is an immutable (uri, version, bytes) snapshot of a document.
// NewNormalized collapses line terminators to a single LF; New stores
// its bytes as given and expects them to be normalized already.
type Buffer struct {
	uri     string
	version int
	bytes   []byte
}

// New creates a Buffer from already-normalized bytes. Callers that may be
// handed raw client content should use NewNormalized instead.
func New(uri string, version int, bytes []byte) *Buffer {
	return &Buffer{uri: uri, version: version, bytes: bytes}
}

// NewNormalized normalizes CR and CRLF line terminators to LF and returns
// the resulting Buffer.
func NewNormalized(uri string, version int, raw []byte) *Buffer {
	return New(uri, version, Normalize(raw))
}

// Normalize collapses every CR and CRLF terminator in raw to a single LF.
// Applying it twice is equivalent to applying it once (it is idempotent):
// the output never contains a CR, so a second pass is a no-op.
func Normalize(raw []byte) []byte {
	if !containsCR(raw) {
		return raw
	}

	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			out = append(out, '\n')
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			continue
		}
		out = append(out, raw[i])
	}

	return out
}

func containsCR(raw []byte) bool {
	for _, b := range raw {
		if b == '\r' {
			return true
		}
	}

	return false
}

// URI returns the document identifier this buffer belongs to.
func (b *Buffer) URI() string { return b.uri }

// Version returns the buffer's monotonically increasing version.
func (b *Buffer) Version() int { return b.version }

// Bytes returns the normalized UTF-8 content. Callers must not mutate the
// returned slice.
func (b *Buffer) Bytes() []byte { return b.bytes }

// Text returns the normalized content as a string.
func (b *Buffer) Text() string { return string(b.bytes) }

// Size returns the total byte length of the document.
func (b *Buffer) Size() int { return len(b.bytes) }

// Offset resolves a (line, utf16Column) position to a byte offset, per
// spec.md §4.1. utf16Column is clamped to the line's UTF-16 length (the
// byte offset of the line terminator, or end-of-document on the final
// line). Returns ok=false if line is out of range.
func (b *Buffer) Offset(line, utf16Col int) (offset int, ok bool) {
	return Offset(b.bytes, line, utf16Col)
}

// LineCol resolves a byte offset to a (line, utf16Column) position, per
// spec.md §4.1. Returns ok=false if offset is out of range.
func (b *Buffer) LineCol(offset int) (line, utf16Col int, ok bool) {
	return LineCol(b.bytes, offset)
}

// Offset is the static form of Buffer.Offset, operating directly on a
// normalized byte slice.
func Offset(bytes []byte, line, utf16Col int) (int, bool) {
	lineStart, ok := lineStartOffset(bytes, line)
	if !ok {
		return 0, false
	}

	lineEnd := lineEndOffset(bytes, lineStart)

	pos := lineStart
	units := 0

	for pos < lineEnd {
		if units >= utf16Col {
			return pos, true
		}

		r, size := utf8.DecodeRune(bytes[pos:lineEnd])
		if r == utf8.RuneError && size <= 1 {
			// Malformed byte: treat as width-1 in both representations and
			// continue, per spec.md §4.1 edge cases.
			units++
			pos++
			continue
		}

		units += utf16Width(r)
		pos += size
	}

	// utf16Col reaches or exceeds the line's width: clamp to the
	// terminator (or end of document on the final line).
	return lineEnd, true
}

// LineCol is the static form of Buffer.LineCol.
func LineCol(bytes []byte, offset int) (int, int, bool) {
	if offset < 0 || offset > len(bytes) {
		return 0, 0, false
	}

	line := 0
	lineStart := 0

	for i := 0; i < offset; i++ {
		switch bytes[i] {
		case '\n':
			line++
			lineStart = i + 1
		}
	}

	units := 0
	pos := lineStart

	for pos < offset {
		r, size := utf8.DecodeRune(bytes[pos:])
		if r == utf8.RuneError && size <= 1 {
			units++
			pos++
			continue
		}

		// An offset inside a multi-byte codepoint resolves to the column
		// of that codepoint's first byte.
		if pos+size > offset {
			break
		}

		units += utf16Width(r)
		pos += size
	}

	return line, units, true
}

// lineStartOffset returns the byte offset of the first byte of the given
// 0-indexed line, scanning LF as the sole terminator (bytes is already
// normalized). Returns ok=false if line is beyond the document.
func lineStartOffset(bytes []byte, line int) (int, bool) {
	if line == 0 {
		return 0, true
	}

	seen := 0
	for i, c := range bytes {
		if c == '\n' {
			seen++
			if seen == line {
				return i + 1, true
			}
		}
	}

	return 0, false
}

// lineEndOffset returns the offset of the line terminator (or end of
// document) starting the scan at lineStart.
func lineEndOffset(bytes []byte, lineStart int) int {
	for i := lineStart; i < len(bytes); i++ {
		if bytes[i] == '\n' {
			return i
		}
	}

	return len(bytes)
}

// utf16Width returns the number of UTF-16 code units needed to encode r.
func utf16Width(r rune) int {
	if r >= 0x10000 {
		return 2
	}

	if utf16.IsSurrogate(r) {
		return 1
	}

	return 1
}

// Splice replaces bytes[start:end] with text and returns the result. It is
// the primitive incremental edits are built from; callers resolve (line,
// col) pairs to offsets via Offset before calling it.
func Splice(bytes []byte, start, end int, text string) ([]byte, error) {
	if start < 0 || end < start || end > len(bytes) {
		return nil, fmt.Errorf("buffer: splice range [%d:%d] out of bounds for %d-byte document", start, end, len(bytes))
	}

	out := make([]byte, 0, len(bytes)-(end-start)+len(text))
	out = append(out, bytes[:start]...)
	out = append(out, text...)
	out = append(out, bytes[end:]...)

	return out, nil
}

// LineCount returns the number of lines in bytes (the number of LF
// terminators, plus one for the trailing partial or empty line).
func LineCount(bytes []byte) int {
	return strings.Count(string(bytes), "\n") + 1
}
