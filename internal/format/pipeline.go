// Package format implements the no3 source formatter: Standard mode
// re-renders a parsed source file's whitespace and comments under a
// Config, Minify strips everything insignificant, and Deflate wraps a
// minified payload behind a one-line "inflate on demand" preamble the
// runtime recognizes.
package format

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"golang.org/x/sync/errgroup"

	"github.com/nitrate-lang/no3/internal/compiler"
	"github.com/nitrate-lang/no3/internal/logging"
)

// Mode selects how FormatFile renders a parsed source file.
type Mode int

const (
	// Standard re-renders the source under the configured whitespace
	// and comment rules.
	Standard Mode = iota
	// Minify strips all insignificant whitespace and, unless
	// Config.Comments.Preserve is set, all "//" line comments; block
	// comments are kept.
	Minify
	// Deflate minifies, then raw-deflates the result behind a decode
	// preamble, falling back to plain minified output if deflating
	// does not actually save space.
	Deflate
)

func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case Minify:
		return "minify"
	case Deflate:
		return "deflate"
	default:
		return "unknown"
	}
}

const sourceExtension = ".nit"

// deflatePreamble is emitted verbatim ahead of the raw-deflated payload
// in Deflate mode; the runtime recognizes it, slices off its own
// length, and inflates the remainder.
const deflatePreamble = "@(n.emit(n.raw_inflate(n.source_slice(44))))"

// FileMapping pairs a discovered source path with where its formatted
// output should be written.
type FileMapping struct {
	Source      string
	Destination string
}

// Options controls one FormatFiles invocation.
type Options struct {
	// SourcePath is a single .nit file or a directory to walk
	// recursively for .nit files.
	SourcePath string
	// OutputPath is the destination file (SourcePath is a file) or
	// directory (SourcePath is a directory). Empty means format in
	// place: Destination == Source for every mapping.
	OutputPath string
	Mode       Mode
	Config     Config
}

// Result summarizes one FormatFiles invocation.
type Result struct {
	Succeeded []string
	Failed    map[string]error
}

// FormulateFileMapping walks sourcePath (or treats it as a single file)
// and pairs each discovered .nit file with its output destination
// under outputPath, mirroring the relative directory structure.
func FormulateFileMapping(sourcePath, outputPath string) ([]FileMapping, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("format: source path %s: %w", sourcePath, err)
	}

	if !info.IsDir() {
		dst := sourcePath
		if outputPath != "" {
			dst = outputPath
		}
		return []FileMapping{{Source: sourcePath, Destination: dst}}, nil
	}

	var mappings []FileMapping
	err = filepath.WalkDir(sourcePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != sourceExtension {
			return nil
		}

		rel, err := filepath.Rel(sourcePath, path)
		if err != nil {
			return err
		}

		dst := path
		if outputPath != "" {
			dst = filepath.Join(outputPath, rel)
		}
		mappings = append(mappings, FileMapping{Source: path, Destination: dst})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("format: walking %s: %w", sourcePath, err)
	}

	return mappings, nil
}

// FormatFiles runs FormatFile over every mapping concurrently, logging
// and collecting each outcome rather than aborting the batch on the
// first failure.
func FormatFiles(ctx context.Context, mappings []FileMapping, mode Mode, cfg Config, frontend compiler.Frontend, logger *logging.Logger) Result {
	result := Result{Failed: make(map[string]error)}

	type outcome struct {
		source string
		err    error
	}
	outcomes := make([]outcome, len(mappings))

	g, _ := errgroup.WithContext(ctx)
	for i, m := range mappings {
		i, m := i, m
		g.Go(func() error {
			err := FormatFile(m, mode, cfg, frontend)
			outcomes[i] = outcome{source: m.Source, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		if o.err != nil {
			logger.Warningf("format: %s: %v", o.source, o.err)
			result.Failed[o.source] = o.err
			continue
		}
		result.Succeeded = append(result.Succeeded, o.source)
	}

	return result
}

// FormatFile parses m.Source, renders it under mode, and writes the
// result to m.Destination. When Source and Destination are the same
// path, the write goes through a temp file in the same directory that
// is renamed into place, so a crash mid-write never leaves a truncated
// source file.
func FormatFile(m FileMapping, mode Mode, cfg Config, frontend compiler.Frontend) error {
	src, err := os.ReadFile(m.Source)
	if err != nil {
		return fmt.Errorf("reading %s: %w", m.Source, err)
	}

	prog, err := frontend.Parse(m.Source, src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", m.Source, err)
	}
	if prog.HasErrors() {
		return fmt.Errorf("parsing %s: %d diagnostic(s)", m.Source, len(prog.Diagnostics))
	}

	var out []byte
	switch mode {
	case Standard:
		out = []byte(renderStandard(prog, cfg))
	case Minify:
		out = []byte(minifyText(prog.Root.Text, cfg))
	case Deflate:
		out, err = renderDeflate(prog.Root.Text, cfg)
		if err != nil {
			return fmt.Errorf("deflating %s: %w", m.Source, err)
		}
	default:
		return fmt.Errorf("unknown format mode %v", mode)
	}

	if m.Source == m.Destination {
		return atomicWrite(m.Destination, out)
	}

	if dir := filepath.Dir(m.Destination); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return os.WriteFile(m.Destination, out, 0o644)
}

// atomicWrite writes data to "<path>.<16 hex>.fmt.tmp" and renames it
// over path, so readers never observe a partial file.
func atomicWrite(path string, data []byte) error {
	var suffix [8]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return fmt.Errorf("generating temp suffix: %w", err)
	}

	tmp := path + "." + hex.EncodeToString(suffix[:]) + ".fmt.tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	return nil
}

// renderStandard re-indents source lines under cfg.Whitespace. The
// stub frontend hands back the raw source as a single leaf node, so
// "standard" rendering here is limited to whitespace normalization; a
// language-aware frontend would drive a real pretty-printer from
// prog.Root instead.
func renderStandard(prog *compiler.Program, cfg Config) string {
	indentUnit := strings.Repeat(" ", int(cfg.Whitespace.IndentWidth))
	if cfg.Whitespace.UseTabs {
		indentUnit = "\t"
	}

	lines := strings.Split(prog.Root.Text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		leading := len(trimmed) - len(strings.TrimLeft(trimmed, " \t"))
		if leading == 0 {
			lines[i] = trimmed
			continue
		}
		depth := leading / 2
		lines[i] = strings.Repeat(indentUnit, depth) + strings.TrimLeft(trimmed, " \t")
	}
	return strings.Join(lines, "\n")
}

// renderDeflate minifies src, raw-deflates the result at the highest
// compression level, and prepends deflatePreamble. If the deflated
// form is not smaller than the plain minified form, deflation buys
// nothing and the minified text is returned unchanged.
func renderDeflate(src string, cfg Config) ([]byte, error) {
	minified := minifyText(src, cfg)

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte(minified)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	deflated := append([]byte(deflatePreamble), buf.Bytes()...)
	if len(deflated) >= len(minified) {
		return []byte(minified), nil
	}
	return deflated, nil
}
