package format

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVerifyConfigAcceptsMinimalDocument(t *testing.T) {
	doc := map[string]any{
		"version": map[string]any{"major": 1.0, "minor": 0.0},
	}
	if !VerifyConfig(doc) {
		t.Fatalf("expected a bare version block to validate")
	}
}

func TestVerifyConfigAcceptsFullDocument(t *testing.T) {
	doc := map[string]any{
		"version": map[string]any{"major": 1.0, "minor": 0.0},
		"whitespace": map[string]any{
			"indent_width":    4.0,
			"use_tabs":        false,
			"max_line_length": 120.0,
		},
		"comments": map[string]any{
			"preserve":        true,
			"normalize_style": false,
		},
	}
	if !VerifyConfig(doc) {
		t.Fatalf("expected a fully populated document to validate")
	}
}

func TestVerifyConfigRejectsUnknownKeys(t *testing.T) {
	cases := []map[string]any{
		{"version": map[string]any{"major": 1.0, "minor": 0.0}, "unknown": true},
		{"version": map[string]any{"major": 1.0, "minor": 0.0}, "whitespace": map[string]any{"indent": 2.0}},
		{"version": map[string]any{"major": 1.0, "minor": 0.0}, "comments": map[string]any{"strip": true}},
		{"version": map[string]any{"major": 2.0, "minor": 0.0}},
		{},
	}

	for i, c := range cases {
		if VerifyConfig(c) {
			t.Errorf("case %d: expected rejection, got acceptance: %+v", i, c)
		}
	}
}

func TestLoadConfigMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "format.json")
	doc := `{"version":{"major":1,"minor":0},"whitespace":{"indent_width":4}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Whitespace.IndentWidth != 4 {
		t.Errorf("IndentWidth = %d, want 4", cfg.Whitespace.IndentWidth)
	}
	if !cfg.Comments.Preserve {
		t.Errorf("expected Comments.Preserve to retain its default of true")
	}
}

func TestLoadConfigRejectsBadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "format.json")
	if err := os.WriteFile(path, []byte(`{"version":{"major":2,"minor":0}}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected LoadConfig to reject an unsupported major version")
	}
}
