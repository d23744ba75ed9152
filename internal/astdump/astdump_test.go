package astdump

import (
	"encoding/json"
	"testing"

	"github.com/nitrate-lang/no3/internal/compiler"
)

func sampleProgram() *compiler.Program {
	return &compiler.Program{
		Filename: "main.nit",
		Root: &compiler.Node{
			Kind: "SourceFile",
			Text: "pub fn main(): i32 { ret 0; }",
			Line: 1, Column: 1,
		},
	}
}

func TestToJSONOmitsPositionsWithoutTracking(t *testing.T) {
	data, err := ToJSON(sampleProgram(), false)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, present := decoded["line"]; present {
		t.Errorf("expected no line field without tracking, got %v", decoded)
	}
	if decoded["kind"] != "SourceFile" {
		t.Errorf("kind = %v, want SourceFile", decoded["kind"])
	}
}

func TestToJSONIncludesPositionsWithTracking(t *testing.T) {
	data, err := ToJSON(sampleProgram(), true)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["line"] != float64(1) {
		t.Errorf("line = %v, want 1", decoded["line"])
	}
}

func TestToProtobufProducesNonEmptyPayload(t *testing.T) {
	data, err := ToProtobuf(sampleProgram(), true)
	if err != nil {
		t.Fatalf("ToProtobuf: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected a non-empty protobuf payload")
	}
}
