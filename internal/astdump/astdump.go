// Package astdump renders a parsed compiler.Program as JSON or
// Protobuf, standing in for ASTWriter's JSON/PROTO formats in
// DumpAST.cc. Tracking (source positions) is optional, mirroring the
// original's OptionalSourceProvider toggle.
package astdump

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/nitrate-lang/no3/internal/compiler"
)

// ToMap converts a Node into a generic tree suitable for JSON or
// structpb encoding. When tracking is false, Line/Column are omitted
// so two dumps of the same source differ only in position data.
func ToMap(n *compiler.Node, tracking bool) map[string]any {
	if n == nil {
		return nil
	}

	m := map[string]any{
		"kind": n.Kind,
		"text": n.Text,
	}
	if tracking {
		m["line"] = n.Line
		m["column"] = n.Column
	}

	if len(n.Children) > 0 {
		children := make([]any, len(n.Children))
		for i, c := range n.Children {
			children[i] = ToMap(c, tracking)
		}
		m["children"] = children
	}

	return m
}

// ToJSON renders prog.Root as indented JSON.
func ToJSON(prog *compiler.Program, tracking bool) ([]byte, error) {
	return json.MarshalIndent(ToMap(prog.Root, tracking), "", "  ")
}

// ToProtobuf renders prog.Root as a structpb.Struct, marshaled to its
// binary wire format, letting a generic protobuf tree stand in for a
// language-specific generated AST message the way a real frontend
// would define one.
func ToProtobuf(prog *compiler.Program, tracking bool) ([]byte, error) {
	s, err := structpb.NewStruct(ToMap(prog.Root, tracking))
	if err != nil {
		return nil, fmt.Errorf("astdump: building protobuf struct: %w", err)
	}
	return proto.Marshal(s)
}
