package lspserver

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/nitrate-lang/no3/internal/logging"
	"github.com/nitrate-lang/no3/internal/rpc"
)

func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	logger := logging.New("test", logging.Error, io.Discard, 0)
	return NewContext(rpc.NewWriter(&out), logger), &out
}

func TestExecuteRPC_RejectsRequestBeforeInitialize(t *testing.T) {
	ctx, out := newTestContext(t)

	ctx.ExecuteRPC(&rpc.Message{Kind: rpc.KindRequest, Method: "shutdown", ID: rpc.NewIntID(1)})

	var env map[string]json.RawMessage
	decodeFrame(t, out, &env)

	if _, hasErr := env["error"]; !hasErr {
		t.Fatalf("expected an error response before initialize, got %s", out.String())
	}
}

func TestExecuteRPC_InitializeSucceeds(t *testing.T) {
	ctx, out := newTestContext(t)

	ctx.ExecuteRPC(&rpc.Message{Kind: rpc.KindRequest, Method: "initialize", ID: rpc.NewIntID(1)})

	var env map[string]json.RawMessage
	decodeFrame(t, out, &env)

	if _, hasResult := env["result"]; !hasResult {
		t.Fatalf("expected a result response to initialize, got %s", out.String())
	}

	if !ctx.initialized.Load() {
		t.Fatalf("Context not marked initialized after initialize")
	}
}

func TestExecuteRPC_NotificationBeforeInitDropped(t *testing.T) {
	ctx, out := newTestContext(t)

	ctx.ExecuteRPC(&rpc.Message{Kind: rpc.KindNotification, Method: "textDocument/didOpen"})

	if out.Len() != 0 {
		t.Fatalf("expected no output for a dropped notification, got %s", out.String())
	}
}

func TestExecuteRPC_InitializedThenDidOpenDidChange(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.ExecuteRPC(&rpc.Message{Kind: rpc.KindRequest, Method: "initialize", ID: rpc.NewIntID(1)})

	openParams, _ := json.Marshal(map[string]any{
		"textDocument": map[string]any{
			"uri":        "file:///a.no3",
			"languageId": "no3",
			"version":    1,
			"text":       "hello\nworld",
		},
	})
	ctx.ExecuteRPC(&rpc.Message{Kind: rpc.KindNotification, Method: "textDocument/didOpen", Params: openParams})

	if ctx.docs.Len() != 1 {
		t.Fatalf("expected one open document, got %d", ctx.docs.Len())
	}

	changeParams, _ := json.Marshal(map[string]any{
		"textDocument": map[string]any{"uri": "file:///a.no3", "version": 2},
		"contentChanges": []map[string]any{
			{
				"range": map[string]any{
					"start": map[string]any{"line": 0, "character": 5},
					"end":   map[string]any{"line": 0, "character": 5},
				},
				"text": ",",
			},
		},
	})
	ctx.ExecuteRPC(&rpc.Message{Kind: rpc.KindNotification, Method: "textDocument/didChange", Params: changeParams})

	b, ok := ctx.docs.Get("file:///a.no3")
	if !ok {
		t.Fatalf("document disappeared after didChange")
	}

	if got := b.Text(); got != "hello,\nworld" {
		t.Errorf("buffer text = %q, want %q", got, "hello,\nworld")
	}
}

func decodeFrame(t *testing.T, buf *bytes.Buffer, v any) {
	t.Helper()

	s := buf.String()
	idx := strings.Index(s, "\r\n\r\n")
	if idx < 0 {
		t.Fatalf("no frame separator in output: %q", s)
	}

	if err := json.Unmarshal([]byte(s[idx+4:]), v); err != nil {
		t.Fatalf("failed to decode frame body: %v", err)
	}
}
