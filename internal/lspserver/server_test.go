package lspserver

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/nitrate-lang/no3/internal/logging"
)

func frame(body string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestServe_InitializeThenExitReturnsCleanly(t *testing.T) {
	var in bytes.Buffer
	in.WriteString(frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`))
	in.WriteString(frame(`{"jsonrpc":"2.0","method":"initialized"}`))
	in.WriteString(frame(`{"jsonrpc":"2.0","method":"exit"}`))

	var out bytes.Buffer
	logger := logging.New("test", logging.Error, io.Discard, 0)

	if err := Serve(&in, &out, logger); err != nil {
		t.Fatalf("Serve returned error: %v", err)
	}

	if !strings.Contains(out.String(), `"result"`) {
		t.Errorf("expected an initialize result in output: %q", out.String())
	}
}

func TestServe_EOFWithNoMessagesReturnsNil(t *testing.T) {
	logger := logging.New("test", logging.Error, io.Discard, 0)
	var out bytes.Buffer

	if err := Serve(strings.NewReader(""), &out, logger); err != nil {
		t.Fatalf("Serve on empty input returned error: %v", err)
	}
}

func TestServe_DesyncAfterThreeFailuresReturnsError(t *testing.T) {
	var in bytes.Buffer
	for i := 0; i < 3; i++ {
		in.WriteString("not a valid frame at all\r\n\r\n")
	}

	logger := logging.New("test", logging.Error, io.Discard, 0)
	var out bytes.Buffer

	if err := Serve(&in, &out, logger); err == nil {
		t.Fatalf("expected Serve to give up after repeated malformed frames")
	}
}
