package rpc

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

func TestWriter_Write_Framing(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Write(NewResultResponse(NewIntID(1), map[string]string{"ok": "yes"})); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	out := buf.String()
	headerEnd := strings.Index(out, "\r\n\r\n")
	if headerEnd < 0 {
		t.Fatalf("output has no header/body separator: %q", out)
	}

	header := out[:headerEnd]
	body := out[headerEnd+4:]

	if !strings.Contains(header, "Content-Length:") {
		t.Errorf("header missing Content-Length: %q", header)
	}

	if !strings.Contains(header, "Content-Type:") {
		t.Errorf("header missing Content-Type: %q", header)
	}

	lenStr := strings.TrimSpace(strings.TrimPrefix(strings.Split(header, "\r\n")[0], "Content-Length:"))
	n, err := strconv.Atoi(lenStr)
	if err != nil {
		t.Fatalf("Content-Length value not numeric: %q", lenStr)
	}

	if n != len(body) {
		t.Errorf("Content-Length = %d, body is %d bytes", n, len(body))
	}
}

func TestWriter_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			_ = w.Write(NewNotification("$/logTrace", map[string]int{"n": i}))
			done <- struct{}{}
		}(i)
	}

	for i := 0; i < 8; i++ {
		<-done
	}

	// Every frame must parse: if writes interleaved, total Content-Length
	// framing would desync and ReadMessage would fail partway through.
	r := NewReader(bytes.NewReader(buf.Bytes()))

	count := 0
	for {
		_, err := r.ReadMessage()
		if err != nil {
			break
		}

		count++
	}

	if count != 8 {
		t.Errorf("decoded %d frames, want 8 (writes interleaved on the wire)", count)
	}
}
