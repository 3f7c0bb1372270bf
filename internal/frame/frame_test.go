package frame

import (
	"bytes"
	"io"
	"testing"
)

func TestRoundTripIdentity(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`),
		[]byte(`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"x":1}}`),
		[]byte(`{}`),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, p := range payloads {
		if err := w.WriteFrame(Frame(p)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}

	r := NewReader(&buf)
	for i, want := range payloads {
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame %d: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("frame %d: got %q want %q", i, got, want)
		}
	}

	if _, err := r.ReadFrame(); err != ErrEOF {
		t.Fatalf("expected ErrEOF at stream end, got %v", err)
	}
}

func TestReadFrameToleratesExtraHeaders(t *testing.T) {
	raw := "Content-Type: application/vscode-jsonrpc; charset=utf-8\r\n" +
		"content-length:   5  \r\n" +
		"\r\n" +
		"hello"
	r := NewReader(bytes.NewBufferString(raw))
	got, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q want %q", got, "hello")
	}
}

func TestReadFrameTruncatedBodyIsFramingError(t *testing.T) {
	raw := "Content-Length: 10\r\n\r\nabc"
	r := NewReader(bytes.NewBufferString(raw))
	_, err := r.ReadFrame()
	if err == nil {
		t.Fatal("expected error for truncated body")
	}
	if err == ErrEOF {
		t.Fatal("truncated body should not be reported as clean EOF")
	}
}

func TestReadFrameMissingContentLength(t *testing.T) {
	raw := "X-Foo: bar\r\n\r\n"
	r := NewReader(bytes.NewBufferString(raw))
	_, err := r.ReadFrame()
	if err == nil {
		t.Fatal("expected error for missing Content-Length")
	}
}

func TestReadFrameCleanEOFBetweenFrames(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.ReadFrame()
	if err != ErrEOF {
		t.Fatalf("got %v want io.EOF", err)
	}
	_ = io.EOF
}
