package rewrite

import (
	"bytes"
	"context"
	"testing"
)

// S5 — Local mode / short-circuit transparency.
func TestShortCircuitIsIdentity(t *testing.T) {
	p := New(Config{ShortCircuit: true})
	in := []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"processId":123,"rootUri":"file:///home/u/dev/p"}}`)

	out, err := p.Apply(context.Background(), ToServer, in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("short-circuit must be byte-identical: got %s want %s", out, in)
	}
}

func TestRootPathRewritten(t *testing.T) {
	p := newTestPipeline(nil)
	in := []byte(`{"id":1,"method":"initialize","params":{"rootPath":"/home/u/dev/p","rootUri":"file:///home/u/dev/p"}}`)

	out, err := p.Apply(context.Background(), ToServer, in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := `"rootPath":"/usr/src/app"`
	if !bytes.Contains(out, []byte(want)) {
		t.Fatalf("expected %s in %s", want, out)
	}
}

func TestPayloadErrorForwardsFrameUnchanged(t *testing.T) {
	p := newTestPipeline(nil)
	in := []byte(`not json at all`)

	out, err := p.Apply(context.Background(), ToServer, in)
	if err != nil {
		t.Fatalf("PayloadError must be recoverable, got err: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("malformed payload must be forwarded unchanged, got %s", out)
	}
}

func TestPathOutsideRootsPassesThrough(t *testing.T) {
	p := newTestPipeline(nil)
	in := []byte(`{"id":1,"method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///usr/lib/python3/stub.py"}}}`)

	out, err := p.Apply(context.Background(), ToServer, in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !bytes.Contains(out, []byte(`file:///usr/lib/python3/stub.py`)) {
		t.Fatalf("path outside both roots must pass through unchanged, got %s", out)
	}
}
