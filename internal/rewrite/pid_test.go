package rewrite

import (
	"context"
	"encoding/json"
	"testing"
)

func newTestPipeline(patch []string) *Pipeline {
	return New(Config{
		Mapping: PathMapping{
			LocalRoot:     "/home/u/dev/p",
			ContainerRoot: "/usr/src/app",
		},
		ServerExecutable: "pyright-langserver",
		PatchPID:         NewPatchPIDSet(patch),
	})
}

func TestPIDPatchedWhenConfigured(t *testing.T) {
	p := newTestPipeline([]string{"pyright-langserver"})
	in := []byte(`{"jsonrpc":"2.0","id":0,"method":"initialize","params":{"processId":12345,"rootUri":"file:///home/u/dev/p"}}`)

	out, err := p.Apply(context.Background(), ToServer, in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	params := got["params"].(map[string]interface{})
	if pid, ok := params["processId"]; !ok || pid != nil {
		t.Fatalf("expected processId to be null, got %v", pid)
	}
}

func TestPIDNotPatchedWhenNotConfigured(t *testing.T) {
	p := newTestPipeline(nil)
	in := []byte(`{"jsonrpc":"2.0","id":0,"method":"initialize","params":{"processId":12345}}`)

	out, err := p.Apply(context.Background(), ToServer, in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	params := got["params"].(map[string]interface{})
	if pid, ok := params["processId"].(float64); !ok || pid != 12345 {
		t.Fatalf("expected processId to stay 12345, got %v", params["processId"])
	}
}

func TestPIDOnlyTouchedOnInitialize(t *testing.T) {
	p := newTestPipeline([]string{"pyright-langserver"})
	in := []byte(`{"jsonrpc":"2.0","id":5,"method":"workspace/executeCommand","params":{"processId":999}}`)

	out, err := p.Apply(context.Background(), ToServer, in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	params := got["params"].(map[string]interface{})
	if pid, ok := params["processId"].(float64); !ok || pid != 999 {
		t.Fatalf("expected processId untouched on non-initialize method, got %v", params["processId"])
	}
}
