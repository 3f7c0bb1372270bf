package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileSinkWritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)

	sink, err := NewFileSink("gopls", "debug")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer sink.Close()

	sink.Event("info", "session started", map[string]any{"container": "dev"})
	sink.Frame("to_server", []byte(`{"jsonrpc":"2.0"}`))

	path := filepath.Join(os.TempDir(), "lspdock_gopls.log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "session started") {
		t.Fatalf("log missing event message: %s", data)
	}
	if !strings.Contains(string(data), "jsonrpc") {
		t.Fatalf("log missing frame body: %s", data)
	}
}

func TestSanitizeReplacesUnsafeChars(t *testing.T) {
	got := sanitize("../weird name/gopls")
	if strings.ContainsAny(got, "./ ") {
		t.Fatalf("sanitize left unsafe characters: %q", got)
	}
}

func TestSanitizeEmptyFallsBackToDefault(t *testing.T) {
	if got := sanitize(""); got != "server" {
		t.Fatalf("got %q want server", got)
	}
}
