// Package logging provides the session's structured log sink: every frame
// crossing the proxy and every lifecycle event is written as a JSON line,
// in the same shape the pack's container-TUI teacher logger uses.
package logging

// Sink is the thin interface the proxy core depends on, so that
// internal/session and internal/rewrite never import logrus directly.
type Sink interface {
	Frame(direction string, raw []byte)
	Event(level string, msg string, fields map[string]any)
	Close() error
}

// nopSink discards everything; useful for tests that don't care about logs.
type nopSink struct{}

func (nopSink) Frame(string, []byte)             {}
func (nopSink) Event(string, string, map[string]any) {}
func (nopSink) Close() error                     { return nil }

// Nop returns a Sink that discards all output.
func Nop() Sink { return nopSink{} }
