package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileSink is the concrete, ambient-stack Sink: a logrus.Logger writing
// JSON lines to a file under the OS temp directory, one file per
// executable name so concurrent sessions against different servers don't
// interleave.
type FileSink struct {
	entry *logrus.Entry
	file  *os.File
}

// NewFileSink opens (creating if needed) <tmpdir>/lspdock_<executable>.log
// and returns a Sink writing structured JSON lines to it at levelName
// (trace|debug|info|warning|error; an unrecognized value, which
// logrus.ParseLevel rejects with an error, falls back to info).
func NewFileSink(executable, levelName string) (*FileSink, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("lspdock_%s.log", sanitize(executable)))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}

	log := logrus.New()
	log.SetOutput(file)
	log.SetLevel(level)
	log.SetFormatter(&logrus.JSONFormatter{})

	entry := log.WithFields(logrus.Fields{"executable": executable})

	return &FileSink{entry: entry, file: file}, nil
}

// Frame logs a single framed message crossing the proxy in direction
// ("to_server"/"to_client") at debug level, with the raw bytes attached so
// a session can be replayed from the log.
func (s *FileSink) Frame(direction string, raw []byte) {
	s.entry.WithFields(logrus.Fields{
		"direction": direction,
		"bytes":     len(raw),
	}).Debug(string(raw))
}

// Event logs a lifecycle or error event at the given level
// (trace|debug|info|warning|error), with arbitrary structured fields.
func (s *FileSink) Event(level, msg string, fields map[string]any) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	s.entry.WithFields(logrus.Fields(fields)).Log(parsed, msg)
}

// Close flushes and closes the underlying log file.
func (s *FileSink) Close() error {
	return s.file.Close()
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "server"
	}
	return string(out)
}
