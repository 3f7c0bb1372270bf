// Package frame implements the LSP base-protocol framing layer: turning a
// byte stream into Content-Length-delimited frames and back, without
// looking at what's inside them.
//
// The header/body split follows the same shape as go.lsp.dev/jsonrpc2's
// stream reader (read header lines until a blank line, parse
// Content-Length, io.ReadFull the body) but is implemented standalone here
// because the rest of the pipeline needs the raw payload bytes preserved
// for the frame round-trip guarantee, not a decoded Message.
package frame

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/richardhapb/lspdock/internal/lspdockerr"
)

// Frame is an opaque byte buffer: exactly the payload bytes advertised by
// its Content-Length header. Framing never interprets these bytes.
type Frame []byte

// ErrEOF is returned by Reader.ReadFrame when the underlying stream ends
// cleanly between frames (no partial header or body was read).
var ErrEOF = io.EOF

const headerContentLength = "content-length"

// Reader deframes a byte stream into Frames.
type Reader struct {
	br *bufio.Reader
}

// NewReader wraps r for frame-at-a-time reading.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadFrame reads one frame: header lines up to a blank line, then exactly
// Content-Length bytes. It returns ErrEOF if the stream ends before any
// header bytes are read. Any other truncation or malformed header is a
// FramingError, unrecoverable for this stream.
func (r *Reader) ReadFrame() (Frame, error) {
	var length int64 = -1
	sawAnyHeaderByte := false

	for {
		line, err := r.br.ReadString('\n')
		if len(line) > 0 {
			sawAnyHeaderByte = true
		}
		if err != nil {
			if err == io.EOF && !sawAnyHeaderByte {
				return nil, ErrEOF
			}
			return nil, lspdockerr.New(lspdockerr.Framing, errors.Wrap(err, "reading header line"))
		}

		line = strings.TrimRight(line, "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}

		colon := strings.IndexByte(trimmed, ':')
		if colon < 0 {
			return nil, lspdockerr.New(lspdockerr.Framing, errors.Errorf("invalid header line %q", trimmed))
		}
		name := strings.ToLower(strings.TrimSpace(trimmed[:colon]))
		value := strings.TrimSpace(trimmed[colon+1:])

		if name == headerContentLength {
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil || n < 0 {
				return nil, lspdockerr.New(lspdockerr.Framing, errors.Errorf("invalid Content-Length %q", value))
			}
			length = n
		}
		// Any other header is discarded.
	}

	if length < 0 {
		return nil, lspdockerr.New(lspdockerr.Framing, errors.New("missing Content-Length header"))
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r.br, body); err != nil {
		return nil, lspdockerr.New(lspdockerr.Framing, errors.Wrap(err, "reading frame body"))
	}
	return Frame(body), nil
}

// Writer reframes Frames back to a byte stream.
type Writer struct {
	bw *bufio.Writer
	w  io.Writer
}

// NewWriter wraps w for frame-at-a-time writing.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w), w: w}
}

// WriteFrame emits "Content-Length: N\r\n\r\n" followed by the frame's
// bytes, and flushes before returning so the peer never observes a partial
// frame.
func (w *Writer) WriteFrame(f Frame) error {
	if _, err := fmt.Fprintf(w.bw, "Content-Length: %d\r\n\r\n", len(f)); err != nil {
		return lspdockerr.New(lspdockerr.Framing, errors.Wrap(err, "writing frame header"))
	}
	if _, err := w.bw.Write(f); err != nil {
		return lspdockerr.New(lspdockerr.Framing, errors.Wrap(err, "writing frame body"))
	}
	if err := w.bw.Flush(); err != nil {
		return lspdockerr.New(lspdockerr.Framing, errors.Wrap(err, "flushing frame"))
	}
	return nil
}
