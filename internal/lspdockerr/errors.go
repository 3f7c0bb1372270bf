// Package lspdockerr defines the error taxonomy shared across lspdock's
// core packages, so that the orchestrator and the CLI entry point can
// decide exit codes and teardown behavior without string-matching error
// text.
package lspdockerr

import "fmt"

// Kind classifies an error into one of the semantic categories the proxy
// core distinguishes. It does not replace Go's error wrapping; a Kind is
// attached to an error via New and checked with Is.
type Kind int

const (
	// Config covers an invalid or missing required configuration field.
	// Fatal at startup.
	Config Kind = iota
	// Resolution covers a server executable that could not be located.
	// Fatal at startup.
	Resolution
	// Spawn covers a server child process that failed to start. Fatal at
	// startup.
	Spawn
	// Framing covers a malformed header or truncated payload. Fatal for
	// the current session; triggers teardown.
	Framing
	// Payload covers a frame body that is not valid JSON. Recoverable: the
	// frame is forwarded unchanged and rewriting is skipped for it.
	Payload
	// Materialization covers a failed copy-out of a container-only file.
	// Recoverable: the URI is emitted translated-but-not-materialized.
	Materialization
	// ChildExit covers the server process exiting unexpectedly. Triggers
	// teardown.
	ChildExit
	// ParentGone covers the editor process dying. Triggers teardown.
	ParentGone
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "ConfigError"
	case Resolution:
		return "ResolutionError"
	case Spawn:
		return "SpawnError"
	case Framing:
		return "FramingError"
	case Payload:
		return "PayloadError"
	case Materialization:
		return "MaterializationError"
	case ChildExit:
		return "ChildExit"
	case ParentGone:
		return "ParentGone"
	default:
		return "UnknownError"
	}
}

// Recoverable reports whether an error of this kind is handled locally by
// the component that raised it (the pipeline keeps running), as opposed to
// propagating to the orchestrator for teardown.
func (k Kind) Recoverable() bool {
	return k == Payload || k == Materialization
}

// Error pairs a Kind with the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with the given Kind. If err is nil, New returns nil.
func New(k Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Err: err}
}

// Is reports whether err (or one it wraps) carries the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == k
}

// ExitCode maps a Kind to the process exit code cmd/lspdock should use when
// the error is fatal at startup. Non-startup kinds (Framing, ChildExit,
// ParentGone, and the recoverable kinds) return 1 as a generic fallback;
// the orchestrator exits 0 on clean shutdown regardless of this mapping.
func ExitCode(k Kind) int {
	switch k {
	case Config:
		return 2
	case Resolution:
		return 3
	case Spawn:
		return 4
	default:
		return 1
	}
}
