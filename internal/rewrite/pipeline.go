package rewrite

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/richardhapb/lspdock/internal/lspdockerr"
)

// Logger is the minimal sink the pipeline needs for recoverable-error
// diagnostics (PayloadError, MaterializationError). It is satisfied by
// internal/logging.Sink without creating an import cycle.
type Logger interface {
	Warnf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...interface{}) {}

// Config holds everything the pipeline needs to transform a single
// session's frames, assembled once at startup from the resolved Session
// configuration.
type Config struct {
	Mapping           PathMapping
	ServerExecutable  string
	PatchPID          PatchPIDSet
	ShortCircuit      bool
	StagingDir        string
	Materializer      Materializer
	Log               Logger
}

// Pipeline applies direction-dependent transformations to frame payloads.
type Pipeline struct {
	cfg      Config
	registry *Registry
}

// New builds a Pipeline. When cfg.ShortCircuit is true, Apply becomes the
// identity function on every frame (spec §4.2.4): framing still happens,
// nothing else does.
func New(cfg Config) *Pipeline {
	if cfg.Log == nil {
		cfg.Log = nopLogger{}
	}
	if cfg.PatchPID == nil {
		cfg.PatchPID = PatchPIDSet{}
	}
	return &Pipeline{cfg: cfg, registry: NewRegistry()}
}

// Apply transforms a single frame payload for travel in direction dir. On
// a PayloadError (body is not valid JSON) it logs and returns the payload
// unchanged, per spec §7 — rewriting never drops a message.
func (p *Pipeline) Apply(ctx context.Context, dir Direction, payload []byte) ([]byte, error) {
	if p.cfg.ShortCircuit {
		return payload, nil
	}

	var tree map[string]interface{}
	if err := json.Unmarshal(payload, &tree); err != nil {
		p.cfg.Log.Warnf("payload is not valid JSON, forwarding unchanged: %v", err)
		return payload, nil
	}

	kind, method := classify(tree)

	if dir == ToServer && kind == RequestMsg && method == "initialize" &&
		p.cfg.PatchPID.Contains(p.cfg.ServerExecutable) {
		patchInitializePID(tree)
	}

	walk(tree, func(s string, pathField bool) string {
		return p.rewriteString(ctx, dir, s, pathField)
	})

	out, err := json.Marshal(tree)
	if err != nil {
		return nil, errors.Wrap(err, "re-serializing rewritten payload")
	}
	return out, nil
}

// rewriteString applies the direction-appropriate path translation (and,
// for to-client file:// URIs under container_root whose translated path
// does not exist locally, the materialization policy) to a single
// candidate string.
func (p *Pipeline) rewriteString(ctx context.Context, dir Direction, s string, pathField bool) string {
	if pathField {
		// rootPath carries a bare filesystem path, no file:// scheme.
		if dir == ToServer {
			if out, ok := p.cfg.Mapping.ToContainer(s); ok {
				return out
			}
			return s
		}
		if out, ok := p.cfg.Mapping.ToLocal(s); ok {
			return out
		}
		return s
	}

	if dir == ToServer {
		out, _ := rewriteURI(s, func(path string) (string, bool) {
			return p.cfg.Mapping.ToContainer(path)
		})
		return out
	}

	return p.rewriteToClientURI(ctx, s)
}

func (p *Pipeline) rewriteToClientURI(ctx context.Context, s string) string {
	translated, matched := rewriteURI(s, func(path string) (string, bool) {
		return p.cfg.Mapping.ToLocal(path)
	})
	if !matched {
		// Not under container_root at all: pass through unchanged
		// (spec §9 Open Question — undefined, left as identity).
		return s
	}

	if existsLocally(extractPath(translated)) {
		return translated
	}

	return p.materialize(ctx, s, translated)
}

// materialize performs the copy-out policy (§4.2.3): compute the
// destination, copy if not already registered, rewrite the URI, record it.
// Copy failures fall back to the translated-but-not-materialized URI and
// are logged, never fatal to the session.
func (p *Pipeline) materialize(ctx context.Context, originalURI, translatedURI string) string {
	containerPath := extractPath(originalURI)
	dest := stagingDestination(containerPath, p.cfg.Mapping, p.cfg.StagingDir)

	if !p.registry.MarkIfAbsent(dest) {
		return toFileURI(dest)
	}

	if p.cfg.Materializer == nil {
		p.cfg.Log.Warnf("no materializer configured, leaving %s translated-but-not-materialized", containerPath)
		return translatedURI
	}

	if err := p.cfg.Materializer.Materialize(ctx, containerPath, dest); err != nil {
		wrapped := lspdockerr.New(lspdockerr.Materialization, errors.Wrapf(err, "copying out %s", containerPath))
		p.cfg.Log.Warnf("%v", wrapped)
		return translatedURI
	}

	return toFileURI(dest)
}
