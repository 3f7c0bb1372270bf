package rewrite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Materializer copies a single file out of the container so a translated
// URI in a to-client response points at something the editor can actually
// open. Implemented by internal/server.ContainerCopier; the rewrite
// package never shells out itself.
type Materializer interface {
	Materialize(ctx context.Context, containerPath, localDest string) error
}

// Registry is the session-scoped set of destination paths already
// materialized, so repeated navigation to the same third-party file
// doesn't re-copy it. Written only by the to-client loop in normal
// operation; the mutex exists so tests and any future worker-pool use
// remain safe (see spec.md §5).
type Registry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewRegistry returns an empty copy-out registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// MarkIfAbsent records dest and reports whether it was newly added (false
// means it was already present, so the caller should skip copying).
func (r *Registry) MarkIfAbsent(dest string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[dest]; ok {
		return false
	}
	r.seen[dest] = struct{}{}
	return true
}

// stagingDestination computes where a container path should be copied to
// locally. If the translated path would fall under localRoot it is used
// directly; otherwise (the path would escape localRoot, e.g. a container
// path with no relation to either root) a session-scoped staging directory
// holds it instead, keyed by its container-relative path so collisions
// between distinct container paths don't collide locally.
func stagingDestination(containerPath string, mapping PathMapping, stagingDir string) string {
	if local, ok := mapping.ToLocal(containerPath); ok {
		return local
	}
	rel := strings.TrimLeft(filepath.ToSlash(containerPath), "/")
	return filepath.Join(stagingDir, filepath.FromSlash(rel))
}

// existsLocally reports whether path already exists on the host
// filesystem.
func existsLocally(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
