// Package session wires the Framing I/O, Rewrite Pipeline, Server Runner,
// and Liveness Watchdog together into one running proxy session, and owns
// the single teardown path all of them converge on.
package session

import (
	"github.com/richardhapb/lspdock/internal/rewrite"
	"github.com/richardhapb/lspdock/internal/server"
)

// Config is the fully-resolved, immutable configuration a Session runs
// from — the output of internal/config.Resolve, merging CLI flags, the
// config file, and the resolution-order fallbacks.
type Config struct {
	Mapping    rewrite.PathMapping
	Server     server.Config
	PatchPID   rewrite.PatchPIDSet
	StagingDir string
	LogLevel   string
	ParentPID  int

	// DockerMode is server.Config.DockerModeSelected's verdict for this
	// invocation's cwd, decided once by internal/config.Resolve so the
	// session package never has to re-derive it (or re-stat the cwd).
	DockerMode bool
}

// shortCircuit reports whether the rewrite pipeline should become the
// identity function: spec §4.2.4 short-circuits whenever this invocation
// isn't actually running in Docker mode — no container_root configured,
// or a container_root configured but the pattern doesn't match this cwd,
// which means the server is running locally and there's nothing to
// translate.
func (c Config) shortCircuit() bool {
	return !c.DockerMode
}
