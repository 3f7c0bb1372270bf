package server

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/richardhapb/lspdock/internal/lspdockerr"
)

// DefaultRuntime is the host container CLI binary driven for Docker mode
// when no runtime is configured (the alternative being "podman"); the
// proxy never links against a container engine's API client.
const DefaultRuntime = "docker"

// Config is the subset of session configuration the Server Runner needs to
// decide a spawn mode and build the child's command line.
type Config struct {
	Container  string   // target container name; empty means local mode
	Pattern    string   // host path prefix that enables Docker mode
	Executable string   // resolved server binary name or path
	ExtraArgs  []string // forwarded verbatim to the server
	Runtime    string   // docker/podman CLI binary; defaults to DefaultRuntime
}

func (c Config) runtime() string {
	if c.Runtime != "" {
		return c.Runtime
	}
	return DefaultRuntime
}

// MatchesPattern reports whether cwd equals pattern or is a descendant of
// it. This is the "safer interpretation" spec §9's Open Question settles
// on: prefix-with-descendant, not substring.
func MatchesPattern(cwd, pattern string) bool {
	if pattern == "" {
		return false
	}
	clean := filepath.Clean(cwd)
	cleanPattern := filepath.Clean(pattern)
	if clean == cleanPattern {
		return true
	}
	return strings.HasPrefix(clean, cleanPattern+string(filepath.Separator))
}

// DockerModeSelected implements spec §3/§4.3's mode decision: Docker mode
// when Container is set and (Pattern is empty, meaning it always applies
// when a container is configured, or cwd matches Pattern).
func (c Config) DockerModeSelected(cwd string) bool {
	if c.Container == "" {
		return false
	}
	if c.Pattern == "" {
		return true
	}
	return MatchesPattern(cwd, c.Pattern)
}

// Start spawns the server child according to Config, deciding Docker vs
// local mode from the current working directory.
func Start(cfg Config) (*Handle, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, lspdockerr.New(lspdockerr.Spawn, errors.Wrap(err, "getting working directory"))
	}

	var cmd *exec.Cmd
	if cfg.DockerModeSelected(cwd) {
		args := append([]string{"exec", "-i", cfg.Container, cfg.Executable}, cfg.ExtraArgs...)
		cmd = exec.Command(cfg.runtime(), args...)
	} else {
		resolved, err := LookupLocal(cfg.Executable)
		if err != nil {
			return nil, err
		}
		cmd = exec.Command(resolved, cfg.ExtraArgs...)
	}

	setSysProcAttr(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, lspdockerr.New(lspdockerr.Spawn, errors.Wrap(err, "creating server stdin pipe"))
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, lspdockerr.New(lspdockerr.Spawn, errors.Wrap(err, "creating server stdout pipe"))
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, lspdockerr.New(lspdockerr.Spawn, errors.Wrap(err, "creating server stderr pipe"))
	}

	if err := cmd.Start(); err != nil {
		return nil, lspdockerr.New(lspdockerr.Spawn, errors.Wrapf(err, "starting %s", cfg.Executable))
	}

	h := &Handle{
		Cmd:      cmd,
		Stdin:    stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		PID:      cmd.Process.Pid,
		waitOnce: make(chan struct{}),
	}

	go func() {
		err := cmd.Wait()
		h.waitResult = exitStatusFromWaitErr(err)
		close(h.waitOnce)
	}()

	return h, nil
}

func exitStatusFromWaitErr(err error) ExitStatus {
	if err == nil {
		return ExitStatus{Code: 0}
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		status := ExitStatus{Code: exitErr.ExitCode()}
		if ws, ok := exitErr.Sys().(interface{ Signaled() bool }); ok {
			status.Signaled = ws.Signaled()
		}
		return status
	}
	return ExitStatus{Code: -1, Err: err}
}
