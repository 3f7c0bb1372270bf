package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/richardhapb/lspdock/internal/frame"
	"github.com/richardhapb/lspdock/internal/lspdockerr"
	"github.com/richardhapb/lspdock/internal/logging"
	"github.com/richardhapb/lspdock/internal/rewrite"
	"github.com/richardhapb/lspdock/internal/server"
	"github.com/richardhapb/lspdock/internal/watchdog"
)

// Session owns one running proxy instance: the client-facing frame
// streams, the spawned server handle, the rewrite pipeline between them,
// and the single teardown path every failure mode converges on.
type Session struct {
	id       uuid.UUID
	cfg      Config
	handle   *server.Handle
	pipeline *rewrite.Pipeline
	log      logging.Sink

	clientIn  io.Reader
	clientOut io.Writer

	teardownOnce   sync.Once
	done           chan struct{}
	teardownReason error
}

// New assembles a Session from a resolved Config, a spawned server handle,
// the client's own stdio, and a log sink. It does not start any goroutine;
// call Run for that.
func New(cfg Config, handle *server.Handle, clientIn io.Reader, clientOut io.Writer, log logging.Sink) *Session {
	pipeline := rewrite.New(rewrite.Config{
		Mapping:          cfg.Mapping,
		ServerExecutable: cfg.Server.Executable,
		PatchPID:         cfg.PatchPID,
		ShortCircuit:     cfg.shortCircuit(),
		StagingDir:       cfg.StagingDir,
		Materializer:     server.ContainerCopier{Runtime: cfg.Server.Runtime, Container: cfg.Server.Container},
		Log:              sinkWarnfAdapter{log},
	})

	return &Session{
		id:        uuid.New(),
		cfg:       cfg,
		handle:    handle,
		pipeline:  pipeline,
		log:       log,
		clientIn:  clientIn,
		clientOut: clientOut,
		done:      make(chan struct{}),
	}
}

// Run starts the two copy loops, the stderr relay, and the watchdog, and
// blocks until the session is torn down by any of the four converging
// paths (client EOF, server EOF, watchdog-detected parent death, fatal
// framing error). Per spec §6/§7, none of those four are themselves a
// user-visible failure — the teardown reason is recorded as a log event
// only. Run returns a non-nil error exclusively when the teardown
// mechanics that follow (shutting down the server, closing the log sink)
// themselves fail.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.log.Event("info", "session started", map[string]any{
		"session_id": s.id.String(),
		"executable": s.cfg.Server.Executable,
	})

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.teardown(s.toServerLoop(ctx))
	}()
	go func() {
		defer wg.Done()
		s.teardown(s.toClientLoop(ctx))
	}()

	go s.stderrRelay()

	if s.cfg.ParentPID > 0 {
		gone := watchdog.New(s.cfg.ParentPID).Run(ctx)
		go func() {
			select {
			case <-gone:
				s.teardown(lspdockerr.New(lspdockerr.ParentGone, errors.New("parent process is no longer running")))
			case <-ctx.Done():
			}
		}()
	}

	<-s.done
	cancel()

	// Closing the server's stdin lets a server that is still reading exit
	// and close its stdout, which ends the to-client loop. The loops are
	// then joined with a bounded wait.
	_ = s.handle.Stdin.Close()
	joined := make(chan struct{})
	go func() {
		wg.Wait()
		close(joined)
	}()
	select {
	case <-joined:
	case <-time.After(server.GracefulWindow):
	}

	s.log.Event("info", "session ended", map[string]any{
		"session_id": s.id.String(),
		"reason":     s.teardownReason.Error(),
	})

	var runErr error

	shutdownStatus := server.Shutdown(s.handle, server.GracefulWindow)
	if shutdownStatus.Err != nil {
		runErr = multierror.Append(runErr, errors.Wrap(shutdownStatus.Err, "shutting down server"))
	}

	if err := s.log.Close(); err != nil {
		runErr = multierror.Append(runErr, errors.Wrap(err, "closing log sink"))
	}

	return runErr
}

// teardown records the first reason a session ends and closes done exactly
// once; concurrent callers (e.g. client EOF racing watchdog parent-death)
// cannot double-teardown. The reason is a diagnostic only — client EOF,
// server EOF, and watchdog-detected parent death are all ordinary ways for
// a session to end, not failures, so it never becomes Run's returned error
// (spec §6: exit 0 on clean shutdown; §7: the user-visible failure surface
// is startup exit codes and log entries, not this).
func (s *Session) teardown(reason error) {
	s.teardownOnce.Do(func() {
		s.teardownReason = reason
		close(s.done)
	})
}

// toServerLoop reads frames from the client, rewrites them for the server
// direction, and writes them to the server's stdin.
func (s *Session) toServerLoop(ctx context.Context) error {
	r := frame.NewReader(s.clientIn)
	w := frame.NewWriter(s.handle.Stdin)

	for {
		raw, err := r.ReadFrame()
		if err != nil {
			return classifyLoopErr(err, "client")
		}
		s.log.Frame("to_server", raw)

		out, err := s.pipeline.Apply(ctx, rewrite.ToServer, raw)
		if err != nil {
			return lspdockerr.New(lspdockerr.Framing, errors.Wrap(err, "rewriting to-server frame"))
		}

		if err := w.WriteFrame(out); err != nil {
			return lspdockerr.New(lspdockerr.ChildExit, errors.Wrap(err, "writing frame to server"))
		}
	}
}

// toClientLoop reads frames from the server, rewrites them for the client
// direction, and writes them to the proxy's own stdout.
func (s *Session) toClientLoop(ctx context.Context) error {
	r := frame.NewReader(s.handle.Stdout)
	w := frame.NewWriter(s.clientOut)

	for {
		raw, err := r.ReadFrame()
		if err != nil {
			return classifyLoopErr(err, "server")
		}
		s.log.Frame("to_client", raw)

		out, err := s.pipeline.Apply(ctx, rewrite.ToClient, raw)
		if err != nil {
			return lspdockerr.New(lspdockerr.Framing, errors.Wrap(err, "rewriting to-client frame"))
		}

		if err := w.WriteFrame(out); err != nil {
			return lspdockerr.New(lspdockerr.Framing, errors.Wrap(err, "writing frame to client"))
		}
	}
}

// stderrRelay copies the server's stderr, line by line, into the log sink.
// It is diagnostic only and never triggers teardown on its own.
func (s *Session) stderrRelay() {
	scanner := bufio.NewScanner(s.handle.Stderr)
	for scanner.Scan() {
		s.log.Event("info", scanner.Text(), map[string]any{"source": "server_stderr"})
	}
}

func classifyLoopErr(err error, side string) error {
	if errors.Is(err, frame.ErrEOF) {
		if side == "server" {
			return lspdockerr.New(lspdockerr.ChildExit, errors.New("server closed its stdout"))
		}
		return lspdockerr.New(lspdockerr.ChildExit, errors.New("client closed its stdin"))
	}
	return lspdockerr.New(lspdockerr.Framing, errors.Wrapf(err, "reading frame from %s", side))
}

// sinkWarnfAdapter lets a logging.Sink satisfy rewrite.Logger's printf-style
// Warnf without internal/rewrite importing internal/logging.
type sinkWarnfAdapter struct {
	sink logging.Sink
}

func (a sinkWarnfAdapter) Warnf(format string, args ...interface{}) {
	a.sink.Event("warning", fmt.Sprintf(format, args...), nil)
}
