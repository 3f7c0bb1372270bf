package server

import (
	"time"
)

// GracefulWindow is the default bounded interval the shutdown sequence
// waits between each escalation step (spec §5: "2s between closing stdin
// and sending SIGTERM; another 2s before SIGKILL").
const GracefulWindow = 2 * time.Second

// Shutdown closes the server's stdin (signalling LSP graceful exit), waits
// up to window for natural termination, escalates to a terminate signal,
// waits again, then kills. It always reaps the process via h.Wait so no
// zombie is left behind, regardless of which step actually ended it.
func Shutdown(h *Handle, window time.Duration) ExitStatus {
	if window <= 0 {
		window = GracefulWindow
	}

	_ = h.Stdin.Close()

	if waitFor(h, window) {
		return h.Wait()
	}

	_ = signalTerm(h.Cmd)
	if waitFor(h, window) {
		return h.Wait()
	}

	_ = signalKill(h.Cmd)
	return h.Wait()
}

// waitFor blocks until either the child exits or window elapses, reporting
// which happened first.
func waitFor(h *Handle, window time.Duration) bool {
	select {
	case <-h.WaitAsync():
		return true
	case <-time.After(window):
		return false
	}
}
