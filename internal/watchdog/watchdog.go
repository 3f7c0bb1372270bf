// Package watchdog bridges the absence of a real client process id inside
// the server (because of PID patching or containerization) with the real
// lifecycle of the editor that launched the proxy: it polls the parent
// process and signals a shutdown trigger when that parent disappears.
package watchdog

import (
	"context"
	"time"
)

// DefaultInterval is the poll interval used when none is configured,
// chosen inside the spec's band (responsive within 2s, free above 500ms).
const DefaultInterval = 1 * time.Second

// Watchdog polls a parent process id and reports when it goes away.
type Watchdog struct {
	ParentPID int
	Interval  time.Duration

	alive func(pid int) bool // swappable for tests
}

// New builds a Watchdog for parentPID using the default poll interval.
func New(parentPID int) *Watchdog {
	return &Watchdog{ParentPID: parentPID, Interval: DefaultInterval, alive: processAlive}
}

// Run polls until ctx is cancelled or the parent is observed gone, in which
// case it sends once on the returned channel and returns. Callers select on
// both the channel and their own EOF/error paths; whichever fires first
// wins the race to trigger teardown.
func (w *Watchdog) Run(ctx context.Context) <-chan struct{} {
	gone := make(chan struct{}, 1)

	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	alive := w.alive
	if alive == nil {
		alive = processAlive
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !alive(w.ParentPID) {
					gone <- struct{}{}
					return
				}
			}
		}
	}()

	return gone
}
