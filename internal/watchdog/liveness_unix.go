//go:build !windows

package watchdog

import "syscall"

// processAlive sends signal 0, which performs error checking without
// actually delivering a signal. ESRCH means the process is gone; EPERM
// means it exists but is owned by someone else, which still counts as
// alive for our purposes. Any other error is treated conservatively as
// alive, since a false-negative just costs one more poll while a
// false-positive tears down a live session.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil || err == syscall.EPERM {
		return true
	}
	return err != syscall.ESRCH
}
