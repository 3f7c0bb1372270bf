//go:build windows

package watchdog

import (
	winapi "golang.org/x/sys/windows"
)

const stillActive = 259

// processAlive opens the process with just enough rights to query its
// exit code; STILL_ACTIVE means it hasn't terminated.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	h, err := winapi.OpenProcess(winapi.SYNCHRONIZE|winapi.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	defer winapi.CloseHandle(h)

	var code uint32
	if err := winapi.GetExitCodeProcess(h, &code); err != nil {
		return false
	}
	return code == stillActive
}
