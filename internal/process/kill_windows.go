//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills the browser process tree rooted at pid.
// /F = force kill, /T = terminate child processes (tree kill).
func KillProcessGroup(pid int) {
	// Best-effort; the launcher's own Kill runs afterwards
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
