//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-kills pid and its child processes with taskkill.
// Non-positive pids are ignored.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort: the process may already be gone.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an int
}
