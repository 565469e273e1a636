//go:build !windows

package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid, taking Chrome's
// renderer and GPU children down with it. Non-positive pids are ignored:
// kill(0) would target our own group.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort: ESRCH is expected once the browser has exited.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
