//go:build !windows

// Package process kills browser process trees left behind by PDF export.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid.
// Pids below 2 are ignored: 0 would target our own group and 1 is init.
func KillProcessGroup(pid int) {
	if pid < 2 {
		return
	}
	// Best effort: the launcher's own Kill follows.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
