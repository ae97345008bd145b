//go:build windows

// Package process kills browser process trees left behind by PDF export.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its children with taskkill.
// Pids below 2 are ignored.
func KillProcessGroup(pid int) {
	if pid < 2 {
		return
	}
	// Best effort: the launcher's own Kill follows.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- numeric pid
}
