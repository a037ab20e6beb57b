//go:build !windows

package app

import (
	"syscall"
)

// RestartProcess restarts the current process using syscall.Exec.
func RestartProcess(argv0 string, args []string, env []string) error {
	return syscall.Exec(argv0, args, env)
}
