//go:build unix

package launcher

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

var execve ExecFunc = unix.Exec

var forwardedSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP}

// exitStatus follows the shell convention of 128+N for a child killed by signal N.
func exitStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}

// isolateChild puts the application in its own process group so a keyboard
// interrupt reaches it once, through forwarding. When muleboot owns the
// terminal on stdin the new group takes the foreground instead, so keyboard
// signals go straight to the application and reading stdin keeps working.
func isolateChild(cmd *exec.Cmd) {
	attrs := &syscall.SysProcAttr{Setpgid: true}
	if f, ok := cmd.Stdin.(*os.File); ok {
		pgrp, err := unix.IoctlGetInt(int(f.Fd()), unix.TIOCGPGRP) //nolint:gosec // file descriptors fit in int
		if err == nil && pgrp == unix.Getpgrp() {
			attrs.Foreground = true
			// Ctty is a descriptor in the child: its stdin.
			attrs.Ctty = 0
		}
	}
	cmd.SysProcAttr = attrs
}
