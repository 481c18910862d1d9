//go:build !unix

package launcher

import (
	"os"
	"os/exec"
)

// execve is nil: the process image cannot be replaced, so Handoff spawns a child.
var execve ExecFunc

var forwardedSignals = []os.Signal{os.Interrupt}

func exitStatus(state *os.ProcessState) int {
	return state.ExitCode()
}

func isolateChild(*exec.Cmd) {}
