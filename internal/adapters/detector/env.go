// Package detector inspects the terminal the bootstrapper runs in.
package detector

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is backed by a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// IsCI reports whether the process runs under a CI system.
func IsCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}

// Interactive reports whether subprocess output written to w should keep
// terminal features such as progress bars.
func Interactive(w io.Writer) bool {
	return IsTerminal(w) && !IsCI()
}
