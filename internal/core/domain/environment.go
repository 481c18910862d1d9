package domain

import (
	"os"
	"runtime"
	"slices"
	"strings"
)

// Environment describes an isolated runtime directory.
type Environment struct {
	// Dir is the absolute environment directory.
	Dir string
	// Python is the interpreter inside Dir.
	Python string
	// Project is the project root. Interpreter and installer commands run there.
	Project string
}

// NewEnvironment returns the Environment rooted at dir.
func NewEnvironment(dir string) Environment {
	return Environment{
		Dir:    dir,
		Python: EnvPython(dir),
	}
}

// Activation returns the environment changes that make subprocesses resolve
// to this environment instead of a system-wide installation.
func (e Environment) Activation() Activation {
	return Activation{
		VirtualEnv: e.Dir,
		PathPrefix: EnvBinDir(e.Dir),
		Unset:      []string{"PYTHONHOME"},
	}
}

// Activation is the process environment delta for an isolated environment.
// It is applied to an explicit environment slice handed to each subprocess;
// the current process environment is never modified.
type Activation struct {
	VirtualEnv string
	PathPrefix string
	Unset      []string
}

// Apply returns a copy of base ("KEY=VALUE" entries) with the activation applied.
// VIRTUAL_ENV is set, PathPrefix is prepended to PATH and the Unset keys are dropped.
func (a Activation) Apply(base []string) []string {
	out := make([]string, 0, len(base)+2)
	pathSet, venvSet := false, false
	for _, entry := range base {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			out = append(out, entry)
			continue
		}
		if slices.ContainsFunc(a.Unset, func(u string) bool { return SameEnvKey(k, u) }) {
			continue
		}
		switch {
		case SameEnvKey(k, "PATH"):
			pathSet = true
			if v != "" {
				out = append(out, k+"="+a.PathPrefix+string(os.PathListSeparator)+v)
			} else {
				out = append(out, k+"="+a.PathPrefix)
			}
		case SameEnvKey(k, "VIRTUAL_ENV"):
			venvSet = true
			out = append(out, k+"="+a.VirtualEnv)
		default:
			out = append(out, entry)
		}
	}

	if !pathSet {
		out = append(out, "PATH="+a.PathPrefix)
	}
	if !venvSet {
		out = append(out, "VIRTUAL_ENV="+a.VirtualEnv)
	}
	return out
}

// SameEnvKey reports whether two environment variable names refer to the same
// variable. Names are case-insensitive on Windows.
func SameEnvKey(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
