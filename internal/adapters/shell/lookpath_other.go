//go:build !windows

package shell

import "io/fs"

func candidates(path string, _ []string) []string {
	return []string{path}
}

func isExecutable(mode fs.FileMode) bool {
	return mode&0o111 != 0
}
