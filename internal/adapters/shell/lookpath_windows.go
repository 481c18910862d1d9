package shell

import "io/fs"

// candidates tries the PATHEXT extensions, since "python3" is installed as
// "python3.exe".
func candidates(path string, env []string) []string {
	return withExtensions(path, envValue(env, "PATHEXT"))
}

// isExecutable accepts any regular file: Windows has no execute bit.
func isExecutable(fs.FileMode) bool {
	return true
}
