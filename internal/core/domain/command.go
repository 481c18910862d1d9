package domain

// Command is a subprocess invocation.
type Command struct {
	// Name labels the command in logs and errors.
	Name string
	// Args holds the program followed by its arguments.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Handoff describes the final transfer of control to the application.
type Handoff struct {
	Mode HandoffMode
	// Dir becomes the working directory before the application starts.
	Dir string
	// Args holds the interpreter followed by the entry point.
	Args []string
	// Env is the activated environment of the application.
	Env []string
}
