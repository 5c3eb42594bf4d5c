package cmds

import "os"

var GlobalExecutor = NewExecutor()

// Define registers a command on the package executor; packages call it from
// init to expose their flags.
func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Execute runs args against the package executor, exiting on error.
func Execute(args []string) {
	if err := GlobalExecutor.Execute(args); err != nil {
		os.Stderr.WriteString(err.Error())
		os.Stderr.WriteString("\n")
		os.Exit(-1)
	}
}
