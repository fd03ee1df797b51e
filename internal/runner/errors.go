package runner

import "fmt"

// LaunchError means the OS could not start the process: the script is
// missing, not executable, or the interpreter failed to start.
type LaunchError struct {
	Command string
	Script  string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s (%s): %v", e.Command, e.Script, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ServiceExitError means the process ran and exited with a non-zero code.
type ServiceExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ServiceExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}
