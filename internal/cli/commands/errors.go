package commands

import "fmt"

// ExitError ends the process with Code without printing an error; the
// command has already reported the outcome.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}
