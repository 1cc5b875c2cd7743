package execution

import "fmt"

// BailError aborts a run when fail-fast is on and a thread exits non-zero
type BailError struct {
	Thread int
	Code   int
}

func (e *BailError) Error() string {
	return fmt.Sprintf("thread %d exited with code %d, bailing out", e.Thread, e.Code)
}
