package orion

import (
	"errors"
	"fmt"
)

// InitError reports that the window, the graphics context or the
// function pointers of the graphics driver could not be initialized.
type InitError struct {
	Op  string
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ExitCode maps the result of Run to the exit code of a program.
// Initialization failures exit with -1, any other error with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var initErr *InitError
	if errors.As(err, &initErr) {
		return -1
	}

	return 1
}
