package scenario

import (
	"errors"
	"fmt"
)

// Failure is an analysis rejection: the board ran, output was captured, and
// the output did not meet the scenario's acceptance policy. Harness errors
// (device missing, tool failed) are ordinary errors, never Failures.
type Failure struct {
	Reason string
}

func (f *Failure) Error() string {
	return "test failed: " + f.Reason
}

// Failf builds an analysis failure with a human-readable reason.
func Failf(format string, args ...any) error {
	return &Failure{Reason: fmt.Sprintf(format, args...)}
}

// IsFailure reports whether err is an analysis failure as opposed to a
// harness error.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
