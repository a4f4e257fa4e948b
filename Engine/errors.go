package Engine

import (
	"errors"
	"fmt"
)

// NotFoundError means the referenced record does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// GuardViolationError means a business-rule precondition blocked the requested
// transition before any mutation happened. The reason is shown to the
// supervisor/worker apps as-is, so it has to stay human readable.
type GuardViolationError struct {
	Reason string
}

func (e *GuardViolationError) Error() string {
	return e.Reason
}

func guardViolation(format string, args ...interface{}) error {
	return &GuardViolationError{Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsGuardViolation reports whether err is a GuardViolationError.
func IsGuardViolation(err error) bool {
	var gv *GuardViolationError
	return errors.As(err, &gv)
}
