package booking

import "fmt"

// NotFoundError indicates the referenced booking or provider does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PolicyViolationError indicates an operation was attempted outside its
// allowed time window.
type PolicyViolationError struct {
	Op     string
	Reason string
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("%s not allowed: %s", e.Op, e.Reason)
}

// AlreadyCancelledError indicates a cancel call on a booking that is already
// in the cancelled state.
type AlreadyCancelledError struct {
	ID string
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("booking %s is already cancelled", e.ID)
}
