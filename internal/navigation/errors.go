package navigation

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition marks a transition requested from a state that does
// not allow it (Pop or Push while Empty, Enter while Active). It indicates
// broken wiring rather than a runtime condition.
var ErrInvalidTransition = errors.New("invalid navigation transition")

// TransitionError reports an ErrInvalidTransition with its context.
type TransitionError struct {
	Op    string
	State State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s while %s: %v", e.Op, e.State, ErrInvalidTransition)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// PresentationError wraps a failure of the Presenter.
type PresentationError struct {
	Op     string
	Handle Handle
	Err    error
}

func (e *PresentationError) Error() string {
	if e.Handle == 0 {
		return fmt.Sprintf("presentation %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("presentation %s %d: %v", e.Op, e.Handle, e.Err)
}

func (e *PresentationError) Unwrap() error { return e.Err }
