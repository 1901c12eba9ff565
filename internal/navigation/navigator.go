// Package navigation holds the menu navigation state machine.
//
// A Navigator is either Empty (the menu subsystem is inactive) or Active
// with a non-empty stack of realized screens. Only the top screen is
// visible. Screens beneath it are hidden but kept alive so that popping back
// restores them without re-resolving their templates.
package navigation

import (
	"context"
	"errors"

	"github.com/atomicstack/voxmod-menu/internal/logging/events"
	"github.com/atomicstack/voxmod-menu/internal/menu"
)

// Handle identifies a realized screen. Zero is never a valid handle.
type Handle uint64

// Presenter realizes resolved screens and controls their visibility.
type Presenter interface {
	Realize(menu.Screen) (Handle, error)
	SetVisible(Handle, bool)
	Destroy(Handle) error
}

// ModeController is the surrounding application mode machine.
type ModeController interface {
	EnterMenu()
	LeaveMenu()
	ReplaceContext(menu.Action)
}

// State is the coarse navigator state.
type State int

const (
	Empty State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "empty"
}

// Stack is the ordered bottom-to-top list of realized screens. It exists only
// while the navigator is Active and is never empty.
type Stack struct {
	entries []entry
}

type entry struct {
	handle Handle
	title  string
}

// Depth returns the number of screens on the stack.
func (s *Stack) Depth() int { return len(s.entries) }

// Top returns the visible handle.
func (s *Stack) Top() Handle { return s.entries[len(s.entries)-1].handle }

// Navigator owns the optional Stack and applies transitions to it.
type Navigator struct {
	source    menu.Source
	presenter Presenter
	modes     ModeController
	stack     *Stack
}

// New builds an Empty navigator.
func New(source menu.Source, presenter Presenter, modes ModeController) *Navigator {
	return &Navigator{source: source, presenter: presenter, modes: modes}
}

// State reports whether the navigator is Empty or Active.
func (n *Navigator) State() State {
	if n.stack == nil {
		return Empty
	}
	return Active
}

// Depth returns the stack depth, zero when Empty.
func (n *Navigator) Depth() int {
	if n.stack == nil {
		return 0
	}
	return n.stack.Depth()
}

// Top returns the visible handle; ok is false when Empty.
func (n *Navigator) Top() (Handle, bool) {
	if n.stack == nil {
		return 0, false
	}
	return n.stack.Top(), true
}

// Handles returns a bottom-to-top copy of the stacked handles.
func (n *Navigator) Handles() []Handle {
	if n.stack == nil {
		return nil
	}
	out := make([]Handle, len(n.stack.entries))
	for i, e := range n.stack.entries {
		out[i] = e.handle
	}
	return out
}

// Titles returns the bottom-to-top titles, useful for breadcrumbs.
func (n *Navigator) Titles() []string {
	if n.stack == nil {
		return nil
	}
	out := make([]string, len(n.stack.entries))
	for i, e := range n.stack.entries {
		out[i] = e.title
	}
	return out
}

// Enter activates the subsystem with t as its only screen.
func (n *Navigator) Enter(ctx context.Context, t menu.Template) error {
	if n.stack != nil {
		return n.fail("enter", &TransitionError{Op: "enter", State: Active})
	}
	h, err := n.realize(ctx, t)
	if err != nil {
		return n.fail("enter", err)
	}
	n.stack = &Stack{entries: []entry{{handle: h, title: t.Title.Text}}}
	events.Nav.Enter(t.Title.Text, uint64(h))
	if n.modes != nil {
		n.modes.EnterMenu()
	}
	return nil
}

// Push resolves t against the current source state and shows it on top.
// The previous top is hidden only once the new screen has been realized.
func (n *Navigator) Push(ctx context.Context, t menu.Template) error {
	if n.stack == nil {
		return n.fail("push", &TransitionError{Op: "push", State: Empty})
	}
	h, err := n.realize(ctx, t)
	if err != nil {
		return n.fail("push", err)
	}
	n.presenter.SetVisible(n.stack.Top(), false)
	n.stack.entries = append(n.stack.entries, entry{handle: h, title: t.Title.Text})
	events.Nav.Push(t.Title.Text, uint64(h), n.stack.Depth())
	return nil
}

// Pop destroys the top screen and reveals the one beneath it. Popping the
// last screen ends the menu session.
func (n *Navigator) Pop() error {
	if n.stack == nil {
		return n.fail("pop", &TransitionError{Op: "pop", State: Empty})
	}
	top := n.stack.Top()
	if err := n.presenter.Destroy(top); err != nil {
		return n.fail("pop", &PresentationError{Op: "destroy", Handle: top, Err: err})
	}
	n.stack.entries = n.stack.entries[:len(n.stack.entries)-1]
	events.Nav.Pop(uint64(top), len(n.stack.entries))
	if len(n.stack.entries) > 0 {
		n.presenter.SetVisible(n.stack.Top(), true)
		return nil
	}
	n.stack = nil
	if n.modes != nil {
		n.modes.LeaveMenu()
	}
	return nil
}

// ReplaceContext tears down every screen and hands a to the mode controller.
//
// This is the one transition that is applied even when the presenter fails.
// Enter, Push and Pop leave the stack untouched on a presentation failure;
// ReplaceContext instead attempts every destroy top-down, always ends Empty
// and always hands a over, because the context it replaces is gone either
// way. The returned error joins one *PresentationError per handle that
// could not be destroyed, so callers learn which screens leaked.
// ErrInvalidTransition is returned, with nothing applied, only when the
// navigator is already Empty.
func (n *Navigator) ReplaceContext(a menu.Action) error {
	if n.stack == nil {
		return n.fail("replace", &TransitionError{Op: "replace", State: Empty})
	}
	entries := n.stack.entries
	n.stack = nil
	var errs []error
	for i := len(entries) - 1; i >= 0; i-- {
		if err := n.presenter.Destroy(entries[i].handle); err != nil {
			errs = append(errs, &PresentationError{Op: "destroy", Handle: entries[i].handle, Err: err})
		}
	}
	events.Nav.Replace(actionName(a), len(entries)-len(errs))
	if n.modes != nil {
		n.modes.ReplaceContext(a)
	}
	if err := errors.Join(errs...); err != nil {
		return n.fail("replace", err)
	}
	return nil
}

func (n *Navigator) realize(ctx context.Context, t menu.Template) (Handle, error) {
	screen, err := menu.Resolve(ctx, t, n.source)
	if err != nil {
		return 0, err
	}
	h, err := n.presenter.Realize(screen)
	if err != nil {
		return 0, &PresentationError{Op: "realize", Err: err}
	}
	return h, nil
}

func (n *Navigator) fail(op string, err error) error {
	events.Nav.Failure(op, err)
	return err
}

func actionName(a menu.Action) string {
	if a == nil {
		return ""
	}
	return a.String()
}
