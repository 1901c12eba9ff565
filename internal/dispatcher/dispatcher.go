// Package dispatcher turns per-tick interaction signals into navigation
// transitions and domain signals.
package dispatcher

import (
	"context"
	"fmt"

	"github.com/atomicstack/voxmod-menu/internal/logging/events"
	"github.com/atomicstack/voxmod-menu/internal/menu"
	"github.com/atomicstack/voxmod-menu/internal/navigation"
)

// Signal is the raw interaction state of one element for one tick.
type Signal int

const (
	Idle Signal = iota
	Hovered
	Pressed
)

func (s Signal) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Hovered:
		return "hovered"
	default:
		return "idle"
	}
}

// Element locates a button on a realized screen.
type Element struct {
	Handle navigation.Handle
	Row    int
	Col    int
}

func (e Element) String() string {
	return fmt.Sprintf("%d:%d:%d", e.Handle, e.Row, e.Col)
}

// Interaction is one element's signal together with its bound action.
type Interaction struct {
	Element Element
	Action  menu.Action
	Signal  Signal
}

// Feedback is the visual state reported for an element every tick.
type Feedback struct {
	Element Element
	Signal  Signal
}

// Navigator is the part of navigation.Navigator the dispatcher drives.
type Navigator interface {
	State() navigation.State
	Top() (navigation.Handle, bool)
	Enter(context.Context, menu.Template) error
	Push(context.Context, menu.Template) error
	Pop() error
	ReplaceContext(menu.Action) error
}

// DomainHandler receives actions that are opaque to navigation:
// CreateFromPath, Rebuild and ImportExternalContent.
type DomainHandler interface {
	HandleDomain(menu.Action)
}

// Dispatcher is the only mutator of its Navigator.
type Dispatcher struct {
	nav    Navigator
	domain DomainHandler
	held   map[Element]bool
}

func New(nav Navigator, domain DomainHandler) *Dispatcher {
	return &Dispatcher{nav: nav, domain: domain, held: make(map[Element]bool)}
}

// Tick processes one frame of interactions in order. Feedback is returned for
// every interaction even when dispatch fails. A press fires only on its edge,
// only once per element per tick, and only for elements of the visible
// screen. While the navigator is Empty no screen is visible, so presses on
// the elements of destroyed screens are ignored. After the first error no
// further presses are dispatched this tick.
func (d *Dispatcher) Tick(ctx context.Context, interactions []Interaction) ([]Feedback, error) {
	feedback := make([]Feedback, 0, len(interactions))
	fired := make(map[Element]bool)
	var firstErr error
	for _, in := range interactions {
		feedback = append(feedback, Feedback{Element: in.Element, Signal: in.Signal})
		wasHeld := d.held[in.Element]
		d.held[in.Element] = in.Signal == Pressed
		if in.Signal != Pressed || wasHeld || fired[in.Element] {
			continue
		}
		fired[in.Element] = true
		if firstErr != nil {
			events.Dispatch.Ignored(in.Element.String(), "earlier error")
			continue
		}
		if top, ok := d.nav.Top(); !ok || top != in.Element.Handle {
			events.Dispatch.Ignored(in.Element.String(), "stale screen")
			continue
		}
		events.Dispatch.Press(in.Element.String(), actionName(in.Action))
		if err := d.Apply(ctx, in.Action); err != nil {
			firstErr = err
		}
	}
	d.pruneHeld(interactions)
	return feedback, firstErr
}

// Apply performs the effect of a, flattening batches and stopping at the
// first failure.
func (d *Dispatcher) Apply(ctx context.Context, a menu.Action) error {
	for _, act := range menu.Flatten(a) {
		if err := d.apply(ctx, act); err != nil {
			return fmt.Errorf("%s: %w", act, err)
		}
	}
	return nil
}

func (d *Dispatcher) apply(ctx context.Context, a menu.Action) error {
	switch v := a.(type) {
	case menu.OpenMenu:
		if d.nav.State() == navigation.Empty {
			return d.nav.Enter(ctx, v.Menu.Clone())
		}
		return d.nav.Push(ctx, v.Menu.Clone())
	case menu.Back:
		return d.nav.Pop()
	case menu.OpenTarget:
		return d.nav.ReplaceContext(v)
	case menu.CreateFromPath:
		d.forward("create", v)
	case menu.Rebuild:
		d.forward("rebuild", v)
	case menu.ImportExternalContent:
		d.forward("import", v)
	default:
		return fmt.Errorf("unsupported action %T", a)
	}
	return nil
}

func (d *Dispatcher) forward(kind string, a menu.Action) {
	events.Dispatch.Domain(kind, a.String())
	if d.domain != nil {
		d.domain.HandleDomain(a)
	}
}

// pruneHeld forgets elements that are neither on the visible screen nor
// reported this tick. An element still reported keeps its held state even
// after its screen is gone.
func (d *Dispatcher) pruneHeld(reported []Interaction) {
	seen := make(map[Element]bool, len(reported))
	for _, in := range reported {
		seen[in.Element] = true
	}
	top, ok := d.nav.Top()
	for el := range d.held {
		if seen[el] || (ok && el.Handle == top) {
			continue
		}
		delete(d.held, el)
	}
}

func actionName(a menu.Action) string {
	if a == nil {
		return "none"
	}
	return a.String()
}
