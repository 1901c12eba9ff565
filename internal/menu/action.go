package menu

import (
	"fmt"
	"reflect"
)

// Action is the effect bound to a button. Implementations are plain values;
// once a button is placed on a Screen its action is never modified.
type Action interface {
	isAction()
	fmt.Stringer
}

// OpenMenu descends into a submenu built from Menu.
type OpenMenu struct {
	Menu Template
}

// Back pops the current screen.
type Back struct{}

// Rebuild asks the surrounding application to rebuild its content.
type Rebuild struct{}

// ImportExternalContent asks the surrounding application to import content.
type ImportExternalContent struct{}

// CreateFromPath creates something (a world) from the template at Path.
type CreateFromPath struct {
	Path string
}

// OpenTarget activates the resolved Path (e.g. loads a world). It leaves the
// menu subsystem.
type OpenTarget struct {
	Path string
}

// Batch applies Actions in order.
type Batch struct {
	Actions []Action
}

func (OpenMenu) isAction()              {}
func (Back) isAction()                  {}
func (Rebuild) isAction()               {}
func (ImportExternalContent) isAction() {}
func (CreateFromPath) isAction()        {}
func (OpenTarget) isAction()            {}
func (Batch) isAction()                 {}

func (a OpenMenu) String() string            { return fmt.Sprintf("open-menu(%s)", a.Menu.Title.Text) }
func (Back) String() string                  { return "back" }
func (Rebuild) String() string               { return "rebuild" }
func (ImportExternalContent) String() string { return "import" }
func (a CreateFromPath) String() string      { return fmt.Sprintf("create(%s)", a.Path) }
func (a OpenTarget) String() string          { return fmt.Sprintf("open(%s)", a.Path) }
func (a Batch) String() string               { return fmt.Sprintf("batch(%d)", len(a.Actions)) }

// CloneAction returns a deep copy of a, including any nested templates.
func CloneAction(a Action) Action {
	switch v := a.(type) {
	case OpenMenu:
		return OpenMenu{Menu: v.Menu.Clone()}
	case Batch:
		if v.Actions == nil {
			return Batch{}
		}
		dup := make([]Action, len(v.Actions))
		for i, inner := range v.Actions {
			dup[i] = CloneAction(inner)
		}
		return Batch{Actions: dup}
	default:
		// remaining variants hold only value fields
		return a
	}
}

// ActionsEqual reports whether a and b are deeply equal.
func ActionsEqual(a, b Action) bool {
	return reflect.DeepEqual(a, b)
}

// Flatten expands nested batches depth-first, preserving order. Non-batch
// actions yield themselves.
func Flatten(a Action) []Action {
	batch, ok := a.(Batch)
	if !ok {
		if a == nil {
			return nil
		}
		return []Action{a}
	}
	out := make([]Action, 0, len(batch.Actions))
	for _, inner := range batch.Actions {
		out = append(out, Flatten(inner)...)
	}
	return out
}

// PathAction selects which path-parameterised action a generator binds to
// each discovered entry.
type PathAction int

const (
	PathCreate PathAction = iota
	PathOpen
)

// Bind builds the concrete action for path.
func (p PathAction) Bind(path string) Action {
	switch p {
	case PathOpen:
		return OpenTarget{Path: path}
	default:
		return CreateFromPath{Path: path}
	}
}

func (p PathAction) String() string {
	switch p {
	case PathOpen:
		return "open"
	case PathCreate:
		return "create"
	default:
		return fmt.Sprintf("PathAction(%d)", int(p))
	}
}
