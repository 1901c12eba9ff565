package menu

import "reflect"

// Emphasis governs how large a title is drawn. It carries no other meaning.
type Emphasis int

const (
	Primary Emphasis = iota
	Secondary
)

// Title is the heading of a menu screen.
type Title struct {
	Text     string
	Emphasis Emphasis
}

// Button is a labelled action.
type Button struct {
	Text   string
	Action Action
}

// Template is the declarative, unresolved description of a screen. It is
// constructed fresh for every navigation event and never mutated once built.
type Template struct {
	Title  Title
	Groups []Group
}

// Group is either Fixed or Generated.
type Group interface {
	isGroup()
}

// Fixed is a literal row of buttons.
type Fixed struct {
	Buttons []Button
}

// Generated is resolved against a Source at build time: one row per
// discovered entry.
type Generated struct {
	Source Generator
}

func (Fixed) isGroup()     {}
func (Generated) isGroup() {}

// Kind names a logical collection a Source can enumerate.
type Kind string

const (
	KindGames  Kind = "games"
	KindWorlds Kind = "worlds"
)

// Generator describes what to enumerate and what to bind to each entry.
type Generator struct {
	Kind     Kind
	BasePath string
	Action   PathAction
}

// EachGroup calls fn for every group in order, stopping when fn returns false.
func (t Template) EachGroup(fn func(int, Group) bool) {
	for i, g := range t.Groups {
		if !fn(i, g) {
			return
		}
	}
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	out := Template{Title: t.Title}
	if t.Groups == nil {
		return out
	}
	out.Groups = make([]Group, len(t.Groups))
	for i, g := range t.Groups {
		out.Groups[i] = cloneGroup(g)
	}
	return out
}

// Equal reports whether t and other describe the same menu tree.
func (t Template) Equal(other Template) bool {
	return reflect.DeepEqual(t, other)
}

func cloneGroup(g Group) Group {
	fixed, ok := g.(Fixed)
	if !ok {
		return g
	}
	return Fixed{Buttons: cloneButtons(fixed.Buttons)}
}

func cloneButtons(buttons []Button) []Button {
	if buttons == nil {
		return nil
	}
	dup := make([]Button, len(buttons))
	for i, b := range buttons {
		dup[i] = Button{Text: b.Text, Action: CloneAction(b.Action)}
	}
	return dup
}

// Row is a convenience constructor for a Fixed group.
func Row(buttons ...Button) Fixed {
	return Fixed{Buttons: buttons}
}
