package app

import (
	"sync"

	"github.com/atomicstack/voxmod-menu/internal/logging/events"
	"github.com/atomicstack/voxmod-menu/internal/menu"
)

// Mode is the coarse application mode surrounding the menu subsystem.
type Mode int

const (
	ModeIdle Mode = iota
	ModeMenu
	ModeGame
	ModeExited
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeGame:
		return "game"
	case ModeExited:
		return "exited"
	default:
		return "idle"
	}
}

// Modes tracks the application mode and the payload handed over when the
// menu is replaced by another context.
type Modes struct {
	mu      sync.Mutex
	mode    Mode
	handoff menu.Action
}

func NewModes() *Modes {
	return &Modes{}
}

func (m *Modes) EnterMenu() {
	m.set(ModeMenu, nil)
}

func (m *Modes) LeaveMenu() {
	m.set(ModeExited, nil)
}

func (m *Modes) ReplaceContext(a menu.Action) {
	events.App.Handoff(a.String())
	m.set(ModeGame, a)
}

func (m *Modes) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Handoff returns the action the menu handed over, if any.
func (m *Modes) Handoff() menu.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handoff
}

func (m *Modes) set(mode Mode, handoff menu.Action) {
	m.mu.Lock()
	from := m.mode
	m.mode = mode
	if handoff != nil {
		m.handoff = handoff
	}
	m.mu.Unlock()
	events.App.Mode(from.String(), mode.String())
}
