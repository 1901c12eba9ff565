package app

import (
	"sync"

	"github.com/atomicstack/voxmod-menu/internal/menu"
)

// Domain collects the domain signals the menu forwards. The world and game
// logic that would act on them lives outside this program; the collected
// list is reported when the program exits.
type Domain struct {
	mu      sync.Mutex
	signals []menu.Action
}

func NewDomain() *Domain {
	return &Domain{}
}

func (d *Domain) HandleDomain(a menu.Action) {
	d.mu.Lock()
	d.signals = append(d.signals, a)
	d.mu.Unlock()
}

// Signals returns a copy of everything forwarded so far, in order.
func (d *Domain) Signals() []menu.Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]menu.Action, len(d.signals))
	copy(out, d.signals)
	return out
}
