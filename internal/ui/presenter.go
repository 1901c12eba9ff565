package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/voxmod-menu/internal/dispatcher"
	"github.com/atomicstack/voxmod-menu/internal/menu"
	"github.com/atomicstack/voxmod-menu/internal/navigation"
	uistate "github.com/atomicstack/voxmod-menu/internal/ui/state"
)

// ErrUnknownHandle is returned when destroying a handle that was never
// realized or is already gone.
var ErrUnknownHandle = errors.New("unknown screen handle")

// view is a realized screen together with its presentation state.
type view struct {
	handle  navigation.Handle
	screen  menu.Screen
	visible bool
	cursor  uistate.Cursor
	signals map[dispatcher.Element]dispatcher.Signal
}

func (v *view) rowLens() []int {
	lens := make([]int, len(v.screen.Rows))
	for i, row := range v.screen.Rows {
		lens[i] = len(row)
	}
	return lens
}

func (v *view) focused() (dispatcher.Element, menu.Button, bool) {
	if !v.cursor.Valid(v.rowLens()) {
		return dispatcher.Element{}, menu.Button{}, false
	}
	el := dispatcher.Element{Handle: v.handle, Row: v.cursor.Row, Col: v.cursor.Col}
	return el, v.screen.Rows[v.cursor.Row][v.cursor.Col], true
}

// Presenter keeps realized screens in memory for the Bubble Tea view. It
// implements navigation.Presenter.
type Presenter struct {
	next  navigation.Handle
	views map[navigation.Handle]*view
	// MaxScreens bounds how many screens may be realized at once; zero means
	// unlimited.
	MaxScreens int
}

func NewPresenter() *Presenter {
	return &Presenter{views: make(map[navigation.Handle]*view)}
}

func (p *Presenter) Realize(s menu.Screen) (navigation.Handle, error) {
	if p.MaxScreens > 0 && len(p.views) >= p.MaxScreens {
		return 0, fmt.Errorf("screen limit %d reached", p.MaxScreens)
	}
	p.next++
	v := &view{
		handle:  p.next,
		screen:  s,
		visible: true,
		signals: make(map[dispatcher.Element]dispatcher.Signal),
	}
	v.cursor = uistate.NewCursor(v.rowLens())
	p.views[p.next] = v
	return p.next, nil
}

func (p *Presenter) SetVisible(h navigation.Handle, visible bool) {
	if v, ok := p.views[h]; ok {
		v.visible = visible
	}
}

func (p *Presenter) Destroy(h navigation.Handle) error {
	if _, ok := p.views[h]; !ok {
		return fmt.Errorf("destroy %d: %w", h, ErrUnknownHandle)
	}
	delete(p.views, h)
	return nil
}

// Len returns the number of live screens.
func (p *Presenter) Len() int {
	return len(p.views)
}

// visible returns the single visible view.
func (p *Presenter) visible() *view {
	for _, v := range p.views {
		if v.visible {
			return v
		}
	}
	return nil
}

func (p *Presenter) record(feedback []dispatcher.Feedback) {
	for _, fb := range feedback {
		if v, ok := p.views[fb.Element.Handle]; ok {
			v.signals[fb.Element] = fb.Signal
		}
	}
}
