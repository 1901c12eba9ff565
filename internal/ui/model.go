package ui

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/voxmod-menu/internal/dispatcher"
	"github.com/atomicstack/voxmod-menu/internal/logging"
	"github.com/atomicstack/voxmod-menu/internal/menu"
	"github.com/atomicstack/voxmod-menu/internal/navigation"
	"github.com/atomicstack/voxmod-menu/internal/theme"
)

const (
	menuHeaderSeparator = "→"
	defaultReleaseDelay = 150 * time.Millisecond
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// releaseMsg ends a held press when no newer press arrived in the meantime.
type releaseMsg struct {
	seq int
}

// Options configures a Model.
type Options struct {
	Root         menu.Template
	Source       menu.Source
	Modes        navigation.ModeController
	Domain       dispatcher.DomainHandler
	Width        int
	Height       int
	ShowFooter   bool
	ReleaseDelay time.Duration
}

// Model implements the Bubble Tea model for the menu.
type Model struct {
	ctx        context.Context
	presenter  *Presenter
	nav        *navigation.Navigator
	dispatcher *dispatcher.Dispatcher
	domain     dispatcher.DomainHandler

	keys keyMap
	help help.Model

	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool
	showFooter   bool
	releaseDelay time.Duration

	pressing    bool
	pressHandle navigation.Handle
	pressSeq    int

	errMsg  string
	infoMsg string
	err     error

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the navigator for opts.Root and enters it.
func NewModel(ctx context.Context, opts Options) (*Model, error) {
	presenter := NewPresenter()
	m := &Model{
		ctx:          ctx,
		presenter:    presenter,
		nav:          navigation.New(opts.Source, presenter, opts.Modes),
		domain:       opts.Domain,
		keys:         defaultKeyMap(),
		help:         help.New(),
		showFooter:   opts.ShowFooter,
		releaseDelay: opts.ReleaseDelay,
	}
	m.help.Styles.ShortKey = styles.Footer.Bold(true)
	m.help.Styles.ShortDesc = *styles.Footer
	m.help.Styles.ShortSeparator = *styles.Footer
	if m.releaseDelay <= 0 {
		m.releaseDelay = defaultReleaseDelay
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.dispatcher = dispatcher.New(m.nav, m)
	if err := m.dispatcher.Apply(ctx, menu.OpenMenu{Menu: opts.Root}); err != nil {
		return nil, err
	}
	m.registerHandlers()
	_ = m.frame()
	return m, nil
}

// Err reports the fatal error that stopped the program, if any.
func (m *Model) Err() error {
	return m.err
}

// HandleDomain shows the forwarded signal and passes it on.
func (m *Model) HandleDomain(a menu.Action) {
	m.infoMsg = a.String()
	if m.domain != nil {
		m.domain.HandleDomain(a)
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(releaseMsg{}):        m.handleReleaseMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.release()
		if cmd := m.settle(m.leave()); cmd != nil {
			return cmd
		}
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Back):
		m.release()
		m.errMsg = ""
		err := m.dispatcher.Apply(m.ctx, menu.Back{})
		if err == nil {
			err = m.frame()
		}
		return m.settle(err)
	case key.Matches(keyMsg, m.keys.Press):
		return m.handlePress()
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveCursor(0, 1)
	default:
		return nil
	}
	return m.settle(m.frame())
}

func (m *Model) handlePress() tea.Cmd {
	v := m.presenter.visible()
	if v == nil {
		return nil
	}
	if !m.pressing {
		m.pressing = true
		m.pressHandle = v.handle
		m.errMsg = ""
	}
	m.pressSeq++
	seq := m.pressSeq
	release := tea.Tick(m.releaseDelay, func(time.Time) tea.Msg {
		return releaseMsg{seq: seq}
	})
	if cmd := m.settle(m.frame()); cmd != nil {
		return tea.Batch(cmd, release)
	}
	return release
}

func (m *Model) handleReleaseMsg(msg tea.Msg) tea.Cmd {
	rel, ok := msg.(releaseMsg)
	if !ok || !m.pressing || rel.seq != m.pressSeq {
		return nil
	}
	m.release()
	return m.settle(m.frame())
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	return nil
}

// leave pops every screen so the menu is torn down through the navigator.
// It stops at the first failure.
func (m *Model) leave() error {
	for m.nav.State() == navigation.Active {
		if err := m.dispatcher.Apply(m.ctx, menu.Back{}); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) release() {
	m.pressing = false
	m.pressHandle = 0
}

func (m *Model) moveCursor(dRow, dCol int) {
	v := m.presenter.visible()
	if v == nil {
		return
	}
	m.release()
	lens := v.rowLens()
	if dRow != 0 {
		v.cursor.MoveRow(lens, dRow)
	}
	if dCol != 0 {
		v.cursor.MoveCol(lens, dCol)
	}
}

// frame reports the signal of every button on the visible screen to the
// dispatcher and records the feedback for rendering.
func (m *Model) frame() error {
	feedback, err := m.dispatcher.Tick(m.ctx, m.interactions())
	m.presenter.record(feedback)
	return err
}

func (m *Model) interactions() []dispatcher.Interaction {
	v := m.presenter.visible()
	if v == nil {
		return nil
	}
	focus, _, hasFocus := v.focused()
	out := make([]dispatcher.Interaction, 0, v.screen.ButtonCount())
	for r, row := range v.screen.Rows {
		for c, button := range row {
			el := dispatcher.Element{Handle: v.handle, Row: r, Col: c}
			signal := dispatcher.Idle
			if hasFocus && el == focus {
				signal = dispatcher.Hovered
				if m.pressing && m.pressHandle == v.handle {
					signal = dispatcher.Pressed
				}
			}
			out = append(out, dispatcher.Interaction{Element: el, Action: button.Action, Signal: signal})
		}
	}
	return out
}

// settle turns the outcome of a dispatch into a command. Invalid transitions
// and cancellation are fatal; presentation failures are shown and the menu
// keeps running. The program ends once the navigator is empty.
func (m *Model) settle(err error) tea.Cmd {
	if err != nil {
		logging.Errorf("dispatch: %w", err)
		if errors.Is(err, navigation.ErrInvalidTransition) || errors.Is(err, context.Canceled) {
			m.err = err
			return tea.Quit
		}
		m.errMsg = err.Error()
	}
	if m.nav.State() == navigation.Empty {
		return tea.Quit
	}
	return nil
}
