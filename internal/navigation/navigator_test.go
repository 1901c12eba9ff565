package navigation

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/atomicstack/voxmod-menu/internal/menu"
)

type fakePresenter struct {
	next        Handle
	screens     map[Handle]menu.Screen
	visible     map[Handle]bool
	destroyed   []Handle
	realizeErr  error
	destroyErr  map[Handle]error
	visibleCall int
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{
		screens:    make(map[Handle]menu.Screen),
		visible:    make(map[Handle]bool),
		destroyErr: make(map[Handle]error),
	}
}

func (p *fakePresenter) Realize(s menu.Screen) (Handle, error) {
	if p.realizeErr != nil {
		return 0, p.realizeErr
	}
	p.next++
	p.screens[p.next] = s
	p.visible[p.next] = true
	return p.next, nil
}

func (p *fakePresenter) SetVisible(h Handle, v bool) {
	p.visibleCall++
	p.visible[h] = v
}

func (p *fakePresenter) Destroy(h Handle) error {
	if err := p.destroyErr[h]; err != nil {
		return err
	}
	delete(p.screens, h)
	delete(p.visible, h)
	p.destroyed = append(p.destroyed, h)
	return nil
}

func (p *fakePresenter) visibleHandles() []Handle {
	var out []Handle
	for h, v := range p.visible {
		if v {
			out = append(out, h)
		}
	}
	return out
}

type recordingModes struct {
	entered  int
	left     int
	replaced []menu.Action
}

func (m *recordingModes) EnterMenu()                   { m.entered++ }
func (m *recordingModes) LeaveMenu()                   { m.left++ }
func (m *recordingModes) ReplaceContext(a menu.Action) { m.replaced = append(m.replaced, a) }

func titled(title string) menu.Template {
	return menu.Template{
		Title:  menu.Title{Text: title},
		Groups: []menu.Group{menu.Row(menu.Button{Text: "Back", Action: menu.Back{}})},
	}
}

func newTestNavigator() (*Navigator, *fakePresenter, *recordingModes) {
	p := newFakePresenter()
	m := &recordingModes{}
	return New(nil, p, m), p, m
}

func assertSingleVisibleTop(t *testing.T, n *Navigator, p *fakePresenter) {
	t.Helper()
	visible := p.visibleHandles()
	top, ok := n.Top()
	if !ok {
		if len(visible) != 0 {
			t.Fatalf("expected no visible handles while empty, got %v", visible)
		}
		return
	}
	if len(visible) != 1 || visible[0] != top {
		t.Fatalf("expected only top %d visible, got %v", top, visible)
	}
}

func TestEnterCreatesSingleEntry(t *testing.T) {
	n, p, m := newTestNavigator()
	if n.State() != Empty {
		t.Fatalf("expected empty navigator")
	}
	if err := n.Enter(context.Background(), titled("Root")); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if n.State() != Active || n.Depth() != 1 {
		t.Fatalf("expected active depth 1, got %s depth %d", n.State(), n.Depth())
	}
	if m.entered != 1 {
		t.Fatalf("expected mode controller notified once, got %d", m.entered)
	}
	top, _ := n.Top()
	if p.screens[top].Title.Text != "Root" {
		t.Fatalf("expected Root screen realized, got %q", p.screens[top].Title.Text)
	}
	assertSingleVisibleTop(t, n, p)
}

func TestPushHidesPreviousWithoutDestroying(t *testing.T) {
	n, p, _ := newTestNavigator()
	ctx := context.Background()
	if err := n.Enter(ctx, titled("Root")); err != nil {
		t.Fatalf("enter: %v", err)
	}
	root, _ := n.Top()
	if err := n.Push(ctx, titled("Sub")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if n.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", n.Depth())
	}
	if _, alive := p.screens[root]; !alive {
		t.Fatalf("expected root handle retained")
	}
	if p.visible[root] {
		t.Fatalf("expected root handle hidden")
	}
	assertSingleVisibleTop(t, n, p)
	if got := n.Titles(); len(got) != 2 || got[0] != "Root" || got[1] != "Sub" {
		t.Fatalf("unexpected titles %v", got)
	}
}

func TestPopRevealsPreviousAndDestroysTop(t *testing.T) {
	n, p, m := newTestNavigator()
	ctx := context.Background()
	_ = n.Enter(ctx, titled("Root"))
	root, _ := n.Top()
	_ = n.Push(ctx, titled("Sub"))
	sub, _ := n.Top()

	if err := n.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	if n.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", n.Depth())
	}
	if _, alive := p.screens[sub]; alive {
		t.Fatalf("expected sub handle destroyed")
	}
	if !p.visible[root] {
		t.Fatalf("expected root visible again")
	}
	if m.left != 0 {
		t.Fatalf("expected menu still active")
	}
	assertSingleVisibleTop(t, n, p)
}

func TestPopLastEntryLeavesMenu(t *testing.T) {
	n, p, m := newTestNavigator()
	_ = n.Enter(context.Background(), titled("Root"))
	if err := n.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	if n.State() != Empty {
		t.Fatalf("expected empty navigator")
	}
	if m.left != 1 {
		t.Fatalf("expected LeaveMenu once, got %d", m.left)
	}
	if len(p.screens) != 0 {
		t.Fatalf("expected no screens left, got %d", len(p.screens))
	}
	if n.Handles() != nil {
		t.Fatalf("expected nil handles when empty")
	}
}

func TestInvalidTransitions(t *testing.T) {
	n, _, _ := newTestNavigator()
	ctx := context.Background()
	if err := n.Pop(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid pop, got %v", err)
	}
	if err := n.Push(ctx, titled("x")); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid push, got %v", err)
	}
	if err := n.ReplaceContext(menu.OpenTarget{Path: "w"}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid replace, got %v", err)
	}
	_ = n.Enter(ctx, titled("Root"))
	err := n.Enter(ctx, titled("Again"))
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if te.Op != "enter" || te.State != Active {
		t.Fatalf("unexpected transition error %+v", te)
	}
	if n.Depth() != 1 {
		t.Fatalf("expected depth unchanged, got %d", n.Depth())
	}
}

func TestRealizeFailureLeavesStackUntouched(t *testing.T) {
	n, p, _ := newTestNavigator()
	ctx := context.Background()
	_ = n.Enter(ctx, titled("Root"))
	root, _ := n.Top()
	calls := p.visibleCall

	p.realizeErr = errors.New("no gpu")
	err := n.Push(ctx, titled("Sub"))
	var pe *PresentationError
	if !errors.As(err, &pe) || pe.Op != "realize" {
		t.Fatalf("expected realize PresentationError, got %v", err)
	}
	if n.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", n.Depth())
	}
	if !p.visible[root] || p.visibleCall != calls {
		t.Fatalf("expected root untouched")
	}
}

func TestEnterRealizeFailureStaysEmpty(t *testing.T) {
	n, p, m := newTestNavigator()
	p.realizeErr = errors.New("boom")
	if err := n.Enter(context.Background(), titled("Root")); err == nil {
		t.Fatalf("expected error")
	}
	if n.State() != Empty || m.entered != 0 {
		t.Fatalf("expected navigator to stay empty without notification")
	}
}

func TestPopDestroyFailureLeavesStackUntouched(t *testing.T) {
	n, p, _ := newTestNavigator()
	ctx := context.Background()
	_ = n.Enter(ctx, titled("Root"))
	_ = n.Push(ctx, titled("Sub"))
	sub, _ := n.Top()
	p.destroyErr[sub] = errors.New("stuck")

	err := n.Pop()
	var pe *PresentationError
	if !errors.As(err, &pe) || pe.Handle != sub {
		t.Fatalf("expected destroy PresentationError for %d, got %v", sub, err)
	}
	if n.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", n.Depth())
	}
	assertSingleVisibleTop(t, n, p)
}

func TestCancelledResolveDoesNotPush(t *testing.T) {
	n, p, _ := newTestNavigator()
	_ = n.Enter(context.Background(), titled("Root"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Push(ctx, titled("Sub")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n.Depth() != 1 || len(p.screens) != 1 {
		t.Fatalf("expected no partial push")
	}
}

func TestReplaceContextDestroysEverything(t *testing.T) {
	n, p, m := newTestNavigator()
	ctx := context.Background()
	_ = n.Enter(ctx, titled("Root"))
	_ = n.Push(ctx, titled("Play"))
	_ = n.Push(ctx, titled("Worlds"))
	handles := n.Handles()

	target := menu.OpenTarget{Path: "worlds/alpha"}
	if err := n.ReplaceContext(target); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if n.State() != Empty {
		t.Fatalf("expected empty navigator")
	}
	if len(p.destroyed) != 3 {
		t.Fatalf("expected 3 handles destroyed, got %v", p.destroyed)
	}
	for i, h := range p.destroyed {
		if h != handles[len(handles)-1-i] {
			t.Fatalf("expected top-down destruction, got %v", p.destroyed)
		}
	}
	if len(m.replaced) != 1 || !menu.ActionsEqual(m.replaced[0], target) {
		t.Fatalf("expected payload handed off, got %v", m.replaced)
	}
	if m.left != 0 {
		t.Fatalf("replace must not report a plain leave")
	}
}

func TestReplaceContextReportsLeakedHandles(t *testing.T) {
	n, p, m := newTestNavigator()
	ctx := context.Background()
	_ = n.Enter(ctx, titled("Root"))
	root, _ := n.Top()
	_ = n.Push(ctx, titled("Play"))
	p.destroyErr[root] = errors.New("leak")

	err := n.ReplaceContext(menu.OpenTarget{Path: "w"})
	var pe *PresentationError
	if !errors.As(err, &pe) || pe.Handle != root {
		t.Fatalf("expected PresentationError for root, got %v", err)
	}
	if n.State() != Empty {
		t.Fatalf("expected empty navigator after teardown")
	}
	if len(m.replaced) != 1 {
		t.Fatalf("expected handoff despite failure")
	}
}

func TestRandomSequencesKeepSingleVisibleTop(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()
	for run := 0; run < 50; run++ {
		n, p, _ := newTestNavigator()
		for step := 0; step < 40; step++ {
			switch {
			case n.State() == Empty:
				if err := n.Enter(ctx, titled("Root")); err != nil {
					t.Fatalf("enter: %v", err)
				}
			case rng.Intn(2) == 0:
				if err := n.Push(ctx, titled("Sub")); err != nil {
					t.Fatalf("push: %v", err)
				}
			default:
				if err := n.Pop(); err != nil {
					t.Fatalf("pop: %v", err)
				}
			}
			assertSingleVisibleTop(t, n, p)
			if len(p.screens) != n.Depth() {
				t.Fatalf("expected %d live screens, got %d", n.Depth(), len(p.screens))
			}
		}
	}
}
