package events

import (
	"github.com/atomicstack/voxmod-menu/internal/logging"
	"github.com/atomicstack/voxmod-menu/internal/metric"
)

type NavTracer struct{}

type ResolveTracer struct{}

type DispatchTracer struct{}

var (
	Nav      = NavTracer{}
	Resolve  = ResolveTracer{}
	Dispatch = DispatchTracer{}
)

func (NavTracer) Enter(title string, handle uint64) {
	metric.Transitions.Increment("enter")
	logging.Trace("nav.enter", map[string]interface{}{"title": title, "handle": handle})
}

func (NavTracer) Push(title string, handle uint64, depth int) {
	metric.Transitions.Increment("push")
	logging.Trace("nav.push", map[string]interface{}{"title": title, "handle": handle, "depth": depth})
}

func (NavTracer) Pop(handle uint64, depth int) {
	metric.Transitions.Increment("pop")
	logging.Trace("nav.pop", map[string]interface{}{"handle": handle, "depth": depth})
}

func (NavTracer) Replace(action string, destroyed int) {
	metric.Transitions.Increment("replace")
	logging.Trace("nav.replace", map[string]interface{}{"action": action, "destroyed": destroyed})
}

func (NavTracer) Failure(op string, err error) {
	if err == nil {
		return
	}
	metric.TransitionFailures.Increment(op)
	logging.Trace("nav.failure", map[string]interface{}{"op": op, "error": err.Error()})
}

func (ResolveTracer) Resolved(title string, rows int) {
	logging.Trace("resolve.done", map[string]interface{}{"title": title, "rows": rows})
}

func (ResolveTracer) Unavailable(kind string, err error) {
	metric.EnumerationFailures.Increment(kind)
	payload := map[string]interface{}{"kind": kind}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("resolve.unavailable", payload)
}

func (DispatchTracer) Press(element, action string) {
	logging.Trace("dispatch.press", map[string]interface{}{"element": element, "action": action})
}

func (DispatchTracer) Ignored(element, reason string) {
	logging.Trace("dispatch.ignored", map[string]interface{}{"element": element, "reason": reason})
}

func (DispatchTracer) Domain(kind, action string) {
	metric.DomainSignals.Increment(kind)
	logging.Trace("dispatch.domain", map[string]interface{}{"kind": kind, "action": action})
}
