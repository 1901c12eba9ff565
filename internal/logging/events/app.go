package events

import "github.com/atomicstack/voxmod-menu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Mode(from, to string) {
	logging.Trace("app.mode", map[string]interface{}{"from": from, "to": to})
}

func (AppTracer) Handoff(action string) {
	logging.Trace("app.handoff", map[string]interface{}{"action": action})
}
