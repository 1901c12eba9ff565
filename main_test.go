package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/voxmod-menu/internal/app"
	"github.com/atomicstack/voxmod-menu/internal/config"
	"github.com/atomicstack/voxmod-menu/internal/menu"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	for i, name := range []string{"stdin", "stdout", "stderr"} {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestProbeTTYInvalidDescriptor(t *testing.T) {
	if probe := probeTTY("bogus", -1); probe.IsTerminal || probe.Width != 0 {
		t.Fatalf("expected non-terminal probe, got %+v", probe)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			AssetsRoot:   "/srv/assets",
			Width:        80,
			Height:       24,
			ShowFooter:   true,
			ReleaseDelay: 150 * time.Millisecond,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		ConfigFile: "/etc/voxmod.toml",
		Flags: map[string]string{
			"assets": "/srv/assets",
			"width":  "80",
			"footer": "true",
		},
		Args: []string{"--assets", "/srv/assets"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["assets"] != "/srv/assets" {
		t.Fatalf("expected assets flag, got %v", flagsValue["assets"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["configFile"] != "/etc/voxmod.toml" {
		t.Fatalf("expected config file in payload, got %v", payload["configFile"])
	}
	if p, _ := payload["logPath"].(string); p == "" {
		t.Fatalf("expected log path in payload")
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestReportOpenTarget(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, app.Result{
		Mode:    app.ModeGame,
		Handoff: menu.OpenTarget{Path: "worlds/alpha"},
		Signals: []menu.Action{menu.CreateFromPath{Path: "games/classic"}},
	})
	out := buf.String()
	if !strings.Contains(out, "Opening world worlds/alpha") {
		t.Fatalf("expected world path reported, got %q", out)
	}
	if !strings.Contains(out, "requested create(games/classic)") {
		t.Fatalf("expected domain signal reported, got %q", out)
	}
}

func TestReportNothingHandedOff(t *testing.T) {
	var buf bytes.Buffer
	report(&buf, app.Result{Mode: app.ModeExited})
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
