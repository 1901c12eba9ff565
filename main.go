package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/voxmod-menu/internal/app"
	"github.com/atomicstack/voxmod-menu/internal/config"
	"github.com/atomicstack/voxmod-menu/internal/logging"
	"github.com/atomicstack/voxmod-menu/internal/logging/events"
	"github.com/atomicstack/voxmod-menu/internal/menu"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	result, err := app.Run(runtimeCfg.App)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v (see %s)\n", err, logging.Path())
		os.Exit(1)
	}
	report(os.Stdout, result)
}

// report prints what the menu session handed over to the rest of the
// application.
func report(w io.Writer, result app.Result) {
	for _, signal := range result.Signals {
		fmt.Fprintf(w, "requested %s\n", signal)
	}
	switch target := result.Handoff.(type) {
	case menu.OpenTarget:
		fmt.Fprintf(w, "Opening world %s\n", target.Path)
	case nil:
	default:
		fmt.Fprintf(w, "Handing off %s\n", target)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"config":     cfg,
		"configFile": cfg.ConfigFile,
		"logPath":    logging.Path(),
		"tty":        collectTTYDetails(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}
