package main

import (
	"os"

	"golang.org/x/term"
)

type ttyDetails struct {
	Detected *ttyProbe  `json:"detected,omitempty"`
	Probes   []ttyProbe `json:"probes"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals and the
// first size that could be read.
func collectTTYDetails() ttyDetails {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	details := ttyDetails{Probes: make([]ttyProbe, 0, len(files))}
	for i, f := range files {
		probe := probeTTY(names[i], int(f.Fd()))
		if details.Detected == nil && probe.Width > 0 {
			detected := probe
			details.Detected = &detected
		}
		details.Probes = append(details.Probes, probe)
	}
	return details
}

func probeTTY(name string, fd int) ttyProbe {
	probe := ttyProbe{Name: name}
	if fd < 0 || !term.IsTerminal(fd) {
		return probe
	}
	probe.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width, probe.Height = width, height
	return probe
}
