package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/voxmod-menu/internal/assets"
	"github.com/atomicstack/voxmod-menu/internal/menu"
	"github.com/atomicstack/voxmod-menu/internal/metric"
	"github.com/atomicstack/voxmod-menu/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	AssetsRoot   string
	GamesDir     string
	WorldsDir    string
	RootMenu     string
	MenuFile     string
	Width        int
	Height       int
	ShowFooter   bool
	ReleaseDelay time.Duration
	MetricsAddr  string
}

// Result reports how the menu session ended.
type Result struct {
	Mode    Mode
	Handoff menu.Action
	Signals []menu.Action
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (Result, error) {
	root, err := RootTemplate(cfg, menu.BuildRegistry())
	if err != nil {
		return Result{}, err
	}
	assetsRoot := cfg.AssetsRoot
	if assetsRoot == "" {
		assetsRoot = assets.DefaultRoot()
	}

	modes := NewModes()
	domain := NewDomain()

	g, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model, err := ui.NewModel(ctx, ui.Options{
		Root:         root,
		Source:       AssetSource(assetsRoot, cfg),
		Modes:        modes,
		Domain:       domain,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		ReleaseDelay: cfg.ReleaseDelay,
	})
	if err != nil {
		return Result{}, fmt.Errorf("enter menu: %w", err)
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, g, cfg.MetricsAddr)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
		return model.Err()
	})

	err = g.Wait()
	return Result{Mode: modes.Mode(), Handoff: modes.Handoff(), Signals: domain.Signals()}, err
}

// AssetSource lists games and worlds under root, honouring directory
// overrides from cfg.
func AssetSource(root string, cfg Config) *assets.DirSource {
	src := assets.NewDirSource(root)
	if cfg.GamesDir != "" {
		src.Map(menu.KindGames, cfg.GamesDir)
	}
	if cfg.WorldsDir != "" {
		src.Map(menu.KindWorlds, cfg.WorldsDir)
	}
	return src
}

// RootTemplate picks the template the session starts from: a menu file, a
// named registry entry, or the registry root.
func RootTemplate(cfg Config, registry *menu.Registry) (menu.Template, error) {
	if cfg.MenuFile != "" {
		return menu.LoadTemplateFile(cfg.MenuFile)
	}
	if cfg.RootMenu == "" {
		return registry.Root(), nil
	}
	id, ok := registry.Match(cfg.RootMenu)
	if !ok {
		return menu.Template{}, fmt.Errorf("unknown root menu %q", cfg.RootMenu)
	}
	t, _ := registry.Find(id)
	return t, nil
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metric.GetHandler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
