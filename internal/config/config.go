package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/atomicstack/voxmod-menu/internal/app"
	"github.com/atomicstack/voxmod-menu/internal/menu"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// fileConfig mirrors the TOML configuration file.
type fileConfig struct {
	Assets       string        `koanf:"assets"`
	GamesDir     string        `koanf:"games_dir"`
	WorldsDir    string        `koanf:"worlds_dir"`
	RootMenu     string        `koanf:"root_menu"`
	MenuFile     string        `koanf:"menu_file"`
	Width        int           `koanf:"width"`
	Height       int           `koanf:"height"`
	Footer       bool          `koanf:"footer"`
	ReleaseDelay time.Duration `koanf:"release_delay"`
	MetricsAddr  string        `koanf:"metrics_addr"`
	LogFile      string        `koanf:"log_file"`
	Trace        bool          `koanf:"trace"`
}

const (
	envConfig       = "VOXMOD_MENU_CONFIG"
	envAssets       = "VOXMOD_MENU_ASSETS"
	envGamesDir     = "VOXMOD_MENU_GAMES_DIR"
	envWorldsDir    = "VOXMOD_MENU_WORLDS_DIR"
	envRootMenu     = "VOXMOD_MENU_ROOT_MENU"
	envMenuFile     = "VOXMOD_MENU_MENU_FILE"
	envWidth        = "VOXMOD_MENU_WIDTH"
	envHeight       = "VOXMOD_MENU_HEIGHT"
	envShowFooter   = "VOXMOD_MENU_FOOTER"
	envReleaseDelay = "VOXMOD_MENU_RELEASE_DELAY"
	envMetricsAddr  = "VOXMOD_MENU_METRICS_ADDR"
	envTrace        = "VOXMOD_MENU_TRACE"
	envLogFile      = "VOXMOD_MENU_LOG_FILE"

	appName             = "voxmod-menu"
	defaultReleaseDelay = 150 * time.Millisecond
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// in order of increasing precedence: defaults, config file, environment,
// flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath, explicit := scanConfigPath(args, env)
	fc, err := loadFile(configPath, explicit)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", configPath, "path to a TOML configuration file")
	assets := fs.String("assets", envOrDefault(env, envAssets, fc.Assets), "directory holding the games and worlds folders")
	gamesDir := fs.String("games-dir", envOrDefault(env, envGamesDir, fc.GamesDir), "games directory, relative to the assets directory unless absolute")
	worldsDir := fs.String("worlds-dir", envOrDefault(env, envWorldsDir, fc.WorldsDir), "worlds directory, relative to the assets directory unless absolute")
	rootMenu := fs.String("root-menu", envOrDefault(env, envRootMenu, fc.RootMenu), "open a specific registered menu as the root (e.g. play)")
	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, fc.MenuFile), "load the root menu from a YAML file")
	width := fs.Int("width", envOrInt(env, envWidth, fc.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, fc.Height), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, fc.Footer), "enable footer hint row (disabled by default)")
	releaseDelay := fs.Duration("release-delay", envOrDuration(env, envReleaseDelay, fc.ReleaseDelay), "idle time after the last press key before a press is released")
	metricsAddr := fs.String("metrics-addr", envOrDefault(env, envMetricsAddr, fc.MetricsAddr), "serve Prometheus metrics on this address (disabled when empty)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, fc.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, fc.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *releaseDelay < 0 {
		return Config{}, fmt.Errorf("release delay must be >= 0 (got %s)", *releaseDelay)
	}
	if *releaseDelay == 0 {
		*releaseDelay = defaultReleaseDelay
	}

	cfg := Config{
		App: app.Config{
			AssetsRoot:   *assets,
			GamesDir:     *gamesDir,
			WorldsDir:    *worldsDir,
			RootMenu:     *rootMenu,
			MenuFile:     *menuFile,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			ReleaseDelay: *releaseDelay,
			MetricsAddr:  *metricsAddr,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		ConfigFile: configPath,
		Flags: map[string]string{
			"config":       configPath,
			"assets":       *assets,
			"gamesDir":     *gamesDir,
			"worldsDir":    *worldsDir,
			"rootMenu":     *rootMenu,
			"menuFile":     *menuFile,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"releaseDelay": releaseDelay.String(),
			"metricsAddr":  *metricsAddr,
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// DefaultConfigPath is used when neither --config nor VOXMOD_MENU_CONFIG is
// set.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// scanConfigPath finds the config file location before the full flag set is
// built, so the file can supply flag defaults.
func scanConfigPath(args []string, env map[string]string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return v, true
	}
	return DefaultConfigPath(), false
}

// loadFile reads the TOML file at path. A missing file is only an error when
// the path was requested explicitly.
func loadFile(path string, explicit bool) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return fc, nil
		}
		return fc, fmt.Errorf("config file: %w", err)
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return fc, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := k.Unmarshal("", &fc); err != nil {
		return fc, fmt.Errorf("config file %s: %w", path, err)
	}
	fc.Assets = expandPath(fc.Assets)
	fc.GamesDir = expandPath(fc.GamesDir)
	fc.WorldsDir = expandPath(fc.WorldsDir)
	fc.MenuFile = expandPath(fc.MenuFile)
	fc.LogFile = expandPath(fc.LogFile)
	return fc, nil
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks references that flag parsing cannot: the menu file must
// exist and a root menu override must name a registered menu.
func Validate(cfg Config) error {
	if cfg.App.MenuFile != "" {
		if _, err := os.Stat(cfg.App.MenuFile); err != nil {
			return fmt.Errorf("menu file: %w", err)
		}
	}
	if cfg.App.RootMenu != "" && cfg.App.MenuFile == "" {
		if _, ok := menu.BuildRegistry().Match(cfg.App.RootMenu); !ok {
			return fmt.Errorf("unknown root menu %q", cfg.App.RootMenu)
		}
	}
	return nil
}
