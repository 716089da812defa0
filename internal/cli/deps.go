// Package cli provides the Cobra command tree and dependency wiring for
// the ocrsetup CLI. This file defines the Dependencies struct
// (Composition Root) that wires the domain modules together.
package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ocr-dataentry/ocrsetup/internal/config"
	"github.com/ocr-dataentry/ocrsetup/internal/provision"
	"github.com/ocr-dataentry/ocrsetup/internal/ui"
)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types are
// instantiated and wired together. Commands access package managers
// through the Runner interface only, which is what makes dry-run and
// command tests possible without spawning processes.
type Dependencies struct {
	Config   *config.Manager
	Runner   provision.Runner
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Progress ui.Progress
	Logger   *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies.
// It should be called once during application startup. The configuration
// is loaded lazily by EnsureConfig once a working directory is known.
func InitDependencies() {
	theme := ui.NewTheme(os.Getenv("NO_COLOR") != "")
	headless := ui.NewHeadlessManager()
	logger := newLogger(config.DefaultLogLevel, os.Stderr)

	manager := config.NewManager()
	manager.SetLogger(logger)

	deps = &Dependencies{
		Config:   manager,
		Runner:   provision.NewRunner(os.Stdout, os.Stderr),
		Theme:    theme,
		Headless: headless,
		Progress: ui.NewProgress(theme, headless),
		Logger:   logger,
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// EnsureConfig lazily loads the configuration for the given working
// directory. Subsequent calls return the already-loaded configuration.
// Settings that affect presentation (no_color, log_level) are applied
// to the UI and logger on first load; explicit flags win over them.
func (d *Dependencies) EnsureConfig(workDir string) (*config.Config, error) {
	if cfg := d.Config.Get(); cfg != nil {
		return cfg, nil
	}

	cfg, err := d.Config.Load(workDir)
	if err != nil {
		return nil, err
	}

	if cfg.System.NoColor && !d.Theme.NoColor {
		d.Theme = ui.NewTheme(true)
		d.Progress = ui.NewProgress(d.Theme, d.Headless)
	}
	if flagLogLevel == "" && cfg.System.LogLevel != "" {
		d.Logger = newLogger(cfg.System.LogLevel, os.Stderr)
	}

	return cfg, nil
}

// applyGlobalFlags re-applies persistent flag values after parsing.
// Cobra parses flags inside Execute, after InitDependencies has already
// built the default theme and logger.
func applyGlobalFlags() {
	if deps == nil {
		return
	}
	if flagNoColor && !deps.Theme.NoColor {
		deps.Theme = ui.NewTheme(true)
		deps.Progress = ui.NewProgress(deps.Theme, deps.Headless)
	}
	if flagLogLevel != "" {
		deps.Logger = newLogger(flagLogLevel, os.Stderr)
		deps.Config.SetLogger(deps.Logger)
	}
}

// newLogger builds a text slog.Logger at the given level. Unknown level
// names fall back to info.
func newLogger(level string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
