package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/ocr-dataentry/ocrsetup/internal/config"
	"github.com/ocr-dataentry/ocrsetup/internal/defs"
	"github.com/ocr-dataentry/ocrsetup/internal/provision"
	"github.com/ocr-dataentry/ocrsetup/internal/ui"
)

// fakeRunner records every command instead of executing it. Binaries in
// available resolve via LookPath; outputs and failures match recorded
// commands by substring.
type fakeRunner struct {
	mu        sync.Mutex
	commands  []provision.Command
	available []string
	outputs   map[string]string
	failures  map[string]error
}

func (f *fakeRunner) record(cmd provision.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
}

func (f *fakeRunner) Run(_ context.Context, cmd provision.Command) error {
	f.record(cmd)
	for substr, err := range f.failures {
		if strings.Contains(cmd.String(), substr) {
			return err
		}
	}
	return nil
}

func (f *fakeRunner) Output(_ context.Context, cmd provision.Command) (string, error) {
	f.record(cmd)
	for substr, out := range f.outputs {
		if strings.Contains(cmd.String(), substr) {
			return out, nil
		}
	}
	return "", nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if slices.Contains(f.available, name) {
		return "/usr/bin/" + name, nil
	}
	return "", &lookPathError{name: name}
}

func (f *fakeRunner) ran() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.commands))
	for i, c := range f.commands {
		out[i] = c.String()
	}
	return out
}

type lookPathError struct{ name string }

func (e *lookPathError) Error() string { return e.name + ": executable file not found" }

// newTestDeps builds headless, colorless dependencies around the given
// runner with a fresh config manager.
func newTestDeps(r provision.Runner) *Dependencies {
	theme := ui.NewTheme(true)
	hm := ui.NewHeadlessManager()
	hm.ForceHeadless(true)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := config.NewManager()
	manager.SetLogger(logger)
	return &Dependencies{
		Config:   manager,
		Runner:   r,
		Theme:    theme,
		Headless: hm,
		Progress: ui.NewProgress(theme, hm),
		Logger:   logger,
	}
}

// resetFlags clears the package-level flag state that cobra keeps
// between Execute calls.
func resetFlags() {
	flagNoColor = false
	flagLogLevel = ""

	setupFlags.requirements = ""
	setupFlags.skipSystem = false
	setupFlags.skipPython = false
	setupFlags.skipUpdate = false
	setupFlags.dryRun = false
	setupFlags.yes = false
	setupFlags.nonInteractive = false
	setupFlags.reinstall = false
	setupFlags.profile = ""
	setupFlags.engine = ""

	planFlags.requirements = ""
	planFlags.skipSystem = false
	planFlags.skipPython = false
	planFlags.profile = ""
	planFlags.engine = ""

	doctorFlags.explain = false

	langdataFlags.dest = ""
	langdataFlags.mirror = ""
	langdataFlags.cacheDir = ""
	langdataFlags.fetchOnly = false
}

// executeCommand runs the root command with the given args and captures
// its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolateWorkDir moves the test into a temp working directory and points
// the config loader at it, so host config never leaks into tests.
func isolateWorkDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("OCRSETUP_CONFIG_DIR", filepath.Join(dir, defs.ConfigDir))
	return dir
}
