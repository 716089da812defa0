package cli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "ocrsetup" {
		t.Errorf("Use = %q, want ocrsetup", rootCmd.Use)
	}
	if rootCmd.Version == "" {
		t.Error("root command should carry a version")
	}
	if !rootCmd.HasSubCommands() {
		t.Error("root command should have subcommands")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"setup", "plan", "doctor", "langdata"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestInitDependencies(t *testing.T) {
	InitDependencies()
	d := GetDeps()
	if d == nil {
		t.Fatal("GetDeps returned nil after InitDependencies")
	}
	if d.Config == nil || d.Runner == nil || d.Theme == nil ||
		d.Headless == nil || d.Progress == nil || d.Logger == nil {
		t.Error("InitDependencies left a dependency unset")
	}
}

func TestSetDepsReplacesGlobal(t *testing.T) {
	old := GetDeps()
	defer SetDeps(old)

	d := newTestDeps(&fakeRunner{})
	SetDeps(d)
	if GetDeps() != d {
		t.Error("SetDeps did not replace the global instance")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()

	if !newLogger("debug", &buf).Enabled(ctx, slog.LevelDebug) {
		t.Error("debug logger should enable debug records")
	}
	if newLogger("error", &buf).Enabled(ctx, slog.LevelInfo) {
		t.Error("error logger should suppress info records")
	}
	// Unknown names fall back to info.
	if newLogger("chatty", &buf).Enabled(ctx, slog.LevelDebug) {
		t.Error("unknown level should fall back to info")
	}
}
