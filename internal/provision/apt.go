package provision

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ocr-dataentry/ocrsetup/internal/defs"
)

// aptNoninteractiveEnv keeps dpkg from prompting during installs.
var aptNoninteractiveEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// Apt drives the Debian/Ubuntu package manager.
type Apt struct {
	runner Runner
	sudo   bool
}

// NewApt creates an Apt backend. It returns an error when apt-get is not
// on PATH; this tool only supports the Debian/Ubuntu family.
func NewApt(runner Runner) (*Apt, error) {
	if _, err := runner.LookPath(defs.AptGet); err != nil {
		return nil, fmt.Errorf("apt-get not found; ocrsetup supports Debian/Ubuntu hosts only: %w", err)
	}
	return &Apt{
		runner: runner,
		sudo:   os.Geteuid() != 0,
	}, nil
}

// SetSudo overrides the euid-based sudo decision (used in tests).
func (a *Apt) SetSudo(sudo bool) {
	a.sudo = sudo
}

// command prefixes apt-get invocations with sudo for unprivileged users.
func (a *Apt) command(args ...string) Command {
	if a.sudo {
		return Command{Name: defs.Sudo, Args: append([]string{defs.AptGet}, args...), Env: aptNoninteractiveEnv}
	}
	return Command{Name: defs.AptGet, Args: args, Env: aptNoninteractiveEnv}
}

// Update refreshes the package index.
func (a *Apt) Update(ctx context.Context) error {
	return a.runner.Run(ctx, a.command("update"))
}

// Install installs the given packages in one invocation, preserving
// order. apt-get leaves already-installed packages alone, which keeps
// repeated runs idempotent.
func (a *Apt) Install(ctx context.Context, pkgs []string, reinstall bool) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := []string{"install", "-y"}
	if reinstall {
		args = append(args, "--reinstall")
	}
	args = append(args, pkgs...)
	return a.runner.Run(ctx, a.command(args...))
}

// Installed reports whether the package is already installed, via
// dpkg-query. Errors (including unknown packages) report false.
func (a *Apt) Installed(ctx context.Context, pkg string) bool {
	out, err := a.runner.Output(ctx, Command{
		Name: defs.DpkgQuery,
		Args: []string{"-W", "-f=${Status}", pkg},
	})
	if err != nil {
		return false
	}
	return strings.Contains(out, "install ok installed")
}
