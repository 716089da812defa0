package provision

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ocr-dataentry/ocrsetup/internal/resilience"
	"github.com/ocr-dataentry/ocrsetup/pkg/models"
)

// Reporter receives progress events during plan execution.
type Reporter interface {
	StepStart(step Step, index, total int)
	StepDone(step Step)
	Info(msg string)
}

// nopReporter discards all events.
type nopReporter struct{}

func (nopReporter) StepStart(Step, int, int) {}
func (nopReporter) StepDone(Step)            {}
func (nopReporter) Info(string)              {}

// ExecuteOptions controls plan execution.
type ExecuteOptions struct {
	// DryRun reports the commands that would run without executing them.
	DryRun bool

	// Reinstall forces reinstallation of already-installed OS packages.
	Reinstall bool

	// SkipUpdate skips the apt index refresh before the system phase.
	SkipUpdate bool
}

// Executor runs an install plan against the apt and pip backends.
type Executor struct {
	runner   Runner
	pipBin   string
	reporter Reporter
	policy   resilience.RetryPolicy
	logger   *slog.Logger
}

// NewExecutor creates an Executor. reporter may be nil.
func NewExecutor(runner Runner, pipBin string, reporter Reporter, logger *slog.Logger) *Executor {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{
		runner:   runner,
		pipBin:   pipBin,
		reporter: reporter,
		policy:   resilience.DefaultPolicy(),
		logger:   logger,
	}
}

// SetRetryPolicy overrides the default retry policy (used in tests).
func (e *Executor) SetRetryPolicy(policy resilience.RetryPolicy) {
	e.policy = policy
}

// Execute runs the plan's steps in order. The first failing step aborts
// the run; later steps are not attempted.
func (e *Executor) Execute(ctx context.Context, plan *Plan, opts ExecuteOptions) error {
	total := len(plan.Steps)
	for i, step := range plan.Steps {
		e.reporter.StepStart(step, i+1, total)

		var err error
		switch step.Phase {
		case PhaseSystem:
			err = e.executeSystem(ctx, step, opts)
		case PhasePython:
			err = e.executePython(ctx, step, opts)
		default:
			err = fmt.Errorf("unknown phase %q", step.Phase)
		}
		if err != nil {
			return fmt.Errorf("%s phase: %w", step.Phase, err)
		}

		e.reporter.StepDone(step)
	}
	return nil
}

// executeSystem refreshes the apt index and installs the step's packages.
// Already-installed packages are skipped unless Reinstall is set, which
// keeps repeated runs from churning package state.
func (e *Executor) executeSystem(ctx context.Context, step Step, opts ExecuteOptions) error {
	apt, err := NewApt(e.runner)
	if err != nil {
		if opts.DryRun {
			e.reporter.Info("dry-run: apt-get not found, showing intended commands")
			apt = &Apt{runner: e.runner}
		} else {
			return err
		}
	}

	if opts.DryRun {
		if !opts.SkipUpdate {
			e.reporter.Info("would run: " + apt.command("update").String())
		}
		args := []string{"install", "-y"}
		if opts.Reinstall {
			args = append(args, "--reinstall")
		}
		args = append(args, step.Packages...)
		e.reporter.Info("would run: " + apt.command(args...).String())
		return nil
	}

	if !opts.SkipUpdate {
		e.logger.Info("refreshing package index")
		if err := resilience.Retry(ctx, e.policy, func() error {
			return apt.Update(ctx)
		}); err != nil {
			return fmt.Errorf("apt-get update: %w", err)
		}
	}

	pkgs := step.Packages
	if !opts.Reinstall {
		pkgs = e.pending(ctx, apt, step.Packages)
		if len(pkgs) == 0 {
			e.reporter.Info("all OS packages already installed")
			return nil
		}
	}

	e.logger.Info("installing OS packages", "count", len(pkgs))
	if err := resilience.Retry(ctx, e.policy, func() error {
		return classifyInstall(apt.Install(ctx, pkgs, opts.Reinstall))
	}); err != nil {
		return fmt.Errorf("apt-get install: %w", err)
	}
	return nil
}

// pending filters out packages dpkg already reports installed,
// preserving order. Installation status is keyed on the package name;
// pins only affect the install argv.
func (e *Executor) pending(ctx context.Context, apt *Apt, pkgs []string) []string {
	out := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		if apt.Installed(ctx, models.ParsePackage(pkg).Name) {
			e.logger.Debug("already installed", "package", pkg)
			continue
		}
		out = append(out, pkg)
	}
	return out
}

// executePython installs from the requirements file when the step has
// one, and from the step's package list otherwise.
func (e *Executor) executePython(ctx context.Context, step Step, opts ExecuteOptions) error {
	pip, err := NewPip(e.runner, e.pipBin)
	if err != nil {
		if opts.DryRun {
			e.reporter.Info("dry-run: pip not found, showing intended commands")
			pip = &Pip{runner: e.runner, bin: "pip"}
		} else {
			return err
		}
	}

	if opts.DryRun {
		if step.FromRequirements() {
			e.reporter.Info("would run: " + pip.command("install", "-r", step.RequirementsFile).String())
		} else {
			e.reporter.Info("would run: " + pip.command(append([]string{"install"}, step.Packages...)...).String())
		}
		return nil
	}

	if step.FromRequirements() {
		e.logger.Info("installing Python packages", "requirements", step.RequirementsFile)
		return resilience.Retry(ctx, e.policy, func() error {
			return classifyInstall(pip.InstallRequirements(ctx, step.RequirementsFile))
		})
	}

	e.logger.Info("installing Python packages", "count", len(step.Packages))
	return resilience.Retry(ctx, e.policy, func() error {
		return classifyInstall(pip.InstallPackages(ctx, step.Packages))
	})
}

// permanentDiagnostics match apt and pip output for packages that do not
// exist. Retrying those just repeats the failure, unlike mirror or lock
// errors.
var permanentDiagnostics = []string{
	"Unable to locate package",
	"has no installation candidate",
	"No matching distribution found",
	"Could not find a version that satisfies",
}

// classifyInstall marks unknown-package failures permanent so the retry
// loop stops after the first attempt. The runner includes the package
// manager's last stderr line in its errors.
func classifyInstall(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, diag := range permanentDiagnostics {
		if strings.Contains(msg, diag) {
			return resilience.Permanent(err)
		}
	}
	return err
}
