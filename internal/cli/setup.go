package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ocr-dataentry/ocrsetup/internal/cli/wizard"
	"github.com/ocr-dataentry/ocrsetup/internal/config"
	"github.com/ocr-dataentry/ocrsetup/internal/provision"
	"github.com/ocr-dataentry/ocrsetup/internal/ui"
	"github.com/ocr-dataentry/ocrsetup/pkg/models"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install the OS and Python packages for the OCR workflow",
	Long: `Setup runs the two install phases in order: OS packages via apt-get,
then Python packages via pip. A requirements.txt in the working
directory takes precedence over the configured fallback list for the
Python phase. Reruns skip OS packages dpkg already reports installed.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

var setupFlags struct {
	requirements   string
	skipSystem     bool
	skipPython     bool
	skipUpdate     bool
	dryRun         bool
	yes            bool
	nonInteractive bool
	reinstall      bool
	profile        string
	engine         string
}

func init() {
	f := setupCmd.Flags()
	f.StringVarP(&setupFlags.requirements, "requirements", "r", "", "Explicit requirements file for the Python phase")
	f.BoolVar(&setupFlags.skipSystem, "skip-system", false, "Skip the OS package phase")
	f.BoolVar(&setupFlags.skipPython, "skip-python", false, "Skip the Python package phase")
	f.BoolVar(&setupFlags.skipUpdate, "skip-update", false, "Skip the apt-get index refresh")
	f.BoolVar(&setupFlags.dryRun, "dry-run", false, "Show the commands that would run without executing them")
	f.BoolVarP(&setupFlags.yes, "yes", "y", false, "Skip the interactive wizard and confirmation")
	f.BoolVar(&setupFlags.nonInteractive, "non-interactive", false, "Never prompt; use configured defaults")
	f.BoolVar(&setupFlags.reinstall, "reinstall", false, "Reinstall OS packages even when already installed")
	f.StringVar(&setupFlags.profile, "profile", "", "Installation profile (minimal, full)")
	f.StringVar(&setupFlags.engine, "engine", "", "OCR engine selection (tesseract, paddle, both)")

	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	d := GetDeps()
	if d == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	out := cmd.OutOrStdout()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := d.EnsureConfig(workDir)
	if err != nil {
		return err
	}

	profile, engine, err := parseSelection(setupFlags.profile, setupFlags.engine)
	if err != nil {
		return err
	}

	if promptWanted(d, cfg) {
		seedProfile := profile
		if seedProfile == "" {
			seedProfile = cfg.System.Profile
		}
		seedEngine := engine
		if seedEngine == "" {
			seedEngine = cfg.System.Engine
		}

		result, err := wizard.RunWithDefaults(seedProfile, seedEngine, cfg.Langdata.Languages)
		if errors.Is(err, wizard.ErrCancelled) {
			fmt.Fprintln(out, "Setup aborted.")
			return nil
		}
		if err != nil {
			return err
		}
		if !result.Confirmed {
			fmt.Fprintln(out, "Setup aborted.")
			return nil
		}

		profile, engine = result.Profile, result.Engine
		if len(result.Languages) > 0 {
			cfg.Langdata.Languages = result.Languages
		}
	}

	config.ApplySelection(cfg, profile, engine)

	plan, err := provision.BuildPlan(cfg, provision.PlanOptions{
		WorkDir:          workDir,
		RequirementsPath: setupFlags.requirements,
		SkipSystem:       setupFlags.skipSystem,
		SkipPython:       setupFlags.skipPython,
	})
	if err != nil {
		return err
	}
	if len(plan.Steps) == 0 {
		fmt.Fprintln(out, "Nothing to do.")
		return nil
	}

	renderPlan(out, d.Theme, plan)

	reporter := &planReporter{out: out}
	if !setupFlags.dryRun {
		reporter.progress = d.Progress
	}

	executor := provision.NewExecutor(d.Runner, cfg.Python.Pip, reporter, d.Logger)
	if err := executor.Execute(cmd.Context(), plan, provision.ExecuteOptions{
		DryRun:     setupFlags.dryRun,
		Reinstall:  setupFlags.reinstall,
		SkipUpdate: setupFlags.skipUpdate,
	}); err != nil {
		return err
	}

	if setupFlags.dryRun {
		fmt.Fprintln(out, "Dry run complete; nothing was installed.")
		return nil
	}
	fmt.Fprintln(out, "Setup complete. Run `ocrsetup doctor` to verify the host.")
	return nil
}

// promptWanted reports whether the interactive wizard should run.
// Any explicit opt-out, a configured non-interactive mode, or a missing
// TTY suppresses it.
func promptWanted(d *Dependencies, cfg *config.Config) bool {
	if setupFlags.yes || setupFlags.nonInteractive || setupFlags.dryRun {
		return false
	}
	if cfg.System.NonInteractive {
		return false
	}
	return !d.Headless.IsHeadless()
}

// parseSelection validates the profile and engine flag values. Empty
// values mean "keep the configured selection".
func parseSelection(profileFlag, engineFlag string) (models.Profile, models.OCREngine, error) {
	profile := models.Profile(profileFlag)
	if profileFlag != "" && !profile.IsValid() {
		return "", "", fmt.Errorf("invalid profile %q (valid: minimal, full)", profileFlag)
	}
	engine := models.OCREngine(engineFlag)
	if engineFlag != "" && !engine.IsValid() {
		return "", "", fmt.Errorf("invalid engine %q (valid: tesseract, paddle, both)", engineFlag)
	}
	return profile, engine, nil
}

// planReporter adapts executor progress events to the terminal. With a
// Progress attached it drives a progress bar; otherwise (dry runs) it
// writes plain step lines.
type planReporter struct {
	out      io.Writer
	progress ui.Progress

	bar   ui.ProgressBar
	done  int
	total int
}

func (r *planReporter) StepStart(step provision.Step, index, total int) {
	if r.progress == nil {
		fmt.Fprintf(r.out, "==> [%d/%d] %s\n", index, total, step.Description)
		return
	}
	if r.bar == nil {
		r.total = total
		r.bar = r.progress.Start(step.Description, total)
		return
	}
	r.bar.SetTitle(step.Description)
}

func (r *planReporter) StepDone(step provision.Step) {
	if r.bar == nil {
		return
	}
	r.done++
	r.bar.Increment(1)
	if r.done >= r.total {
		r.bar.Done()
	}
}

func (r *planReporter) Info(msg string) {
	fmt.Fprintln(r.out, msg)
}
