package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ocr-dataentry/ocrsetup/internal/config"
	"github.com/ocr-dataentry/ocrsetup/internal/provision"
	"github.com/ocr-dataentry/ocrsetup/internal/ui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the resolved install plan without executing it",
	Long: `Plan resolves the configuration, profile and engine selection, and the
requirements.txt probe into the ordered package lists setup would
install, without touching the host.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

var planFlags struct {
	requirements string
	skipSystem   bool
	skipPython   bool
	profile      string
	engine       string
}

func init() {
	f := planCmd.Flags()
	f.StringVarP(&planFlags.requirements, "requirements", "r", "", "Explicit requirements file for the Python phase")
	f.BoolVar(&planFlags.skipSystem, "skip-system", false, "Skip the OS package phase")
	f.BoolVar(&planFlags.skipPython, "skip-python", false, "Skip the Python package phase")
	f.StringVar(&planFlags.profile, "profile", "", "Installation profile (minimal, full)")
	f.StringVar(&planFlags.engine, "engine", "", "OCR engine selection (tesseract, paddle, both)")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	profile, engine, err := parseSelection(planFlags.profile, planFlags.engine)
	if err != nil {
		return err
	}
	config.ApplySelection(cfg, profile, engine)

	plan, err := provision.BuildPlan(cfg, provision.PlanOptions{
		WorkDir:          workDir,
		RequirementsPath: planFlags.requirements,
		SkipSystem:       planFlags.skipSystem,
		SkipPython:       planFlags.skipPython,
	})
	if err != nil {
		return err
	}
	if len(plan.Steps) == 0 {
		fmt.Fprintln(out, "Nothing to do.")
		return nil
	}

	renderPlan(out, d.Theme, plan)
	return nil
}

// renderPlan prints the plan's steps and package lists.
func renderPlan(w io.Writer, theme *ui.Theme, plan *provision.Plan) {
	for _, step := range plan.Steps {
		fmt.Fprintln(w, theme.Title(step.Description))
		if step.FromRequirements() {
			fmt.Fprintf(w, "  source: %s\n", filepath.Base(step.RequirementsFile))
		}
		for _, pkg := range step.Packages {
			fmt.Fprintf(w, "  - %s\n", pkg)
		}
	}
	fmt.Fprintf(w, "%d package(s) across %d step(s)\n", plan.PackageCount(), len(plan.Steps))
}
