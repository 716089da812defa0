package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ocr-dataentry/ocrsetup/internal/doctor"
	"github.com/ocr-dataentry/ocrsetup/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the host is ready for the OCR workflow",
	Long: `Doctor verifies the provisioned host: required binaries on PATH, the
tesseract version, and language data for each configured language.
It exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorFlags struct {
	explain bool
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFlags.explain, "explain", false, "Show remediation steps for failed checks")

	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
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

	doc := doctor.New(doctor.DefaultChecks(cfg, d.Runner)...)
	results := doc.RunAll(cmd.Context())

	fmt.Fprintln(out, d.Theme.Title("Environment checks"))
	for _, r := range results {
		status := r.Status.String()
		badge := d.Theme.StatusStyle(status).Render(fmt.Sprintf("[%s]", status))
		line := fmt.Sprintf("%s %s", badge, r.Name)
		if r.Detail != "" {
			line += " - " + r.Detail
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, doctor.Summarize(results))

	if doctorFlags.explain {
		md := doctor.RemediationMarkdown(results)
		fmt.Fprint(out, ui.RenderMarkdown(d.Theme, md))
	}

	if !doctor.Healthy(results) {
		return fmt.Errorf("doctor: %s", doctor.Summarize(results))
	}
	return nil
}
