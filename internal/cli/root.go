package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ocr-dataentry/ocrsetup/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "ocrsetup",
	Short: "Provision a host for the Hindi/English OCR data-entry workflow",
	Long: `ocrsetup prepares a Debian/Ubuntu host for the OCR data-entry workflow.

It installs the OS toolchain (tesseract, ImageMagick, poppler) via
apt-get, the Python OCR stack via pip, and tesseract language data.
When a requirements.txt exists in the working directory it is used for
the Python phase; otherwise a curated fallback list applies.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Persistent flags shared by all commands.
var (
	flagNoColor  bool
	flagLogLevel string
)

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("ocrsetup %s\n", version.GetVersion()))

	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		applyGlobalFlags()
	}
}
