package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ocr-dataentry/ocrsetup/internal/langdata"
)

var langdataCmd = &cobra.Command{
	Use:   "langdata [languages...]",
	Short: "Download tesseract language data",
	Long: `Langdata downloads .traineddata models for the given tesseract
language codes and installs them into the tessdata directory. Without
arguments, the configured languages are fetched. Downloads are cached,
so reruns only copy files.`,
	RunE: runLangdata,
}

var langdataFlags struct {
	dest      string
	mirror    string
	cacheDir  string
	fetchOnly bool
}

func init() {
	f := langdataCmd.Flags()
	f.StringVar(&langdataFlags.dest, "dest", "", "Tessdata directory to install into (default from config)")
	f.StringVar(&langdataFlags.mirror, "mirror", "", "Base URL for traineddata downloads (default from config)")
	f.StringVar(&langdataFlags.cacheDir, "cache-dir", "", "Override the download cache directory")
	f.BoolVar(&langdataFlags.fetchOnly, "fetch-only", false, "Download into the cache without installing")

	rootCmd.AddCommand(langdataCmd)
}

func runLangdata(cmd *cobra.Command, args []string) error {
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

	langs := args
	if len(langs) == 0 {
		langs = cfg.Langdata.Languages
	}
	if len(langs) == 0 {
		fmt.Fprintln(out, "No languages configured; nothing to do.")
		return nil
	}

	mirror := langdataFlags.mirror
	if mirror == "" {
		mirror = cfg.Langdata.MirrorURL
	}
	dest := langdataFlags.dest
	if dest == "" {
		dest = cfg.Langdata.TessdataDir
	}

	fetcher := langdata.NewFetcher(mirror, d.Logger)
	if langdataFlags.cacheDir != "" {
		fetcher.SetCacheDir(langdataFlags.cacheDir)
	}

	for _, lang := range langs {
		if langdataFlags.fetchOnly {
			path, size, err := fetcher.Fetch(cmd.Context(), lang)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "cached %s (%s) at %s\n", lang, humanize.Bytes(uint64(size)), path)
			continue
		}

		path, size, err := fetcher.Install(cmd.Context(), lang, dest)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "installed %s (%s) at %s\n", lang, humanize.Bytes(uint64(size)), path)
	}
	return nil
}
