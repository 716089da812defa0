// Package doctor verifies that a host is ready for the OCR data-entry
// workflow: required binaries on PATH, minimum tool versions, and
// tesseract language data for the configured languages.
package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/ocr-dataentry/ocrsetup/internal/config"
	"github.com/ocr-dataentry/ocrsetup/internal/defs"
	"github.com/ocr-dataentry/ocrsetup/internal/provision"
)

// Status classifies a check result.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// String returns the display form of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "warn"
	default:
		return "fail"
	}
}

// Result is the outcome of a single check.
type Result struct {
	Name   string
	Status Status
	Detail string

	// Remedy is a short human instruction for fixing a warn/fail result.
	Remedy string
}

// Check is a single environment verification.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Doctor runs a set of checks in order.
type Doctor struct {
	checks []Check
}

// New creates a Doctor with the given checks.
func New(checks ...Check) *Doctor {
	return &Doctor{checks: checks}
}

// RunAll executes every check and returns results in check order.
func (d *Doctor) RunAll(ctx context.Context) []Result {
	results := make([]Result, 0, len(d.checks))
	for _, c := range d.checks {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{
				Name:   c.Name(),
				Status: StatusFail,
				Detail: err.Error(),
			})
			continue
		}
		results = append(results, c.Run(ctx))
	}
	return results
}

// Healthy reports whether no result failed. Warnings do not count as
// unhealthy.
func Healthy(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return false
		}
	}
	return true
}

// DefaultChecks builds the standard check set for the given config.
func DefaultChecks(cfg *config.Config, runner provision.Runner) []Check {
	checks := []Check{
		&BinaryCheck{
			Binary: defs.Python3,
			Runner: runner,
			Remedy: "Install python3: sudo apt-get install -y python3 python3-pip",
		},
		&BinaryCheck{
			Binary: defs.Tesseract,
			Runner: runner,
			Remedy: "Install tesseract: sudo apt-get install -y tesseract-ocr",
		},
		&VersionCheck{
			Binary:  defs.Tesseract,
			Args:    []string{"--version"},
			Minimum: "4.0.0",
			Runner:  runner,
			Remedy:  "Upgrade tesseract; version 4+ ships the LSTM engine the workflow relies on",
		},
		&BinaryCheck{
			Binary:   defs.Magick,
			Fallback: defs.Convert,
			Runner:   runner,
			Remedy:   "Install ImageMagick: sudo apt-get install -y imagemagick",
		},
		&BinaryCheck{
			Binary: defs.PdfToText,
			Runner: runner,
			Remedy: "Install poppler: sudo apt-get install -y poppler-utils",
		},
	}
	for _, lang := range cfg.Langdata.Languages {
		checks = append(checks, &TessdataCheck{
			Dir:  cfg.Langdata.TessdataDir,
			Lang: lang,
		})
	}
	return checks
}

// BinaryCheck verifies that an executable is on PATH. When Fallback is
// set, its presence also satisfies the check (magick vs. convert).
type BinaryCheck struct {
	Binary   string
	Fallback string
	Runner   provision.Runner
	Remedy   string
}

func (c *BinaryCheck) Name() string {
	return c.Binary + " on PATH"
}

func (c *BinaryCheck) Run(_ context.Context) Result {
	if path, err := c.Runner.LookPath(c.Binary); err == nil {
		return Result{Name: c.Name(), Status: StatusOK, Detail: path}
	}
	if c.Fallback != "" {
		if path, err := c.Runner.LookPath(c.Fallback); err == nil {
			return Result{
				Name:   c.Name(),
				Status: StatusOK,
				Detail: fmt.Sprintf("%s (via %s)", path, c.Fallback),
			}
		}
	}
	return Result{
		Name:   c.Name(),
		Status: StatusFail,
		Detail: "not found",
		Remedy: c.Remedy,
	}
}

// versionPattern extracts the first dotted version number from tool output.
var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)*)`)

// VersionCheck runs a binary's version command and compares the reported
// version against a minimum constraint.
type VersionCheck struct {
	Binary  string
	Args    []string
	Minimum string
	Runner  provision.Runner
	Remedy  string
}

func (c *VersionCheck) Name() string {
	return c.Binary + " version"
}

func (c *VersionCheck) Run(ctx context.Context) Result {
	if _, err := c.Runner.LookPath(c.Binary); err != nil {
		return Result{Name: c.Name(), Status: StatusFail, Detail: "not found", Remedy: c.Remedy}
	}

	out, err := c.Runner.Output(ctx, provision.Command{Name: c.Binary, Args: c.Args})
	if err != nil {
		return Result{Name: c.Name(), Status: StatusWarn, Detail: "version command failed: " + err.Error(), Remedy: c.Remedy}
	}

	m := versionPattern.FindStringSubmatch(out)
	if m == nil {
		return Result{Name: c.Name(), Status: StatusWarn, Detail: "could not parse version output"}
	}

	got, err := goversion.NewVersion(m[1])
	if err != nil {
		return Result{Name: c.Name(), Status: StatusWarn, Detail: "unparseable version " + m[1]}
	}
	required, err := goversion.NewVersion(c.Minimum)
	if err != nil {
		return Result{Name: c.Name(), Status: StatusWarn, Detail: "bad minimum constraint " + c.Minimum}
	}

	if got.LessThan(required) {
		return Result{
			Name:   c.Name(),
			Status: StatusWarn,
			Detail: fmt.Sprintf("%s < required %s", got, required),
			Remedy: c.Remedy,
		}
	}
	return Result{Name: c.Name(), Status: StatusOK, Detail: got.String()}
}

// TessdataCheck verifies that a language's traineddata file exists.
// TESSDATA_PREFIX overrides the configured directory, matching
// tesseract's own lookup.
type TessdataCheck struct {
	Dir  string
	Lang string
}

func (c *TessdataCheck) Name() string {
	return "tessdata: " + c.Lang
}

func (c *TessdataCheck) Run(_ context.Context) Result {
	dir := c.Dir
	if env := os.Getenv("TESSDATA_PREFIX"); env != "" {
		dir = env
	}
	path := filepath.Join(dir, c.Lang+defs.TraineddataExt)
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return Result{
			Name:   c.Name(),
			Status: StatusFail,
			Detail: path + " missing",
			Remedy: fmt.Sprintf("Run: ocrsetup langdata %s", c.Lang),
		}
	}
	return Result{Name: c.Name(), Status: StatusOK, Detail: path}
}

// Summarize renders a one-line summary of the results.
func Summarize(results []Result) string {
	ok, warn, fail := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case StatusOK:
			ok++
		case StatusWarn:
			warn++
		default:
			fail++
		}
	}
	parts := []string{fmt.Sprintf("%d ok", ok)}
	if warn > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warn))
	}
	if fail > 0 {
		parts = append(parts, fmt.Sprintf("%d failure(s)", fail))
	}
	return strings.Join(parts, ", ")
}

// RemediationMarkdown renders the remedies for non-ok results as a
// markdown document, for rendering with the UI's markdown renderer.
func RemediationMarkdown(results []Result) string {
	var b strings.Builder
	b.WriteString("# Remediation\n\n")
	found := false
	for _, r := range results {
		if r.Status == StatusOK || r.Remedy == "" {
			continue
		}
		found = true
		fmt.Fprintf(&b, "## %s\n\n%s\n\n%s\n\n", r.Name, r.Detail, r.Remedy)
	}
	if !found {
		b.WriteString("Everything looks good; nothing to fix.\n")
	}
	return b.String()
}
