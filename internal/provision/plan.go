package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/ocr-dataentry/ocrsetup/internal/config"
	"github.com/ocr-dataentry/ocrsetup/internal/requirements"
	"github.com/ocr-dataentry/ocrsetup/pkg/models"
)

// Phase identifies a plan step's install phase.
type Phase string

const (
	// PhaseSystem installs OS packages via apt-get.
	PhaseSystem Phase = "system"

	// PhasePython installs Python packages via pip.
	PhasePython Phase = "python"
)

// Step is one ordered unit of work in the install plan.
type Step struct {
	Phase       Phase
	Description string

	// Packages is the ordered, de-duplicated package list for the step.
	// For a requirements-file step this is the parsed view of the file.
	Packages []string

	// RequirementsFile is set when the Python step installs from a file
	// instead of the fallback list.
	RequirementsFile string
}

// FromRequirements reports whether the step installs from a requirements file.
func (s Step) FromRequirements() bool {
	return s.RequirementsFile != ""
}

// Plan is the resolved, ordered set of steps for one setup run.
type Plan struct {
	Steps []Step
}

// PackageCount returns the total number of packages across all steps.
func (p *Plan) PackageCount() int {
	n := 0
	for _, s := range p.Steps {
		n += len(s.Packages)
	}
	return n
}

// PlanOptions controls plan construction.
type PlanOptions struct {
	// WorkDir is where the requirements file is probed. Empty means the
	// current working directory.
	WorkDir string

	// RequirementsPath overrides probing with an explicit file path.
	RequirementsPath string

	SkipSystem bool
	SkipPython bool
}

// BuildPlan resolves the configuration into an ordered install plan.
// Plan construction is pure apart from filesystem probing: it never
// executes package managers.
//
// The Python step prefers a requirements file in the working directory;
// only when none exists does the configured fallback list apply, each
// package exactly once, in order.
func BuildPlan(cfg *config.Config, opts PlanOptions) (*Plan, error) {
	plan := &Plan{}

	if !opts.SkipSystem {
		specs := lo.Uniq(append(clone(cfg.System.Packages), cfg.System.ExtraPackages...))
		pkgs := debSpecs(specs)
		if len(pkgs) > 0 {
			plan.Steps = append(plan.Steps, Step{
				Phase:       PhaseSystem,
				Description: "Install OS packages (tesseract, imagemagick, poppler)",
				Packages:    pkgs,
			})
		}
	}

	if !opts.SkipPython {
		step, err := buildPythonStep(cfg, opts)
		if err != nil {
			return nil, err
		}
		plan.Steps = append(plan.Steps, step)
	}

	return plan, nil
}

// buildPythonStep decides between the requirements file and the fallback list.
func buildPythonStep(cfg *config.Config, opts PlanOptions) (Step, error) {
	path := opts.RequirementsPath
	if path == "" {
		workDir := opts.WorkDir
		if workDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return Step{}, fmt.Errorf("determine working directory: %w", err)
			}
			workDir = wd
		}
		candidate := filepath.Join(workDir, cfg.Python.RequirementsFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		} else if !os.IsNotExist(err) {
			return Step{}, fmt.Errorf("probe %s: %w", candidate, err)
		}
	}

	if path != "" {
		reqs, err := requirements.ParseFile(path)
		if err != nil {
			return Step{}, err
		}
		return Step{
			Phase:            PhasePython,
			Description:      fmt.Sprintf("Install Python packages from %s", filepath.Base(path)),
			Packages:         lo.Uniq(requirements.Names(reqs)),
			RequirementsFile: path,
		}, nil
	}

	return Step{
		Phase:       PhasePython,
		Description: "Install Python packages (fallback list)",
		Packages:    pipSpecs(lo.Uniq(clone(cfg.Python.Fallback))),
	}, nil
}

// debSpecs normalizes package specs into apt-get argument form, so
// pinned entries written pip-style ("name==1.2") still work.
func debSpecs(specs []string) []string {
	out := make([]string, len(specs))
	for i, spec := range specs {
		out[i] = models.ParsePackage(spec).DebSpec()
	}
	return out
}

// pipSpecs normalizes package specs into pip argument form.
func pipSpecs(specs []string) []string {
	out := make([]string, len(specs))
	for i, spec := range specs {
		out[i] = models.ParsePackage(spec).PipSpec()
	}
	return out
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
