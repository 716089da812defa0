package provision

import (
	"context"
	"fmt"

	"github.com/ocr-dataentry/ocrsetup/internal/defs"
)

// Pip drives the Python package installer.
type Pip struct {
	runner Runner

	// bin is the pip executable, or empty when falling back to
	// "python3 -m pip".
	bin    string
	python string
}

// NewPip creates a Pip backend. An explicit binary from configuration
// wins; otherwise pip3, then pip, then "python3 -m pip" are tried.
func NewPip(runner Runner, configured string) (*Pip, error) {
	p := &Pip{runner: runner}

	if configured != "" {
		if _, err := runner.LookPath(configured); err != nil {
			return nil, fmt.Errorf("configured pip %q not found: %w", configured, err)
		}
		p.bin = configured
		return p, nil
	}

	for _, candidate := range []string{defs.Pip3, "pip"} {
		if _, err := runner.LookPath(candidate); err == nil {
			p.bin = candidate
			return p, nil
		}
	}

	if _, err := runner.LookPath(defs.Python3); err == nil {
		p.python = defs.Python3
		return p, nil
	}

	return nil, fmt.Errorf("no pip or python3 found; install python3-pip first")
}

// command builds a pip invocation for the detected binary.
func (p *Pip) command(args ...string) Command {
	if p.bin != "" {
		return Command{Name: p.bin, Args: args}
	}
	return Command{Name: p.python, Args: append([]string{"-m", "pip"}, args...)}
}

// InstallRequirements installs from a pinned requirements file. The file
// is handed to pip unmodified so pip's own syntax support applies.
func (p *Pip) InstallRequirements(ctx context.Context, path string) error {
	return p.runner.Run(ctx, p.command("install", "-r", path))
}

// InstallPackages installs the given packages in one invocation,
// preserving order. pip skips requirements that are already satisfied.
func (p *Pip) InstallPackages(ctx context.Context, pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	return p.runner.Run(ctx, p.command(append([]string{"install"}, pkgs...)...))
}
