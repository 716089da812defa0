// Package provision builds and executes the install plan: the ordered
// system (apt) and Python (pip) package phases that prepare a host for
// the OCR data-entry workflow.
package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is a single external process invocation.
type Command struct {
	Name string
	Args []string

	// Env holds extra KEY=VALUE pairs appended to the process environment.
	Env []string
}

// String renders the command for logging and dry-run output.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes external commands. Plan execution goes through this
// interface so tests can assert the exact argv without spawning processes.
type Runner interface {
	// Run executes the command, streaming output to the runner's writers.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its combined stdout.
	Output(ctx context.Context, cmd Command) (string, error)

	// LookPath reports the absolute path of an executable, or an error
	// if it is not on PATH.
	LookPath(name string) (string, error)
}

// execRunner is the os/exec backed Runner.
type execRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner that streams command output to the given
// writers.
func NewRunner(stdout, stderr io.Writer) Runner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &execRunner{stdout: stdout, stderr: stderr}
}

func (r *execRunner) Run(ctx context.Context, cmd Command) error {
	var tail stderrTail
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdout = r.stdout
	c.Stderr = io.MultiWriter(r.stderr, &tail)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if err := c.Run(); err != nil {
		if line := tail.lastLine(); line != "" {
			return fmt.Errorf("run %s: %w: %s", cmd.Name, err, line)
		}
		return fmt.Errorf("run %s: %w", cmd.Name, err)
	}
	return nil
}

// stderrTailLimit bounds how much stderr is retained for error messages.
const stderrTailLimit = 512

// stderrTail keeps the end of a stream so a failure can carry the
// package manager's diagnostic line ("E: Unable to locate package ...").
type stderrTail struct {
	buf []byte
}

func (t *stderrTail) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if len(t.buf) > stderrTailLimit {
		t.buf = t.buf[len(t.buf)-stderrTailLimit:]
	}
	return len(p), nil
}

// lastLine returns the final non-blank stderr line.
func (t *stderrTail) lastLine() string {
	s := strings.TrimRight(string(t.buf), "\r\n \t")
	if i := strings.LastIndexAny(s, "\r\n"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

func (r *execRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stderr = r.stderr
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	out, err := c.Output()
	if err != nil {
		return "", fmt.Errorf("run %s: %w", cmd.Name, err)
	}
	return string(out), nil
}

func (r *execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
