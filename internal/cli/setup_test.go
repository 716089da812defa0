package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ocr-dataentry/ocrsetup/internal/defs"
)

func TestSetupCommandFlags(t *testing.T) {
	for _, name := range []string{
		"requirements", "skip-system", "skip-python", "skip-update",
		"dry-run", "yes", "non-interactive", "reinstall", "profile", "engine",
	} {
		if setupCmd.Flags().Lookup(name) == nil {
			t.Errorf("setup flag --%s not registered", name)
		}
	}
}

func TestSetupDryRunExecutesNothing(t *testing.T) {
	isolateWorkDir(t)
	fr := &fakeRunner{available: []string{defs.AptGet, defs.DpkgQuery, defs.Pip3}}
	SetDeps(newTestDeps(fr))

	out, err := executeCommand(t, "setup", "--dry-run", "--non-interactive")
	if err != nil {
		t.Fatalf("setup --dry-run: %v\n%s", err, out)
	}

	if !strings.Contains(out, "would run:") || !strings.Contains(out, "apt-get update") {
		t.Errorf("dry run should print the apt update command:\n%s", out)
	}
	if !strings.Contains(out, "install -y tesseract-ocr") {
		t.Errorf("dry run should print the apt install command:\n%s", out)
	}
	if !strings.Contains(out, "pip3 install") || !strings.Contains(out, "streamlit") {
		t.Errorf("dry run should print the pip fallback install:\n%s", out)
	}
	if !strings.Contains(out, "Dry run complete") {
		t.Errorf("missing dry run footer:\n%s", out)
	}

	if ran := fr.ran(); len(ran) != 0 {
		t.Errorf("dry run must not execute commands, ran: %v", ran)
	}
}

func TestSetupDryRunPrefersRequirementsFile(t *testing.T) {
	dir := isolateWorkDir(t)
	content := "flask==2.0.1\ndjango\n"
	if err := os.WriteFile(filepath.Join(dir, defs.RequirementsTxt), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	fr := &fakeRunner{available: []string{defs.AptGet, defs.DpkgQuery, defs.Pip3}}
	SetDeps(newTestDeps(fr))

	out, err := executeCommand(t, "setup", "--dry-run", "--non-interactive", "--skip-system")
	if err != nil {
		t.Fatalf("setup: %v\n%s", err, out)
	}

	if !strings.Contains(out, "install -r") || !strings.Contains(out, defs.RequirementsTxt) {
		t.Errorf("requirements file should drive the pip command:\n%s", out)
	}
	if !strings.Contains(out, "- flask") || !strings.Contains(out, "- django") {
		t.Errorf("plan should list the parsed requirements:\n%s", out)
	}
	if strings.Contains(out, "streamlit") {
		t.Errorf("fallback list must not appear when requirements.txt exists:\n%s", out)
	}
}

func TestSetupSkipBothPhases(t *testing.T) {
	isolateWorkDir(t)
	fr := &fakeRunner{}
	SetDeps(newTestDeps(fr))

	out, err := executeCommand(t, "setup", "--non-interactive", "--skip-system", "--skip-python")
	if err != nil {
		t.Fatalf("setup: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Nothing to do.") {
		t.Errorf("skipping both phases should be a no-op:\n%s", out)
	}
	if ran := fr.ran(); len(ran) != 0 {
		t.Errorf("no-op setup ran commands: %v", ran)
	}
}

func TestSetupRejectsInvalidProfile(t *testing.T) {
	isolateWorkDir(t)
	SetDeps(newTestDeps(&fakeRunner{}))

	_, err := executeCommand(t, "setup", "--non-interactive", "--profile", "mega")
	if err == nil || !strings.Contains(err.Error(), "invalid profile") {
		t.Errorf("err = %v, want invalid profile error", err)
	}
}

func TestSetupRejectsInvalidEngine(t *testing.T) {
	isolateWorkDir(t)
	SetDeps(newTestDeps(&fakeRunner{}))

	_, err := executeCommand(t, "setup", "--non-interactive", "--engine", "easyocr")
	if err == nil || !strings.Contains(err.Error(), "invalid engine") {
		t.Errorf("err = %v, want invalid engine error", err)
	}
}

func TestSetupExecutesBothPhases(t *testing.T) {
	isolateWorkDir(t)
	fr := &fakeRunner{available: []string{defs.AptGet, defs.DpkgQuery, defs.Pip3}}
	SetDeps(newTestDeps(fr))

	out, err := executeCommand(t, "setup", "--non-interactive", "--skip-update")
	if err != nil {
		t.Fatalf("setup: %v\n%s", err, out)
	}

	ran := fr.ran()
	var install, pip bool
	for _, c := range ran {
		if strings.Contains(c, "apt-get install -y tesseract-ocr") {
			install = true
		}
		if strings.Contains(c, "pip3 install") {
			pip = true
		}
	}
	if !install {
		t.Errorf("system phase did not run apt install: %v", ran)
	}
	if !pip {
		t.Errorf("python phase did not run pip install: %v", ran)
	}
	if !strings.Contains(out, "Setup complete") {
		t.Errorf("missing completion message:\n%s", out)
	}
}
