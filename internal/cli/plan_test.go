package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ocr-dataentry/ocrsetup/internal/defs"
)

func TestPlanCommandFlags(t *testing.T) {
	for _, name := range []string{"requirements", "skip-system", "skip-python", "profile", "engine"} {
		if planCmd.Flags().Lookup(name) == nil {
			t.Errorf("plan flag --%s not registered", name)
		}
	}
}

func TestPlanShowsFallbackList(t *testing.T) {
	isolateWorkDir(t)
	fr := &fakeRunner{}
	SetDeps(newTestDeps(fr))

	out, err := executeCommand(t, "plan")
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}

	if !strings.Contains(out, "- tesseract-ocr\n") {
		t.Errorf("plan should list OS packages:\n%s", out)
	}
	if !strings.Contains(out, "- streamlit\n") || !strings.Contains(out, "fallback") {
		t.Errorf("plan should show the Python fallback list:\n%s", out)
	}
	// Fallback order is preserved: streamlit leads the curated list.
	if strings.Index(out, "- streamlit") > strings.Index(out, "- paddleocr") {
		t.Errorf("fallback order not preserved:\n%s", out)
	}
	if !strings.Contains(out, "across 2 step(s)") {
		t.Errorf("plan summary missing:\n%s", out)
	}
	if ran := fr.ran(); len(ran) != 0 {
		t.Errorf("plan must never execute commands, ran: %v", ran)
	}
}

func TestPlanPrefersRequirementsFile(t *testing.T) {
	dir := isolateWorkDir(t)
	if err := os.WriteFile(filepath.Join(dir, defs.RequirementsTxt), []byte("flask==2.0\ndjango\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetDeps(newTestDeps(&fakeRunner{}))

	out, err := executeCommand(t, "plan", "--skip-system")
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}

	if !strings.Contains(out, "source: "+defs.RequirementsTxt) {
		t.Errorf("plan should name the requirements source:\n%s", out)
	}
	if !strings.Contains(out, "- flask") || !strings.Contains(out, "- django") {
		t.Errorf("plan should list parsed requirements:\n%s", out)
	}
	if strings.Contains(out, "streamlit") {
		t.Errorf("fallback must not apply when requirements.txt exists:\n%s", out)
	}
}

func TestPlanEngineSelectionPrunesPackages(t *testing.T) {
	isolateWorkDir(t)
	SetDeps(newTestDeps(&fakeRunner{}))

	out, err := executeCommand(t, "plan", "--engine", "tesseract")
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}
	if strings.Contains(out, "paddleocr") || strings.Contains(out, "paddlepaddle") {
		t.Errorf("tesseract-only plan should not include paddle packages:\n%s", out)
	}
	if !strings.Contains(out, "- pytesseract") {
		t.Errorf("tesseract-only plan should keep pytesseract:\n%s", out)
	}
}

func TestPlanMinimalProfileDropsAppStack(t *testing.T) {
	isolateWorkDir(t)
	SetDeps(newTestDeps(&fakeRunner{}))

	out, err := executeCommand(t, "plan", "--profile", "minimal")
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}
	if strings.Contains(out, "streamlit") || strings.Contains(out, "groq") {
		t.Errorf("minimal profile should drop the app stack:\n%s", out)
	}
	if !strings.Contains(out, "- pytesseract") || !strings.Contains(out, "- tesseract-ocr\n") {
		t.Errorf("minimal profile should keep the OCR engines:\n%s", out)
	}
}
