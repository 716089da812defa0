package config

import (
	"github.com/ocr-dataentry/ocrsetup/internal/defs"
	"github.com/ocr-dataentry/ocrsetup/pkg/models"
)

// Default value constants to avoid magic strings.
const (
	DefaultLogLevel = "info"

	// DefaultTessdataDir is the Debian/Ubuntu tesseract 5.x data directory.
	DefaultTessdataDir = "/usr/share/tesseract-ocr/5/tessdata"

	// DefaultMirrorURL serves the small/fast traineddata models.
	DefaultMirrorURL = "https://github.com/tesseract-ocr/tessdata_fast/raw/main"
)

// defaultSystemPackages is the ordered OS package list. The workflow does
// Hindi+English OCR, so both tesseract language packs are included, and
// libgl1/libglib2.0-0 cover the opencv-python runtime.
var defaultSystemPackages = []string{
	"tesseract-ocr",
	"tesseract-ocr-hin",
	"tesseract-ocr-eng",
	"imagemagick",
	"poppler-utils",
	"libgl1",
	"libglib2.0-0",
	"python3",
	"python3-pip",
}

// defaultPythonFallback is the ordered Python package list used when the
// working directory has no requirements file. It mirrors the imports of
// the data-entry app: Streamlit UI, PaddleOCR and pytesseract engines,
// OpenCV preprocessing, and the Groq extraction client.
var defaultPythonFallback = []string{
	"streamlit",
	"paddleocr",
	"paddlepaddle",
	"pytesseract",
	"opencv-python",
	"pillow",
	"numpy",
	"python-dotenv",
	"groq",
	"requests",
	"graphviz",
}

// DefaultLanguages are the tesseract language codes the workflow needs.
var DefaultLanguages = []string{"hin", "eng"}

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		System:   NewDefaultSystemConfig(),
		Python:   NewDefaultPythonConfig(),
		Langdata: NewDefaultLangdataConfig(),
	}
}

// NewDefaultSystemConfig returns a SystemConfig with default values.
func NewDefaultSystemConfig() SystemConfig {
	return SystemConfig{
		PackageManager: defs.AptGet,
		Packages:       clone(defaultSystemPackages),
		Profile:        models.ProfileFull,
		Engine:         models.EngineBoth,
		LogLevel:       DefaultLogLevel,
	}
}

// NewDefaultPythonConfig returns a PythonConfig with default values.
func NewDefaultPythonConfig() PythonConfig {
	return PythonConfig{
		RequirementsFile: defs.RequirementsTxt,
		Fallback:         clone(defaultPythonFallback),
	}
}

// NewDefaultLangdataConfig returns a LangdataConfig with default values.
func NewDefaultLangdataConfig() LangdataConfig {
	return LangdataConfig{
		Languages:   clone(DefaultLanguages),
		TessdataDir: DefaultTessdataDir,
		MirrorURL:   DefaultMirrorURL,
	}
}

// ApplySelection narrows the default package lists to the given profile
// and engine. It only prunes entries from the curated defaults; explicit
// user-provided lists are never touched by selection.
func ApplySelection(cfg *Config, profile models.Profile, engine models.OCREngine) {
	if profile != "" {
		cfg.System.Profile = profile
	}
	if engine != "" {
		cfg.System.Engine = engine
	}

	drop := map[string]bool{}
	switch cfg.System.Engine {
	case models.EngineTesseract:
		drop["paddleocr"] = true
		drop["paddlepaddle"] = true
	case models.EnginePaddle:
		drop["pytesseract"] = true
		drop["tesseract-ocr"] = true
		drop["tesseract-ocr-hin"] = true
		drop["tesseract-ocr-eng"] = true
	}
	if cfg.System.Profile == models.ProfileMinimal {
		drop["streamlit"] = true
		drop["python-dotenv"] = true
		drop["groq"] = true
		drop["requests"] = true
		drop["graphviz"] = true
	}

	cfg.System.Packages = without(cfg.System.Packages, drop)
	cfg.Python.Fallback = without(cfg.Python.Fallback, drop)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func without(s []string, drop map[string]bool) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if !drop[v] {
			out = append(out, v)
		}
	}
	return out
}
