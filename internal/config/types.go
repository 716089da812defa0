package config

import (
	"slices"

	"github.com/ocr-dataentry/ocrsetup/pkg/models"
)

// Config is the root configuration aggregate containing all sections.
type Config struct {
	System   SystemConfig   `yaml:"system"`
	Python   PythonConfig   `yaml:"python"`
	Langdata LangdataConfig `yaml:"langdata"`
}

// SystemConfig configures the OS package phase and general behavior.
type SystemConfig struct {
	// PackageManager overrides auto-detection; only "apt-get" is supported.
	PackageManager string `yaml:"package_manager"`

	// Packages is the ordered list of OS packages to install.
	Packages []string `yaml:"packages"`

	// ExtraPackages are appended after Packages; handy for site additions
	// without replacing the curated default list.
	ExtraPackages []string `yaml:"extra_packages"`

	Profile        models.Profile   `yaml:"profile"`
	Engine         models.OCREngine `yaml:"engine"`
	LogLevel       string           `yaml:"log_level"`
	NoColor        bool             `yaml:"no_color"`
	NonInteractive bool             `yaml:"non_interactive"`
}

// PythonConfig configures the Python package phase.
type PythonConfig struct {
	// Pip overrides pip binary detection (e.g. "pip3").
	Pip string `yaml:"pip"`

	// RequirementsFile is the file probed in the working directory.
	RequirementsFile string `yaml:"requirements_file"`

	// Fallback is the ordered package list used when no requirements
	// file is present.
	Fallback []string `yaml:"fallback"`
}

// LangdataConfig configures tesseract language data downloads.
type LangdataConfig struct {
	// Languages are tesseract language codes (e.g. "hin", "eng").
	Languages []string `yaml:"languages"`

	// TessdataDir is where .traineddata files are installed.
	TessdataDir string `yaml:"tessdata_dir"`

	// MirrorURL is the base URL for traineddata downloads.
	MirrorURL string `yaml:"mirror_url"`
}

// sectionNames lists all valid configuration section names.
var sectionNames = []string{"system", "python", "langdata"}

// IsValidSectionName checks if the given name is a valid section name.
func IsValidSectionName(name string) bool {
	return slices.Contains(sectionNames, name)
}

// ValidSectionNames returns all valid section names.
func ValidSectionNames() []string {
	result := make([]string, len(sectionNames))
	copy(result, sectionNames)
	return result
}
