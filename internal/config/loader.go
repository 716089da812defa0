package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ocr-dataentry/ocrsetup/internal/defs"
)

// Loader reads configuration from the project's YAML config file.
type Loader struct {
	logger         *slog.Logger
	loadedSections map[string]bool
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{logger: slog.Default()}
}

// SetLogger routes load diagnostics through the given logger.
func (l *Loader) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// fileConfig mirrors Config with pointer sections so that absent
// sections can be told apart from present-but-zero ones.
type fileConfig struct {
	System   *SystemConfig   `yaml:"system"`
	Python   *PythonConfig   `yaml:"python"`
	Langdata *LangdataConfig `yaml:"langdata"`
}

// Load reads the config file from the given .ocrsetup directory and
// returns a merged Config with defaults applied for missing sections.
// A missing file returns defaults. An invalid YAML file is skipped with
// a warning and defaults are used.
func (l *Loader) Load(configDir string) (*Config, error) {
	l.loadedSections = make(map[string]bool)
	cfg := NewDefaultConfig()

	path := filepath.Join(filepath.Clean(configDir), defs.ConfigYAML)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		l.logger.Warn("failed to parse config, using defaults", "path", path, "error", ErrInvalidYAML)
		return cfg, nil
	}

	if fc.System != nil {
		mergeSystem(&cfg.System, fc.System)
		l.loadedSections["system"] = true
	}
	if fc.Python != nil {
		mergePython(&cfg.Python, fc.Python)
		l.loadedSections["python"] = true
	}
	if fc.Langdata != nil {
		mergeLangdata(&cfg.Langdata, fc.Langdata)
		l.loadedSections["langdata"] = true
	}

	return cfg, nil
}

// LoadedSections returns a copy of the map indicating which sections
// were present in the YAML file.
func (l *Loader) LoadedSections() map[string]bool {
	result := make(map[string]bool, len(l.loadedSections))
	for k, v := range l.loadedSections {
		result[k] = v
	}
	return result
}

// mergeSystem overlays file values onto defaults, keeping defaults for
// zero-valued fields.
func mergeSystem(dst, src *SystemConfig) {
	if src.PackageManager != "" {
		dst.PackageManager = src.PackageManager
	}
	if src.Packages != nil {
		dst.Packages = src.Packages
	}
	if src.ExtraPackages != nil {
		dst.ExtraPackages = src.ExtraPackages
	}
	if src.Profile != "" {
		dst.Profile = src.Profile
	}
	if src.Engine != "" {
		dst.Engine = src.Engine
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	dst.NoColor = src.NoColor || dst.NoColor
	dst.NonInteractive = src.NonInteractive || dst.NonInteractive
}

func mergePython(dst, src *PythonConfig) {
	if src.Pip != "" {
		dst.Pip = src.Pip
	}
	if src.RequirementsFile != "" {
		dst.RequirementsFile = src.RequirementsFile
	}
	if src.Fallback != nil {
		dst.Fallback = src.Fallback
	}
}

func mergeLangdata(dst, src *LangdataConfig) {
	if src.Languages != nil {
		dst.Languages = src.Languages
	}
	if src.TessdataDir != "" {
		dst.TessdataDir = src.TessdataDir
	}
	if src.MirrorURL != "" {
		dst.MirrorURL = src.MirrorURL
	}
}
