package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/ocr-dataentry/ocrsetup/internal/defs"
	"github.com/ocr-dataentry/ocrsetup/pkg/models"
)

// langCodePattern matches tesseract language codes such as "hin", "eng",
// or script variants like "script/Devanagari".
var langCodePattern = regexp.MustCompile(`^(script/)?[A-Za-z_]{3,}$`)

// validLogLevels are the accepted log_level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for correctness. The loadedSections
// map indicates which sections were present in the YAML file; sections
// running on pure defaults are always valid by construction, but user
// supplied values are checked regardless of source.
func Validate(cfg *Config, loadedSections map[string]bool) error {
	var errs []ValidationError

	errs = append(errs, validateSystem(&cfg.System)...)
	errs = append(errs, validatePython(&cfg.Python, loadedSections["python"])...)
	errs = append(errs, validateLangdata(&cfg.Langdata)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateSystem(sc *SystemConfig) []ValidationError {
	var errs []ValidationError

	if sc.PackageManager != "" && sc.PackageManager != defs.AptGet && sc.PackageManager != "apt" {
		errs = append(errs, ValidationError{
			Field:   "system.package_manager",
			Message: "only the Debian/Ubuntu apt family is supported",
			Value:   sc.PackageManager,
			Wrapped: ErrInvalidPackageManager,
		})
	}

	if sc.Profile != "" && !sc.Profile.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "system.profile",
			Message: fmt.Sprintf("must be one of: %s", joinProfiles()),
			Value:   string(sc.Profile),
			Wrapped: ErrInvalidProfile,
		})
	}

	if sc.Engine != "" && !sc.Engine.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "system.engine",
			Message: "must be one of: tesseract, paddle, both",
			Value:   string(sc.Engine),
			Wrapped: ErrInvalidConfig,
		})
	}

	if sc.LogLevel != "" && !slices.Contains(validLogLevels, sc.LogLevel) {
		errs = append(errs, ValidationError{
			Field:   "system.log_level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   sc.LogLevel,
			Wrapped: ErrInvalidConfig,
		})
	}

	for i, p := range sc.Packages {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("system.packages[%d]", i),
				Message: "package name must not be empty",
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	return errs
}

func validatePython(pc *PythonConfig, loaded bool) []ValidationError {
	var errs []ValidationError

	if loaded && pc.RequirementsFile == "" {
		errs = append(errs, ValidationError{
			Field:   "python.requirements_file",
			Message: "required field is empty; set the requirements file name (example: requirements.txt)",
			Wrapped: ErrInvalidConfig,
		})
	}

	for i, p := range pc.Fallback {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("python.fallback[%d]", i),
				Message: "package name must not be empty",
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	return errs
}

func validateLangdata(lc *LangdataConfig) []ValidationError {
	var errs []ValidationError

	for i, lang := range lc.Languages {
		if !langCodePattern.MatchString(lang) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("langdata.languages[%d]", i),
				Message: "not a tesseract language code (example: hin, eng)",
				Value:   lang,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if lc.MirrorURL != "" && !strings.HasPrefix(lc.MirrorURL, "http://") && !strings.HasPrefix(lc.MirrorURL, "https://") {
		errs = append(errs, ValidationError{
			Field:   "langdata.mirror_url",
			Message: "must be an http(s) URL",
			Value:   lc.MirrorURL,
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

func joinProfiles() string {
	profiles := models.ValidProfiles()
	parts := make([]string, len(profiles))
	for i, p := range profiles {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}
