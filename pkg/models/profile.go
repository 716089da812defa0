package models

import "slices"

// Profile selects how much of the OCR stack gets installed.
type Profile string

const (
	// ProfileMinimal installs the OCR engines and conversion tools only.
	ProfileMinimal Profile = "minimal"

	// ProfileFull additionally installs the Streamlit data-entry app stack.
	ProfileFull Profile = "full"
)

// IsValid reports whether the profile is a known value.
func (p Profile) IsValid() bool {
	return slices.Contains(ValidProfiles(), p)
}

// ValidProfiles returns all known profiles.
func ValidProfiles() []Profile {
	return []Profile{ProfileMinimal, ProfileFull}
}

// OCREngine selects which OCR engine(s) the host is prepared for.
type OCREngine string

const (
	// EngineTesseract prepares the host for pytesseract.
	EngineTesseract OCREngine = "tesseract"

	// EnginePaddle prepares the host for PaddleOCR.
	EnginePaddle OCREngine = "paddle"

	// EngineBoth prepares the host for both engines.
	EngineBoth OCREngine = "both"
)

// IsValid reports whether the engine is a known value.
func (e OCREngine) IsValid() bool {
	return slices.Contains(ValidEngines(), e)
}

// ValidEngines returns all known OCR engine selections.
func ValidEngines() []OCREngine {
	return []OCREngine{EngineTesseract, EnginePaddle, EngineBoth}
}
