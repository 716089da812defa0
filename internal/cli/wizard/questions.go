package wizard

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ocr-dataentry/ocrsetup/pkg/models"
)

// languageNames maps supported tesseract language codes to display names.
var languageNames = map[string]string{
	"hin": "hindi",
	"eng": "english",
	"san": "sanskrit",
	"ben": "bengali",
	"tam": "tamil",
	"urd": "urdu",
}

// titler capitalizes display labels consistently.
var titler = cases.Title(language.English)

// DefaultQuestions builds the standard question list. defaults seeds
// preselected values from the loaded configuration.
func DefaultQuestions(profile models.Profile, engine models.OCREngine, langs []string) []Question {
	langOptions := make([]Option, 0, len(languageNames))
	for _, code := range []string{"hin", "eng", "san", "ben", "tam", "urd"} {
		langOptions = append(langOptions, Option{
			Label: titler.String(languageNames[code]),
			Desc:  code,
			Value: code,
		})
	}

	return []Question{
		{
			ID:    "profile",
			Type:  QuestionTypeSelect,
			Title: "Installation profile",
			Desc:  "Full adds the Streamlit data-entry app stack on top of the OCR engines",
			Options: []Option{
				{Label: titler.String(string(models.ProfileFull)), Desc: "OCR engines + app stack", Value: string(models.ProfileFull)},
				{Label: titler.String(string(models.ProfileMinimal)), Desc: "OCR engines only", Value: string(models.ProfileMinimal)},
			},
			Default: string(profile),
		},
		{
			ID:    "engine",
			Type:  QuestionTypeSelect,
			Title: "OCR engine",
			Desc:  "The workflow can run on tesseract, PaddleOCR, or both",
			Options: []Option{
				{Label: "Both", Desc: "tesseract + PaddleOCR", Value: string(models.EngineBoth)},
				{Label: "Tesseract", Desc: "pytesseract only", Value: string(models.EngineTesseract)},
				{Label: "PaddleOCR", Desc: "paddleocr only", Value: string(models.EnginePaddle)},
			},
			Default: string(engine),
		},
		{
			ID:       "languages",
			Type:     QuestionTypeMultiSelect,
			Title:    "OCR languages",
			Desc:     "Language data is downloaded for the selected codes",
			Options:  langOptions,
			Defaults: langs,
		},
		{
			ID:      "confirm",
			Type:    QuestionTypeConfirm,
			Title:   "Install now?",
			Desc:    "Packages are installed system-wide via apt-get and pip",
			Default: "yes",
		},
	}
}
