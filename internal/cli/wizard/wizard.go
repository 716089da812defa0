package wizard

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/ocr-dataentry/ocrsetup/pkg/models"
)

// Run executes the wizard and returns the collected answers.
// Each question runs as its own huh.Form so a long option list never
// shares a viewport with the next question.
func Run(questions []Question) (*Result, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := &Result{}

	for i := range questions {
		q := &questions[i]

		form := huh.NewForm(buildQuestionGroup(q, result))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}

	return result, nil
}

// RunWithDefaults runs the wizard seeded from the given configuration values.
func RunWithDefaults(profile models.Profile, engine models.OCREngine, langs []string) (*Result, error) {
	return Run(DefaultQuestions(profile, engine, langs))
}

// buildQuestionGroup creates a huh.Group for a single question, binding
// the answer into the shared result.
func buildQuestionGroup(q *Question, result *Result) *huh.Group {
	switch q.Type {
	case QuestionTypeMultiSelect:
		return huh.NewGroup(buildMultiSelectField(q, result))
	case QuestionTypeConfirm:
		return huh.NewGroup(buildConfirmField(q, result))
	default:
		return huh.NewGroup(buildSelectField(q, result))
	}
}

func buildSelectField(q *Question, result *Result) *huh.Select[string] {
	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		label := opt.Label
		if opt.Desc != "" {
			label = opt.Label + " - " + opt.Desc
		}
		opts[i] = huh.NewOption(label, opt.Value)
	}

	target := selectTarget(q.ID, result)
	if q.Default != "" {
		*target = q.Default
	}

	return huh.NewSelect[string]().
		Title(q.Title).
		Description(q.Desc).
		Options(opts...).
		Value(target)
}

func buildMultiSelectField(q *Question, result *Result) *huh.MultiSelect[string] {
	opts := make([]huh.Option[string], len(q.Options))
	for i, opt := range q.Options {
		label := opt.Label
		if opt.Desc != "" {
			label = opt.Label + " (" + opt.Desc + ")"
		}
		o := huh.NewOption(label, opt.Value)
		for _, def := range q.Defaults {
			if def == opt.Value {
				o = o.Selected(true)
			}
		}
		opts[i] = o
	}

	return huh.NewMultiSelect[string]().
		Title(q.Title).
		Description(q.Desc).
		Options(opts...).
		Value(&result.Languages)
}

func buildConfirmField(q *Question, result *Result) *huh.Confirm {
	result.Confirmed = q.Default == "yes"
	return huh.NewConfirm().
		Title(q.Title).
		Description(q.Desc).
		Affirmative("Install").
		Negative("Abort").
		Value(&result.Confirmed)
}

// selectTarget maps a select question ID onto its result field.
// Select answers pass through string pointers because huh binds values
// by pointer; the typed fields are converted after the form runs.
func selectTarget(id string, result *Result) *string {
	switch id {
	case "profile":
		return (*string)(&result.Profile)
	case "engine":
		return (*string)(&result.Engine)
	default:
		// Unknown select questions bind to a discarded value.
		var scratch string
		return &scratch
	}
}
