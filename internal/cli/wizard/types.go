// Package wizard implements the interactive setup questionnaire shown
// before provisioning on a TTY. Answers narrow the default package
// selection; non-interactive runs bypass the wizard entirely.
package wizard

import (
	"errors"

	"github.com/ocr-dataentry/ocrsetup/pkg/models"
)

// Sentinel errors for wizard runs.
var (
	// ErrCancelled indicates the user aborted the wizard.
	ErrCancelled = errors.New("wizard: cancelled by user")

	// ErrNoQuestions indicates an empty question list.
	ErrNoQuestions = errors.New("wizard: no questions to ask")
)

// Result holds the collected answers.
type Result struct {
	Profile   models.Profile
	Engine    models.OCREngine
	Languages []string
	Confirmed bool
}

// QuestionType discriminates question kinds.
type QuestionType int

const (
	QuestionTypeSelect QuestionType = iota
	QuestionTypeMultiSelect
	QuestionTypeConfirm
)

// Option is one selectable answer.
type Option struct {
	Label string
	Desc  string
	Value string
}

// Question describes a single wizard step.
type Question struct {
	ID      string
	Type    QuestionType
	Title   string
	Desc    string
	Options []Option
	Default string

	// Defaults holds the preselected values for multi-select questions.
	Defaults []string
}
