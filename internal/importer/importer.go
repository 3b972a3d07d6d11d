// Package importer converts pasted exam definitions into questions.
//
// Each parser either extracts at least one question or returns a *ParseError.
// Partial results are never returned.
package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/portfolio-site/backend/internal/model"
)

// Defaults applied when a header value is absent or unparsable.
const (
	DefaultDurationLabel = "2 hours"
	DefaultCorrectMark   = 1.0
	DefaultWrongMark     = 0.5
)

// Draft is the result of a successful parse. It is not persisted.
type Draft struct {
	Title         string           `json:"title,omitempty"`
	Subtitle      string           `json:"subtitle,omitempty"`
	DurationLabel string           `json:"duration_label"`
	CorrectMark   float64          `json:"correct_mark"`
	WrongMark     float64          `json:"wrong_mark"`
	IsPublic      bool             `json:"is_public"`
	Questions     []model.Question `json:"questions"`
}

func newDraft() *Draft {
	return &Draft{
		DurationLabel: DefaultDurationLabel,
		CorrectMark:   DefaultCorrectMark,
		WrongMark:     DefaultWrongMark,
		IsPublic:      true,
	}
}

// Validate checks that every question can be stored and answered: it has
// text, exactly model.OptionCount options and a correct index among them.
// Parsers do not call it, so a draft can be previewed and fixed first.
func (d *Draft) Validate() error {
	if len(d.Questions) == 0 {
		return &ParseError{Reason: "no questions found, check the format"}
	}
	for i, q := range d.Questions {
		switch {
		case strings.TrimSpace(q.Text) == "":
			return &ParseError{Reason: fmt.Sprintf("question %d has no text", i+1)}
		case len(q.Options) != model.OptionCount:
			return &ParseError{Reason: fmt.Sprintf("question %d has %d options, expected %d", i+1, len(q.Options), model.OptionCount)}
		case q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options):
			return &ParseError{Reason: fmt.Sprintf("question %d has answer index %d, expected 0 to %d", i+1, q.CorrectOptionIndex, len(q.Options)-1)}
		}
	}
	return nil
}

// ParseError carries a human-readable reason for a failed parse.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse exam: " + e.Reason
}

// IsParseError reports whether err is (or wraps) a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
