package exam

import (
	"errors"

	"github.com/portfolio-site/backend/internal/model"
)

// Access is the outcome of the visibility gate.
type Access int

const (
	// AccessDenied means the caller must get a not-authorized signal.
	AccessDenied Access = iota
	// AccessRedacted exposes question text and options only.
	AccessRedacted
	// AccessFull exposes answer keys and result history.
	AccessFull
)

func (a Access) String() string {
	switch a {
	case AccessFull:
		return "full"
	case AccessRedacted:
		return "redacted"
	default:
		return "denied"
	}
}

// ErrNotPublic is returned when a learner tries to submit to a non-public exam.
var ErrNotPublic = errors.New("exam is not public")

// AuthorizeView decides what a caller may see of e.
func AuthorizeView(e *model.Exam, callerIsAdmin bool) Access {
	if !e.IsPublic && !callerIsAdmin {
		return AccessDenied
	}
	if callerIsAdmin {
		return AccessFull
	}
	return AccessRedacted
}

// AuthorizeSubmit rejects submissions to non-public exams, whoever the caller is.
func AuthorizeSubmit(e *model.Exam) error {
	if !e.IsPublic {
		return ErrNotPublic
	}
	return nil
}

// Redact strips the answer key from e.
func Redact(e *model.Exam) model.PublicExam {
	questions := make([]model.PublicQuestion, len(e.Questions))
	for i, q := range e.Questions {
		questions[i] = model.PublicQuestion{
			Text:    q.Text,
			Options: append([]string(nil), q.Options...),
		}
	}

	return model.PublicExam{
		ID:            e.ID,
		Title:         e.Title,
		Subtitle:      e.Subtitle,
		DurationLabel: e.DurationLabel,
		TotalMarks:    e.TotalMarks,
		CorrectMark:   e.CorrectMark,
		WrongMark:     e.WrongMark,
		IsPublic:      e.IsPublic,
		Questions:     questions,
		CreatedAt:     e.CreatedAt,
	}
}
