package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/portfolio-site/backend/internal/importer"
	"github.com/portfolio-site/backend/internal/model"
)

// Import formats accepted by ImportService.
const (
	ImportFormatText = "text"
	ImportFormatHTML = "html"
)

const defaultImportTitle = "Imported exam"

var ErrUnknownImportFormat = errors.New("unknown import format")

// ImportResult is the parsed draft and, when it was saved, the created exam.
type ImportResult struct {
	Draft *importer.Draft `json:"draft"`
	Exam  *model.Exam     `json:"exam,omitempty"`
}

// ImportService turns pasted exam definitions into drafts or saved exams.
type ImportService struct {
	exams *ExamService
	log   zerolog.Logger
}

func NewImportService(exams *ExamService, log zerolog.Logger) *ImportService {
	return &ImportService{
		exams: exams,
		log:   log.With().Str("component", "import_service").Logger(),
	}
}

// Import parses body in the given format. With save set, the draft is
// also stored as a new exam.
func (s *ImportService) Import(ctx context.Context, format, body string, save bool) (*ImportResult, error) {
	var (
		draft *importer.Draft
		err   error
	)
	switch format {
	case ImportFormatText:
		draft, err = importer.ParseText(body)
	case ImportFormatHTML:
		draft, err = importer.ParseHTML(body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownImportFormat, format)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("format", format).Int("questions", len(draft.Questions)).Bool("save", save).Msg("Exam parsed")

	res := &ImportResult{Draft: draft}
	if !save {
		return res, nil
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}
	res.Exam, err = s.exams.Create(ctx, draftToRequest(draft))
	if err != nil {
		return nil, err
	}
	return res, nil
}

func draftToRequest(d *importer.Draft) *model.CreateExamRequest {
	title := d.Title
	if title == "" {
		title = defaultImportTitle
	}
	correct, wrong, public := d.CorrectMark, d.WrongMark, d.IsPublic

	questions := make([]model.QuestionInput, len(d.Questions))
	for i, q := range d.Questions {
		idx := q.CorrectOptionIndex
		questions[i] = model.QuestionInput{
			Text:               q.Text,
			Options:            append([]string(nil), q.Options...),
			CorrectOptionIndex: &idx,
		}
	}

	return &model.CreateExamRequest{
		Title:         title,
		Subtitle:      d.Subtitle,
		DurationLabel: d.DurationLabel,
		CorrectMark:   &correct,
		WrongMark:     &wrong,
		IsPublic:      &public,
		Questions:     questions,
	}
}
