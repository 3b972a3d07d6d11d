package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-site/backend/internal/exam"
	"github.com/portfolio-site/backend/internal/metrics"
	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/repository"
)

// Domain Errors
var (
	ErrExamNotFound     = errors.New("exam not found")
	ErrExamExists       = errors.New("an exam with this id already exists")
	ErrExamPrivate      = errors.New("exam is private")
	ErrExamNotAvailable = errors.New("exam is not open for submissions")
	ErrInvalidAnswers   = errors.New("answers must be a list")
)

// Defaults for newly created exams.
const (
	DefaultDurationLabel = "2 hours"
	DefaultCorrectMark   = 1.0
	DefaultWrongMark     = 0.5
)

// ExamStore persists exam definitions.
type ExamStore interface {
	GetByID(ctx context.Context, id string) (*model.Exam, error)
	List(ctx context.Context, includePrivate bool) ([]model.ExamSummary, error)
	Create(ctx context.Context, e *model.Exam) error
	Update(ctx context.Context, e *model.Exam) error
	SetPublic(ctx context.Context, id string, public bool) error
	Delete(ctx context.Context, id string) error
}

// ResultStore persists each exam's retained result history.
type ResultStore interface {
	List(ctx context.Context, examID string) ([]model.ExamResult, error)
	ListMany(ctx context.Context, examIDs []string) (map[string][]model.ExamResult, error)
	Append(ctx context.Context, result model.ExamResult) ([]model.ExamResult, error)
	Delete(ctx context.Context, examID string) error
	Publish(ctx context.Context, result model.ExamResult) error
}

// ExamView is what a caller may see of one exam. Exactly one of Exam and
// Public is set, depending on Access.
type ExamView struct {
	Access  exam.Access
	Exam    *model.Exam
	Public  *model.PublicExam
	Results []model.ExamResult
}

// ExamService handles exam business logic: visibility, scoring and result retention.
type ExamService struct {
	exams   ExamStore
	results ResultStore
	log     zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(exams ExamStore, results ResultStore, log zerolog.Logger) *ExamService {
	return &ExamService{
		exams:   exams,
		results: results,
		log:     log.With().Str("component", "exam_service").Logger(),
	}
}

func (s *ExamService) get(ctx context.Context, id string) (*model.Exam, error) {
	e, err := s.exams.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrExamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get exam %s: %w", id, err)
	}
	return e, nil
}

// List returns exam summaries. Private exams are only listed for admins.
func (s *ExamService) List(ctx context.Context, includePrivate bool) ([]model.ExamSummary, error) {
	exams, err := s.exams.List(ctx, includePrivate)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

// GetForViewer applies the visibility gate. Admins get the full exam plus
// its result history; everyone else gets the redacted exam if it is public.
func (s *ExamService) GetForViewer(ctx context.Context, id string, callerIsAdmin bool) (*ExamView, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &ExamView{Access: exam.AuthorizeView(e, callerIsAdmin)}
	switch view.Access {
	case exam.AccessFull:
		results, err := s.results.List(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list results of %s: %w", id, err)
		}
		view.Exam = e
		view.Results = results
	case exam.AccessRedacted:
		public := exam.Redact(e)
		view.Public = &public
	default:
		return nil, ErrExamPrivate
	}
	return view, nil
}

// OpenForSubmission returns the exam if it exists and accepts submissions.
// It never looks at the answers, so a missing or private exam is reported
// before anything about the request body.
func (s *ExamService) OpenForSubmission(ctx context.Context, id string) (*model.Exam, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := exam.AuthorizeSubmit(e); err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%w: %w", ErrExamNotAvailable, err)
	}
	return e, nil
}

// Submit scores answers against the exam, stores the result in the
// exam's bounded history and returns it with the answer key.
func (s *ExamService) Submit(ctx context.Context, id string, answers []*int) (*model.SubmissionResult, error) {
	e, err := s.OpenForSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.SubmitTo(ctx, e, answers)
}

// SubmitTo scores answers against an exam already returned by OpenForSubmission.
func (s *ExamService) SubmitTo(ctx context.Context, e *model.Exam, answers []*int) (*model.SubmissionResult, error) {
	id := e.ID
	if answers == nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, ErrInvalidAnswers
	}

	result := exam.Score(e, answers, time.Now())

	if _, err := s.results.Append(ctx, result); err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("store result for %s: %w", id, err)
	}

	if err := s.results.Publish(ctx, result); err != nil {
		s.log.Warn().Err(err).Str("exam_id", id).Msg("Failed to publish live result")
	}

	metrics.Submissions.WithLabelValues(metrics.OutcomeScored).Inc()
	if result.MaxScore > 0 {
		metrics.SubmissionScore.Observe(result.Score / result.MaxScore)
	}

	s.log.Info().
		Str("exam_id", id).
		Float64("score", result.Score).
		Float64("max_score", result.MaxScore).
		Int("answered", result.AnsweredCount).
		Msg("Exam submitted")

	return &model.SubmissionResult{
		ExamResult:     result,
		CorrectAnswers: exam.AnswerKey(e),
	}, nil
}

// Create stores a new exam with a dated slug id.
func (s *ExamService) Create(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error) {
	e := &model.Exam{
		ID:            datedSlug(req.Title, time.Now()),
		Title:         req.Title,
		Subtitle:      req.Subtitle,
		DurationLabel: req.DurationLabel,
		CorrectMark:   DefaultCorrectMark,
		WrongMark:     DefaultWrongMark,
		IsPublic:      true,
		Questions:     toQuestions(req.Questions),
	}
	if e.DurationLabel == "" {
		e.DurationLabel = DefaultDurationLabel
	}
	if req.CorrectMark != nil && *req.CorrectMark > 0 {
		e.CorrectMark = *req.CorrectMark
	}
	if req.WrongMark != nil {
		e.WrongMark = *req.WrongMark
	}
	if req.IsPublic != nil {
		e.IsPublic = *req.IsPublic
	}
	e.TotalMarks = float64(len(e.Questions)) * e.CorrectMark
	if req.TotalMarks != nil && *req.TotalMarks > 0 {
		e.TotalMarks = *req.TotalMarks
	}

	if err := s.exams.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrExamExists
		}
		return nil, fmt.Errorf("create exam: %w", err)
	}

	s.log.Info().Str("exam_id", e.ID).Int("questions", len(e.Questions)).Msg("Exam created")
	return e, nil
}

// Update applies the fields present in req.
func (s *ExamService) Update(ctx context.Context, id string, req *model.UpdateExamRequest) (*model.Exam, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Subtitle != nil {
		e.Subtitle = *req.Subtitle
	}
	if req.DurationLabel != nil && *req.DurationLabel != "" {
		e.DurationLabel = *req.DurationLabel
	}
	if req.CorrectMark != nil && *req.CorrectMark > 0 {
		e.CorrectMark = *req.CorrectMark
	}
	if req.WrongMark != nil {
		e.WrongMark = *req.WrongMark
	}
	if req.IsPublic != nil {
		e.IsPublic = *req.IsPublic
	}
	if req.Questions != nil {
		e.Questions = toQuestions(req.Questions)
	}
	if req.TotalMarks != nil {
		e.TotalMarks = *req.TotalMarks
	}

	if err := s.exams.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("update exam %s: %w", id, err)
	}
	return e, nil
}

// TogglePublic flips the exam's visibility and returns the updated exam.
func (s *ExamService) TogglePublic(ctx context.Context, id string) (*model.Exam, error) {
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	e.IsPublic = !e.IsPublic
	if err := s.exams.SetPublic(ctx, id, e.IsPublic); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("toggle exam %s: %w", id, err)
	}

	s.log.Info().Str("exam_id", id).Bool("is_public", e.IsPublic).Msg("Exam visibility changed")
	return e, nil
}

// Delete removes the exam and its result history.
func (s *ExamService) Delete(ctx context.Context, id string) error {
	if err := s.exams.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExamNotFound
		}
		return fmt.Errorf("delete exam %s: %w", id, err)
	}

	if err := s.results.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("exam_id", id).Msg("Exam deleted but its results were not")
		return fmt.Errorf("delete results of %s: %w", id, err)
	}

	s.log.Info().Str("exam_id", id).Msg("Exam deleted")
	return nil
}

// Results returns the retained history of an existing exam.
func (s *ExamService) Results(ctx context.Context, id string) ([]model.ExamResult, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}

	results, err := s.results.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list results of %s: %w", id, err)
	}
	return results, nil
}

func toQuestions(in []model.QuestionInput) []model.Question {
	out := make([]model.Question, len(in))
	for i := range in {
		out[i] = in[i].ToQuestion()
	}
	return out
}
