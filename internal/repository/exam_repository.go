package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portfolio-site/backend/internal/model"
)

// ExamRepository handles exam data access. Each exam is one row; its
// questions live in a JSONB column and are always read and written whole.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, title, subtitle, duration_label, total_marks, correct_mark, wrong_mark,
	is_public, questions, created_at, updated_at`

func scanExam(row pgx.Row) (*model.Exam, error) {
	e := &model.Exam{}
	var questions []byte
	if err := row.Scan(&e.ID, &e.Title, &e.Subtitle, &e.DurationLabel, &e.TotalMarks,
		&e.CorrectMark, &e.WrongMark, &e.IsPublic, &questions, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &e.Questions); err != nil {
		return nil, fmt.Errorf("decode questions of %s: %w", e.ID, err)
	}
	return e, nil
}

// GetByID retrieves an exam by its slug id.
func (r *ExamRepository) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	e, err := scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// List returns exam summaries, newest first. Private exams are only
// included when includePrivate is set.
func (r *ExamRepository) List(ctx context.Context, includePrivate bool) ([]model.ExamSummary, error) {
	query := `SELECT id, title, subtitle, duration_label, total_marks, correct_mark, wrong_mark,
	                 jsonb_array_length(questions), is_public, created_at
	          FROM exams`
	if !includePrivate {
		query += ` WHERE is_public`
	}
	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exams := make([]model.ExamSummary, 0)
	for rows.Next() {
		var s model.ExamSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Subtitle, &s.DurationLabel, &s.TotalMarks,
			&s.CorrectMark, &s.WrongMark, &s.QuestionCount, &s.IsPublic, &s.CreatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, s)
	}
	return exams, rows.Err()
}

// Create inserts a new exam. A duplicate id yields ErrConflict.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	questions, err := json.Marshal(e.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO exams (id, title, subtitle, duration_label, total_marks, correct_mark, wrong_mark, is_public, questions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at`,
		e.ID, e.Title, e.Subtitle, e.DurationLabel, e.TotalMarks, e.CorrectMark, e.WrongMark, e.IsPublic, questions,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// Update overwrites every mutable field of an existing exam.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	questions, err := json.Marshal(e.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`UPDATE exams
		 SET title = $1, subtitle = $2, duration_label = $3, total_marks = $4, correct_mark = $5,
		     wrong_mark = $6, is_public = $7, questions = $8, updated_at = NOW()
		 WHERE id = $9
		 RETURNING updated_at`,
		e.Title, e.Subtitle, e.DurationLabel, e.TotalMarks, e.CorrectMark, e.WrongMark, e.IsPublic, questions, e.ID,
	).Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// SetPublic changes only the visibility flag.
func (r *ExamRepository) SetPublic(ctx context.Context, id string, public bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE exams SET is_public = $1, updated_at = NOW() WHERE id = $2`, public, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an exam row.
func (r *ExamRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
