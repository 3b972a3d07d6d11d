package model

import (
	"time"
)

// Exam is a multiple-choice exam definition.
//
// TotalMarks is a display hint only. Scoring always derives the maximum
// score from len(Questions) × CorrectMark.
type Exam struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle,omitempty"`
	DurationLabel string     `json:"duration_label"`
	TotalMarks    float64    `json:"total_marks"`
	CorrectMark   float64    `json:"correct_mark"`
	WrongMark     float64    `json:"wrong_mark"`
	IsPublic      bool       `json:"is_public"`
	Questions     []Question `json:"questions"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ExamSummary is the list view of an exam, without any question content.
type ExamSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle,omitempty"`
	DurationLabel string    `json:"duration_label"`
	TotalMarks    float64   `json:"total_marks"`
	CorrectMark   float64   `json:"correct_mark"`
	WrongMark     float64   `json:"wrong_mark"`
	QuestionCount int       `json:"question_count"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
}

// Summary returns the list view of e.
func (e *Exam) Summary() ExamSummary {
	return ExamSummary{
		ID:            e.ID,
		Title:         e.Title,
		Subtitle:      e.Subtitle,
		DurationLabel: e.DurationLabel,
		TotalMarks:    e.TotalMarks,
		CorrectMark:   e.CorrectMark,
		WrongMark:     e.WrongMark,
		QuestionCount: len(e.Questions),
		IsPublic:      e.IsPublic,
		CreatedAt:     e.CreatedAt,
	}
}

// PublicExam is the learner-facing payload of an exam (no answer key).
type PublicExam struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Subtitle      string           `json:"subtitle,omitempty"`
	DurationLabel string           `json:"duration_label"`
	TotalMarks    float64          `json:"total_marks"`
	CorrectMark   float64          `json:"correct_mark"`
	WrongMark     float64          `json:"wrong_mark"`
	IsPublic      bool             `json:"is_public"`
	Questions     []PublicQuestion `json:"questions"`
	CreatedAt     time.Time        `json:"created_at"`
}

// CreateExamRequest is the payload for creating a new exam.
// Pointer fields distinguish "absent" from an explicit zero.
type CreateExamRequest struct {
	Title         string          `json:"title" binding:"required,min=1,max=255"`
	Subtitle      string          `json:"subtitle" binding:"max=255"`
	DurationLabel string          `json:"duration_label" binding:"max=64"`
	TotalMarks    *float64        `json:"total_marks" binding:"omitempty,min=0"`
	CorrectMark   *float64        `json:"correct_mark" binding:"omitempty,min=0"`
	WrongMark     *float64        `json:"wrong_mark" binding:"omitempty,min=0"`
	IsPublic      *bool           `json:"is_public"`
	Questions     []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// UpdateExamRequest is the payload for a partial exam update. Absent fields are left unchanged.
type UpdateExamRequest struct {
	Title         *string         `json:"title" binding:"omitempty,min=1,max=255"`
	Subtitle      *string         `json:"subtitle" binding:"omitempty,max=255"`
	DurationLabel *string         `json:"duration_label" binding:"omitempty,max=64"`
	TotalMarks    *float64        `json:"total_marks" binding:"omitempty,min=0"`
	CorrectMark   *float64        `json:"correct_mark" binding:"omitempty,min=0"`
	WrongMark     *float64        `json:"wrong_mark" binding:"omitempty,min=0"`
	IsPublic      *bool           `json:"is_public"`
	Questions     []QuestionInput `json:"questions" binding:"omitempty,min=1,dive"`
}

// AdminExamView is the full exam with its retained result history, newest first.
type AdminExamView struct {
	Exam    *Exam        `json:"exam"`
	Results []ExamResult `json:"results"`
}
