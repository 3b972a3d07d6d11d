package model

import "time"

// ExamResult is the scored outcome of a single submission. Never mutated after creation.
type ExamResult struct {
	ExamID         string    `json:"exam_id"`
	SubmittedAt    time.Time `json:"submitted_at"`
	TotalQuestions int       `json:"total_questions"`
	AnsweredCount  int       `json:"answered_count"`
	CorrectCount   int       `json:"correct_count"`
	WrongCount     int       `json:"wrong_count"`
	SkippedCount   int       `json:"skipped_count"`
	Score          float64   `json:"score"`
	MaxScore       float64   `json:"max_score"`
	UserAnswers    []*int    `json:"user_answers"`
}

// SubmissionResult is returned to the learner right after a submission: the
// result plus the answer key for self-review.
type SubmissionResult struct {
	ExamResult
	CorrectAnswers []int `json:"correct_answers"`
}

// SubmitExamRequest is the payload for submitting answers.
// Each entry is an option index or null for a skipped question.
type SubmitExamRequest struct {
	Answers []*int `json:"answers" binding:"required"`
}
