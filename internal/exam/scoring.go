// Package exam holds the pure exam rules: scoring a submission, retaining
// result history and deciding what a caller may see.
package exam

import (
	"time"

	"github.com/portfolio-site/backend/internal/model"
	"github.com/shopspring/decimal"
)

// Score grades answers against e's answer key.
//
// answers is aligned positionally with e.Questions. Missing trailing entries
// and nil entries count as skipped. Any other value that differs from the
// correct index, including an out-of-range one, counts as wrong. The score is
// correct×CorrectMark − wrong×WrongMark and is not clamped at zero.
func Score(e *model.Exam, answers []*int, submittedAt time.Time) model.ExamResult {
	n := len(e.Questions)
	userAnswers := make([]*int, n)

	var correct, wrong, skipped int
	for i, q := range e.Questions {
		var ans *int
		if i < len(answers) {
			ans = answers[i]
		}
		if ans == nil {
			skipped++
			continue
		}

		v := *ans
		userAnswers[i] = &v
		if v == q.CorrectOptionIndex {
			correct++
		} else {
			wrong++
		}
	}

	correctMark := decimal.NewFromFloat(e.CorrectMark)
	wrongMark := decimal.NewFromFloat(e.WrongMark)

	score := correctMark.Mul(decimal.NewFromInt(int64(correct))).
		Sub(wrongMark.Mul(decimal.NewFromInt(int64(wrong))))
	maxScore := correctMark.Mul(decimal.NewFromInt(int64(n)))

	return model.ExamResult{
		ExamID:         e.ID,
		SubmittedAt:    submittedAt.UTC(),
		TotalQuestions: n,
		AnsweredCount:  correct + wrong,
		CorrectCount:   correct,
		WrongCount:     wrong,
		SkippedCount:   skipped,
		Score:          score.InexactFloat64(),
		MaxScore:       maxScore.InexactFloat64(),
		UserAnswers:    userAnswers,
	}
}

// AnswerKey returns the correct option index of every question in order.
func AnswerKey(e *model.Exam) []int {
	key := make([]int, len(e.Questions))
	for i, q := range e.Questions {
		key[i] = q.CorrectOptionIndex
	}
	return key
}

// MaxScore is len(Questions) × CorrectMark. The stored TotalMarks is never consulted.
func MaxScore(e *model.Exam) float64 {
	return decimal.NewFromFloat(e.CorrectMark).
		Mul(decimal.NewFromInt(int64(len(e.Questions)))).
		InexactFloat64()
}
