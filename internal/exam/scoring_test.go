package exam_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/backend/internal/exam"
	"github.com/portfolio-site/backend/internal/model"
)

func intp(v int) *int { return &v }

func makeExam(n int, correctMark, wrongMark float64) *model.Exam {
	e := &model.Exam{
		ID:          "2026-01-01-sample",
		Title:       "Sample",
		CorrectMark: correctMark,
		WrongMark:   wrongMark,
		IsPublic:    true,
	}
	for i := 0; i < n; i++ {
		e.Questions = append(e.Questions, model.Question{
			Text:               "question",
			Options:            []string{"a", "b", "c", "d"},
			CorrectOptionIndex: i % model.OptionCount,
		})
	}
	return e
}

func TestScore(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := map[string]struct {
		exam    *model.Exam
		answers []*int
		want    model.ExamResult
	}{
		"one correct one wrong with negative marking": {
			exam:    makeExam(2, 1, 0.5),
			answers: []*int{intp(0), intp(3)},
			want: model.ExamResult{
				TotalQuestions: 2, AnsweredCount: 2, CorrectCount: 1, WrongCount: 1,
				Score: 0.5, MaxScore: 2,
				UserAnswers: []*int{intp(0), intp(3)},
			},
		},
		"all null answers score zero": {
			exam:    makeExam(2, 1, 0.5),
			answers: []*int{nil, nil},
			want: model.ExamResult{
				TotalQuestions: 2, SkippedCount: 2, Score: 0, MaxScore: 2,
				UserAnswers: []*int{nil, nil},
			},
		},
		"short answer set skips the trailing questions": {
			exam:    makeExam(4, 1, 0.25),
			answers: []*int{intp(0)},
			want: model.ExamResult{
				TotalQuestions: 4, AnsweredCount: 1, CorrectCount: 1, SkippedCount: 3,
				Score: 1, MaxScore: 4,
				UserAnswers: []*int{intp(0), nil, nil, nil},
			},
		},
		"all wrong goes negative": {
			exam:    makeExam(3, 1, 0.5),
			answers: []*int{intp(1), intp(2), intp(3)},
			want: model.ExamResult{
				TotalQuestions: 3, AnsweredCount: 3, WrongCount: 3,
				Score: -1.5, MaxScore: 3,
				UserAnswers: []*int{intp(1), intp(2), intp(3)},
			},
		},
		"out of range indexes count as wrong": {
			exam:    makeExam(2, 2, 1),
			answers: []*int{intp(-1), intp(99)},
			want: model.ExamResult{
				TotalQuestions: 2, AnsweredCount: 2, WrongCount: 2,
				Score: -2, MaxScore: 4,
				UserAnswers: []*int{intp(-1), intp(99)},
			},
		},
		"extra answers beyond the question count are ignored": {
			exam:    makeExam(1, 1, 0),
			answers: []*int{intp(0), intp(1), intp(2)},
			want: model.ExamResult{
				TotalQuestions: 1, AnsweredCount: 1, CorrectCount: 1,
				Score: 1, MaxScore: 1,
				UserAnswers: []*int{intp(0)},
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := exam.Score(tt.exam, tt.answers, now)

			tt.want.ExamID = tt.exam.ID
			tt.want.SubmittedAt = now
			require.Equal(t, tt.want, got)
		})
	}
}

func TestScore_FormulaHoldsForEveryMix(t *testing.T) {
	const n = 6
	c, w := 2.0, 0.5

	for k := 0; k <= n; k++ {
		for m := 0; k+m <= n; m++ {
			e := makeExam(n, c, w)
			answers := make([]*int, n)
			for i := 0; i < k; i++ {
				answers[i] = intp(e.Questions[i].CorrectOptionIndex)
			}
			for i := k; i < k+m; i++ {
				answers[i] = intp((e.Questions[i].CorrectOptionIndex + 1) % model.OptionCount)
			}

			got := exam.Score(e, answers, time.Now())

			require.Equal(t, k, got.CorrectCount)
			require.Equal(t, m, got.WrongCount)
			require.Equal(t, n-k-m, got.SkippedCount)
			require.Equal(t, float64(k)*c-float64(m)*w, got.Score)
			require.Equal(t, float64(n)*c, got.MaxScore)
		}
	}
}

func TestScore_DecimalMarksAreExact(t *testing.T) {
	e := makeExam(3, 0.1, 0)
	answers := []*int{intp(0), intp(1), intp(2)}

	got := exam.Score(e, answers, time.Now())

	require.Equal(t, 0.3, got.Score)
	require.Equal(t, 0.3, got.MaxScore)
}

func TestScore_IgnoresStoredTotalMarks(t *testing.T) {
	e := makeExam(2, 1, 0)
	e.TotalMarks = 100

	got := exam.Score(e, nil, time.Now())

	require.Equal(t, 2.0, got.MaxScore)
	require.Equal(t, 2.0, exam.MaxScore(e))
}

func TestScore_DoesNotAliasCallerAnswers(t *testing.T) {
	e := makeExam(1, 1, 0)
	answers := []*int{intp(0)}

	got := exam.Score(e, answers, time.Now())
	*answers[0] = 3

	require.Equal(t, 0, *got.UserAnswers[0])
}

func TestAnswerKey(t *testing.T) {
	e := makeExam(5, 1, 0)
	require.Equal(t, []int{0, 1, 2, 3, 0}, exam.AnswerKey(e))
}
