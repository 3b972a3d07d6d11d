package exam_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/backend/internal/exam"
	"github.com/portfolio-site/backend/internal/model"
)

func resultAt(sec int) model.ExamResult {
	return model.ExamResult{
		ExamID:      "e1",
		SubmittedAt: time.Unix(int64(sec), 0).UTC(),
	}
}

func TestRecordResult(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		got := exam.RecordResult(nil, resultAt(1))
		require.Equal(t, []model.ExamResult{resultAt(1)}, got)
	})

	t.Run("second result goes first", func(t *testing.T) {
		got := exam.RecordResult([]model.ExamResult{resultAt(1)}, resultAt(2))
		require.Equal(t, []model.ExamResult{resultAt(2), resultAt(1)}, got)
	})

	t.Run("third result evicts the oldest", func(t *testing.T) {
		var history []model.ExamResult
		for i := 1; i <= 3; i++ {
			history = exam.RecordResult(history, resultAt(i))
		}
		require.Equal(t, []model.ExamResult{resultAt(3), resultAt(2)}, history)
	})

	t.Run("oversized history is truncated", func(t *testing.T) {
		history := []model.ExamResult{resultAt(5), resultAt(4), resultAt(3)}
		got := exam.RecordResult(history, resultAt(6))
		require.Equal(t, []model.ExamResult{resultAt(6), resultAt(5)}, got)
	})

	t.Run("input is left untouched", func(t *testing.T) {
		history := []model.ExamResult{resultAt(2), resultAt(1)}
		_ = exam.RecordResult(history, resultAt(3))
		require.Equal(t, []model.ExamResult{resultAt(2), resultAt(1)}, history)
	})

	t.Run("length never exceeds the limit", func(t *testing.T) {
		var history []model.ExamResult
		for i := 0; i < 50; i++ {
			history = exam.RecordResult(history, resultAt(i))
			require.LessOrEqual(t, len(history), exam.HistoryLimit)
		}
		require.Equal(t, []model.ExamResult{resultAt(49), resultAt(48)}, history)
	})
}
