package exam

import "github.com/portfolio-site/backend/internal/model"

// HistoryLimit is the number of results retained per exam.
const HistoryLimit = 2

// RecordResult prepends r to history (newest first) and keeps only the first
// HistoryLimit entries. Every submission takes a slot; there is no
// deduplication. history is not modified.
func RecordResult(history []model.ExamResult, r model.ExamResult) []model.ExamResult {
	n := len(history) + 1
	if n > HistoryLimit {
		n = HistoryLimit
	}

	out := make([]model.ExamResult, 0, n)
	out = append(out, r)
	for _, h := range history {
		if len(out) == n {
			break
		}
		out = append(out, h)
	}
	return out
}
