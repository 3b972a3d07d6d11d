package importer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/portfolio-site/backend/internal/model"
)

// QuestionsMarker separates the header from the question blocks.
const QuestionsMarker = "---QUESTIONS---"

var blankLine = regexp.MustCompile(`\n\s*\n`)

var answerLetters = map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}

// ParseText parses the plain-text exam format:
//
//	EXAM_TITLE: Preliminary test
//	EXAM_SUBTITLE: Set 03
//	DURATION: 2 hours
//	CORRECT_MARK: 1
//	WRONG_MARK: 0.5
//	PUBLIC: true
//	---QUESTIONS---
//	Q: 2 + 2 = ?
//	A: 3
//	B: 4
//	C: 5
//	D: 22
//	ANS: B
//
// Question blocks are separated by blank lines. An unknown answer letter maps to A.
func ParseText(text string) (*Draft, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	d := newDraft()

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == QuestionsMarker {
			break
		}
		parseHeaderLine(d, line)
	}

	parts := strings.SplitN(text, QuestionsMarker, 3)
	if len(parts) < 2 {
		return nil, &ParseError{Reason: "missing " + QuestionsMarker + " marker before the questions"}
	}

	for _, block := range blankLine.Split(parts[1], -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if q, ok := parseTextBlock(block); ok {
			d.Questions = append(d.Questions, q)
		}
	}

	if len(d.Questions) == 0 {
		return nil, &ParseError{Reason: "no questions found, check the format"}
	}
	return d, nil
}

func parseHeaderLine(d *Draft, line string) {
	switch {
	case strings.HasPrefix(line, "EXAM_TITLE:"):
		d.Title = valueAfter(line, "EXAM_TITLE:")
	case strings.HasPrefix(line, "EXAM_SUBTITLE:"):
		d.Subtitle = valueAfter(line, "EXAM_SUBTITLE:")
	case strings.HasPrefix(line, "DURATION:"):
		if v := valueAfter(line, "DURATION:"); v != "" {
			d.DurationLabel = v
		}
	case strings.HasPrefix(line, "CORRECT_MARK:"):
		d.CorrectMark = parseMark(valueAfter(line, "CORRECT_MARK:"), DefaultCorrectMark, false)
	case strings.HasPrefix(line, "WRONG_MARK:"):
		d.WrongMark = parseMark(valueAfter(line, "WRONG_MARK:"), DefaultWrongMark, true)
	case strings.HasPrefix(line, "PUBLIC:"):
		d.IsPublic = strings.EqualFold(valueAfter(line, "PUBLIC:"), "true")
	}
}

// parseMark returns fallback for unparsable or negative input. A zero
// correct mark is meaningless and also falls back; a zero wrong mark
// disables negative marking and is kept.
func parseMark(s string, fallback float64, allowZero bool) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || (v == 0 && !allowZero) {
		return fallback
	}
	return v
}

func parseTextBlock(block string) (model.Question, bool) {
	q := model.Question{Options: make([]string, model.OptionCount)}

	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
		case strings.HasPrefix(line, "Q:"):
			q.Text = valueAfter(line, "Q:")
		case strings.HasPrefix(line, "A:"):
			q.Options[0] = valueAfter(line, "A:")
		case strings.HasPrefix(line, "B:"):
			q.Options[1] = valueAfter(line, "B:")
		case strings.HasPrefix(line, "C:"):
			q.Options[2] = valueAfter(line, "C:")
		case strings.HasPrefix(line, "D:"):
			q.Options[3] = valueAfter(line, "D:")
		case strings.HasPrefix(line, "ANS:"):
			q.CorrectOptionIndex = answerLetters[strings.ToUpper(valueAfter(line, "ANS:"))]
		}
	}

	if q.Text == "" {
		return q, false
	}
	for _, o := range q.Options {
		if o != "" {
			return q, true
		}
	}
	return q, false
}

func valueAfter(line, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, prefix))
}
