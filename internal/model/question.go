package model

// OptionCount is the fixed number of options per question.
const OptionCount = 4

// Question represents a single multiple-choice question owned by an exam.
type Question struct {
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
}

// PublicQuestion is a question without its correct answer, sent to learners.
type PublicQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// QuestionInput is the payload for a single question on create/update.
type QuestionInput struct {
	Text               string   `json:"text" binding:"required,min=1,max=2000"`
	Options            []string `json:"options" binding:"required,len=4"`
	CorrectOptionIndex *int     `json:"correct_option_index" binding:"required,min=0,max=3"`
}

// ToQuestion converts the validated input into a Question.
func (in QuestionInput) ToQuestion() Question {
	q := Question{Text: in.Text, Options: append([]string(nil), in.Options...)}
	if in.CorrectOptionIndex != nil {
		q.CorrectOptionIndex = *in.CorrectOptionIndex
	}
	return q
}
