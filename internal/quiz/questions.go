package quiz

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	StatusCorrect         = "correct"
	StatusIncorrect       = "incorrect"
	StatusInvalidQuestion = "invalid_question"
	StatusInvalidLetter   = "invalid_letter"
)

// ChoiceCount is the number of options every question carries.
const ChoiceCount = 4

// Letters lists the option letters in display order.
var Letters = [ChoiceCount]string{"A", "B", "C", "D"}

type Difficulty string

const (
	DifficultyEasy    Difficulty = "Easy"
	DifficultyMedium  Difficulty = "Medium"
	DifficultyHard    Difficulty = "Hard"
	DifficultyExtreme Difficulty = "Extreme"
)

var (
	errEmptyQuestion = errors.New("question text is empty")
	errChoiceCount   = errors.New("question must have exactly 4 choices")
	errEmptyChoice   = errors.New("choice text is empty")
	errAnswerLetter  = errors.New("correct answer must be one of A, B, C, D")
)

type Option struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

type Question struct {
	QuestionID    string     `json:"question_id"`
	Question      string     `json:"question"`
	Options       []Option   `json:"options"`
	CorrectAnswer string     `json:"correct_answer"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
}

type SubmittedResponse struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type ResponseResult struct {
	QuestionID string `json:"question_id"`
	Status     string `json:"status"`
}

// NewQuestion trims and validates raw record fields and returns the question
// with its options lettered A-D.
func NewQuestion(text string, choices []string, answer string, difficulty Difficulty) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, errEmptyQuestion
	}
	if len(choices) != ChoiceCount {
		return Question{}, fmt.Errorf("%w, got %d", errChoiceCount, len(choices))
	}

	options := make([]Option, ChoiceCount)
	for idx, choice := range choices {
		choice = strings.TrimSpace(choice)
		if choice == "" {
			return Question{}, fmt.Errorf("%w (choice %s)", errEmptyChoice, Letters[idx])
		}
		options[idx] = Option{Letter: Letters[idx], Text: choice}
	}

	letter := NormalizeLetter(answer)
	if letterIndex(letter) < 0 {
		return Question{}, fmt.Errorf("%w, got %q", errAnswerLetter, strings.TrimSpace(answer))
	}

	question := Question{
		Question:      text,
		Options:       options,
		CorrectAnswer: letter,
		Difficulty:    difficulty,
	}
	question.QuestionID = MakeQuestionID(question)
	return question, nil
}

// CorrectIndex returns the zero-based index of the correct option.
func (q Question) CorrectIndex() int {
	return letterIndex(q.CorrectAnswer)
}

// CorrectText returns the text of the correct option, or "" when the
// question is malformed.
func (q Question) CorrectText() string {
	idx := q.CorrectIndex()
	if idx < 0 || idx >= len(q.Options) {
		return ""
	}
	return q.Options[idx].Text
}

// IsCorrect reports whether answer names the correct option. Both sides are
// normalized, so "b" and " B " match "B".
func (q Question) IsCorrect(answer string) bool {
	letter := NormalizeLetter(answer)
	return letter != "" && letter == NormalizeLetter(q.CorrectAnswer)
}

func MakeQuestionID(question Question) string {
	var keyBuilder strings.Builder
	keyBuilder.WriteString(question.Question)
	for _, option := range question.Options {
		keyBuilder.WriteString("|")
		keyBuilder.WriteString(option.Text)
	}

	hash := sha1.Sum([]byte(keyBuilder.String()))
	return "q_" + hex.EncodeToString(hash[:6])
}

func NormalizeLetter(answer string) string {
	letter := strings.ToUpper(strings.TrimSpace(answer))
	if len(letter) != 1 {
		return ""
	}
	return letter
}

// ParseDifficulty accepts a tier label with or without the leading '#' and
// in any case. Unknown labels are kept verbatim so custom sections still load.
func ParseDifficulty(label string) Difficulty {
	label = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(label), "#"))
	for _, known := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme} {
		if strings.EqualFold(label, string(known)) {
			return known
		}
	}
	return Difficulty(label)
}

// Matches reports whether d selects label. The empty difficulty matches all.
func (d Difficulty) Matches(label Difficulty) bool {
	want := ParseDifficulty(string(d))
	if want == "" {
		return true
	}
	return strings.EqualFold(string(want), string(ParseDifficulty(string(label))))
}

func letterIndex(letter string) int {
	for idx, candidate := range Letters {
		if candidate == letter {
			return idx
		}
	}
	return -1
}
