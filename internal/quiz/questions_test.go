package quiz

import (
	"strings"
	"testing"
)

func TestNewQuestionTrimsAndAssignsID(t *testing.T) {
	item, err := NewQuestion("  2 + 2 = ?\n", []string{"3\n", " 4", "5", "6 "}, "b", DifficultyEasy)
	if err != nil {
		t.Fatalf("NewQuestion returned error: %v", err)
	}

	if item.Question != "2 + 2 = ?" {
		t.Fatalf("question not trimmed, got %q", item.Question)
	}
	if !strings.HasPrefix(item.QuestionID, "q_") || len(item.QuestionID) != 14 {
		t.Fatalf("unexpected question id format: %q", item.QuestionID)
	}
	if item.CorrectAnswer != "B" {
		t.Fatalf("correct answer not normalized, got %q", item.CorrectAnswer)
	}
	if item.CorrectIndex() != 1 || item.CorrectText() != "4" {
		t.Fatalf("unexpected correct option: index=%d text=%q", item.CorrectIndex(), item.CorrectText())
	}

	for idx, option := range item.Options {
		if option.Letter != Letters[idx] {
			t.Fatalf("option %d letter = %q, want %q", idx, option.Letter, Letters[idx])
		}
		if option.Text != strings.TrimSpace(option.Text) {
			t.Fatalf("option %d not trimmed: %q", idx, option.Text)
		}
	}
}

func TestNewQuestionRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		choices []string
		answer  string
	}{
		{name: "empty text", text: "  ", choices: []string{"a", "b", "c", "d"}, answer: "A"},
		{name: "three choices", text: "Q?", choices: []string{"a", "b", "c"}, answer: "A"},
		{name: "five choices", text: "Q?", choices: []string{"a", "b", "c", "d", "e"}, answer: "A"},
		{name: "blank choice", text: "Q?", choices: []string{"a", "\n", "c", "d"}, answer: "A"},
		{name: "letter out of range", text: "Q?", choices: []string{"a", "b", "c", "d"}, answer: "E"},
		{name: "two letters", text: "Q?", choices: []string{"a", "b", "c", "d"}, answer: "AB"},
		{name: "empty answer", text: "Q?", choices: []string{"a", "b", "c", "d"}, answer: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewQuestion(tc.text, tc.choices, tc.answer, ""); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestMakeQuestionIDDiffersWhenOptionOrderDiffers(t *testing.T) {
	q1 := Question{
		Question: "Ordering matters",
		Options: []Option{
			{Letter: "A", Text: "One"},
			{Letter: "B", Text: "Two"},
		},
	}
	q2 := Question{
		Question: "Ordering matters",
		Options: []Option{
			{Letter: "A", Text: "Two"},
			{Letter: "B", Text: "One"},
		},
	}

	id1 := MakeQuestionID(q1)
	id2 := MakeQuestionID(q2)
	if id1 == id2 {
		t.Fatalf("expected different IDs for different option ordering, got %q", id1)
	}
}

func TestQuestionIsCorrectIgnoresCase(t *testing.T) {
	question, err := NewQuestion("2+2?", []string{"3", "4", "5", "6"}, "B", "")
	if err != nil {
		t.Fatalf("NewQuestion returned error: %v", err)
	}

	for _, answer := range []string{"B", "b", " b\n"} {
		if !question.IsCorrect(answer) {
			t.Fatalf("IsCorrect(%q) = false, want true", answer)
		}
	}
	for _, answer := range []string{"A", "c", "", "bb"} {
		if question.IsCorrect(answer) {
			t.Fatalf("IsCorrect(%q) = true, want false", answer)
		}
	}
}

func TestSessionEvaluateResponsesStatuses(t *testing.T) {
	session := Session{Questions: []Question{
		{
			QuestionID: "q1",
			Question:   "Capital of France?",
			Options: []Option{
				{Letter: "A", Text: "Berlin"},
				{Letter: "B", Text: "Paris"},
				{Letter: "C", Text: "Rome"},
				{Letter: "D", Text: "Madrid"},
			},
			CorrectAnswer: "B",
		},
	}}

	results := session.Evaluate([]SubmittedResponse{
		{QuestionID: "q1", Answer: "B"},
		{QuestionID: "q1", Answer: "a"},
		{QuestionID: "q1", Answer: "Z"},
		{QuestionID: "missing", Answer: "A"},
		{QuestionID: "q1", Answer: "AB"},
		{QuestionID: "q1", Answer: "b"},
		{QuestionID: "q1", Answer: ""},
	})

	want := []string{
		StatusCorrect,
		StatusIncorrect,
		StatusInvalidLetter,
		StatusInvalidQuestion,
		StatusInvalidLetter,
		StatusCorrect,
		StatusInvalidLetter,
	}

	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for idx := range want {
		if results[idx].Status != want[idx] {
			t.Fatalf("result %d status = %q, want %q", idx, results[idx].Status, want[idx])
		}
	}
}

func TestNormalizeLetter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim and uppercase", input: " a ", want: "A"},
		{name: "already uppercase", input: "B", want: "B"},
		{name: "trailing newline", input: "c\n", want: "C"},
		{name: "empty", input: "", want: ""},
		{name: "multiple chars", input: "AB", want: ""},
		{name: "whitespace", input: "   ", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeLetter(tc.input); got != tc.want {
				t.Fatalf("NormalizeLetter(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input string
		want  Difficulty
	}{
		{input: "#Easy", want: DifficultyEasy},
		{input: "easy", want: DifficultyEasy},
		{input: " #HARD ", want: DifficultyHard},
		{input: "#Extreme", want: DifficultyExtreme},
		{input: "#Trivia", want: Difficulty("Trivia")},
		{input: "", want: ""},
	}

	for _, tc := range tests {
		if got := ParseDifficulty(tc.input); got != tc.want {
			t.Fatalf("ParseDifficulty(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
