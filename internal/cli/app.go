package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"quiz-game/internal/quiz"
)

const maxAttempts = 3

type RunOptions struct {
	NoColor bool
}

// Run asks every question of the session on out, reading answers from in,
// and returns the score. A question whose answer cannot be read after
// maxAttempts tries is submitted as an invalid letter and counts as wrong.
func Run(ctx context.Context, in io.Reader, out io.Writer, session quiz.Session, opts RunOptions) (quiz.Score, error) {
	style := newStyles(opts.NoColor)
	reader := bufio.NewReader(in)
	results := make([]quiz.ResponseResult, 0, session.Len())

	fmt.Fprintln(out, style.renderBanner())

	for idx, question := range session.Questions {
		if err := ctx.Err(); err != nil {
			return quiz.ScoreResults(results), err
		}

		printQuestion(out, style, idx+1, question)

		answer := getAnswer(reader, out)
		fmt.Fprintln(out)
		result := session.Evaluate([]quiz.SubmittedResponse{{
			QuestionID: question.QuestionID,
			Answer:     answer,
		}})[0]
		results = append(results, result)

		correct := fmt.Sprintf("%s. %s", question.CorrectAnswer, question.CorrectText())
		switch result.Status {
		case quiz.StatusCorrect:
			fmt.Fprintln(out, style.correct("Correct!"))
		case quiz.StatusIncorrect:
			fmt.Fprintln(out, style.incorrect("Incorrect!"))
			fmt.Fprintf(out, "The correct answer was: %s\n", correct)
		default:
			fmt.Fprintln(out, style.muted("Skipping. The correct answer was: "+correct))
		}

		fmt.Fprintln(out)
	}

	score := quiz.ScoreResults(results)
	printSummary(out, style, score)
	return score, nil
}

func printQuestion(out io.Writer, style styles, number int, question quiz.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n\n", style.heading(fmt.Sprintf("Q%d:", number)), question.Question)
	for _, option := range question.Options {
		fmt.Fprintf(out, "%s. %s\n", option.Letter, option.Text)
	}
	fmt.Fprintln(out)
}

// getAnswer returns the first valid letter read, or "" when none arrives
// within maxAttempts.
func getAnswer(reader *bufio.Reader, out io.Writer) string {
	maxLetter := quiz.Letters[len(quiz.Letters)-1]

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Fprintf(out, "Your answer (%s): ", strings.Join(quiz.Letters[:], "/"))

		userAnswer, err := reader.ReadString('\n')
		if err != nil && userAnswer == "" {
			return ""
		}

		letter := quiz.NormalizeLetter(userAnswer)
		if letter >= "A" && letter <= maxLetter {
			return letter
		}
		if err != nil {
			return ""
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter a letter A-%s.\n", maxLetter)
		}
	}

	return ""
}

func printSummary(out io.Writer, style styles, score quiz.Score) {
	fmt.Fprintf(out, "\nYour total score: %d out of %d (%.0f%%)\n", score.Correct, score.Asked, score.Percent())
	fmt.Fprintln(out, style.heading(score.Tier().Message()))
}
