package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"quiz-game/internal/quiz"
)

// ImportQuestions upserts questions into the bank, appending new ones after
// the existing positions. It returns how many rows were written.
func (s *SQLiteStore) ImportQuestions(ctx context.Context, questions []quiz.Question, source string) (int, error) {
	if len(questions) == 0 {
		return 0, errors.New("no questions to import")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var nextPosition int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM questions`).Scan(&nextPosition); err != nil {
		return 0, err
	}

	now := time.Now().UTC().UnixNano()
	for idx := range questions {
		question := questions[idx]
		if question.QuestionID == "" {
			question.QuestionID = quiz.MakeQuestionID(question)
		}

		optionsJSON, err := json.Marshal(question.Options)
		if err != nil {
			return 0, err
		}

		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO questions (question_id, prompt, options_json, correct_answer, difficulty, position, source, created_at_unix)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(question_id) DO UPDATE SET
				prompt = excluded.prompt,
				options_json = excluded.options_json,
				correct_answer = excluded.correct_answer,
				difficulty = excluded.difficulty,
				source = excluded.source`,
			question.QuestionID,
			question.Question,
			string(optionsJSON),
			question.CorrectAnswer,
			string(question.Difficulty),
			nextPosition+idx,
			source,
			now,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(questions), nil
}

// Load implements quiz.Source. Rows whose options cannot be decoded or that
// fail validation are skipped with a diagnostic.
func (s *SQLiteStore) Load(ctx context.Context, constraints quiz.Constraints) (quiz.Result, error) {
	tier := string(quiz.ParseDifficulty(string(constraints.Tier)))

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT prompt, options_json, correct_answer, difficulty
		 FROM questions
		 WHERE ? = '' OR difficulty = ? COLLATE NOCASE
		 ORDER BY position ASC, question_id ASC`,
		tier,
		tier,
	)
	if err != nil {
		return quiz.SourceFailure(nil, quiz.ErrSourceEmptyOrMalformed, fmt.Sprintf("query %s: %v", s.path, err))
	}
	defer rows.Close()

	collector := quiz.NewCollector(constraints)
	record := 0
	for rows.Next() {
		record++
		var (
			prompt        string
			optionsJSON   string
			correctAnswer string
			difficulty    string
		)
		if err := rows.Scan(&prompt, &optionsJSON, &correctAnswer, &difficulty); err != nil {
			collector.Malformed(record, 0, err)
			continue
		}

		var options []quiz.Option
		if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
			collector.Malformed(record, 0, fmt.Errorf("decode options: %w", err))
			continue
		}
		choices := make([]string, 0, len(options))
		for _, option := range options {
			choices = append(choices, option.Text)
		}

		question, err := quiz.NewQuestion(prompt, choices, correctAnswer, quiz.ParseDifficulty(difficulty))
		if err != nil {
			collector.Malformed(record, 0, err)
			continue
		}
		collector.Add(question)
	}
	if err := rows.Err(); err != nil {
		return collector.Fail(quiz.ErrSourceUnavailable, fmt.Sprintf("read %s: %v", s.path, err))
	}

	if record == 0 && tier != "" {
		return collector.Fail(quiz.ErrSourceEmptyOrMalformed, fmt.Sprintf("no %s questions in %s", tier, s.path))
	}
	return collector.Finish()
}

// Source loads a bank database from Path, opening it read-only for the
// duration of the load.
type Source struct {
	Path string
}

func (s Source) Load(ctx context.Context, constraints quiz.Constraints) (quiz.Result, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return quiz.SourceFailure(nil, quiz.ErrSourceUnavailable, fmt.Sprintf("unable to open %s: %v", s.Path, err))
	}

	store, err := OpenReadOnly(s.Path)
	if err != nil {
		return quiz.SourceFailure(nil, quiz.ErrSourceUnavailable, fmt.Sprintf("unable to open %s: %v", s.Path, err))
	}
	defer store.Close()

	return store.Load(ctx, constraints)
}
