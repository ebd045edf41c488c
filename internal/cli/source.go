package cli

import (
	"quiz-game/internal/config"
	"quiz-game/internal/quiz"
	"quiz-game/internal/quiz/sqlite"
)

func openSource(cfg *config.Config) quiz.Source {
	format := cfg.BankFormat()
	if format == quiz.FormatSQLite {
		return sqlite.Source{Path: cfg.Bank.Path}
	}
	return quiz.FileSource{Path: cfg.Bank.Path, Format: format}
}
