package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"quiz-game/internal/quiz"
)

// Config is the quiz configuration assembled from defaults, an optional
// config file, QUIZ_* environment variables and command-line flags.
type Config struct {
	// Question bank
	Bank BankConfig `json:"bank" mapstructure:"bank"`

	// Session selection
	Session SessionConfig `json:"session" mapstructure:"session"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Disable terminal styling
	NoColor bool `json:"no_color" mapstructure:"no_color"`
}

// BankConfig locates and bounds the question bank.
type BankConfig struct {
	Path         string `json:"path" mapstructure:"path"`
	Format       string `json:"format" mapstructure:"format"` // auto, json, yaml, text, sqlite
	Tier         string `json:"tier" mapstructure:"tier"`     // Easy, Medium, Hard, Extreme or empty for all
	MaxQuestions int    `json:"max_questions" mapstructure:"max_questions"`
}

// SessionConfig controls question selection. Seed 0 seeds from the clock.
type SessionConfig struct {
	Size int   `json:"size" mapstructure:"size"`
	Seed int64 `json:"seed" mapstructure:"seed"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Bank: BankConfig{
			Path:         "questions.json",
			Format:       string(quiz.FormatAuto),
			MaxQuestions: 1000,
		},
		Session: SessionConfig{
			Size: quiz.DefaultSessionSize,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Pretty: true,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Bank.Path) == "" {
		errs = append(errs, errors.New("bank.path is required"))
	}
	if _, err := quiz.ParseFormat(c.Bank.Format); err != nil {
		errs = append(errs, fmt.Errorf("bank.format: %w", err))
	}
	if c.Bank.MaxQuestions < 0 {
		errs = append(errs, errors.New("bank.max_questions must not be negative"))
	}
	if c.Session.Size < 0 {
		errs = append(errs, errors.New("session.size must not be negative"))
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	return errors.Join(errs...)
}

// Constraints converts the bank settings for the loader.
func (c *Config) Constraints() quiz.Constraints {
	return quiz.Constraints{
		Max:  c.Bank.MaxQuestions,
		Tier: quiz.ParseDifficulty(c.Bank.Tier),
	}
}

// BankFormat resolves the configured format against the bank path.
func (c *Config) BankFormat() quiz.Format {
	format, err := quiz.ParseFormat(c.Bank.Format)
	if err != nil {
		format = quiz.FormatAuto
	}
	return quiz.DetectFormat(c.Bank.Path, format)
}
