package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"quiz-game/internal/config"
	"quiz-game/internal/logger"
	"quiz-game/internal/quiz"
)

const version = "0.1.0"

// Streams are the terminal the quiz talks to.
type Streams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// app carries state resolved once per invocation by the root command.
type app struct {
	streams Streams
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
}

// NewRootCmd builds the quiz command tree. Running it without a subcommand
// plays a game.
func NewRootCmd(streams Streams) *cobra.Command {
	a := &app{streams: streams, log: zerolog.Nop()}
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "quiz-cli",
		Short: "Terminal multiple-choice quiz",
		Long: `quiz-cli loads a question bank from a JSON, YAML, text or SQLite file,
picks a random set of questions and asks them one by one.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runPlay,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("bank", defaults.Bank.Path, "question bank file")
	flags.String("format", defaults.Bank.Format, "bank format (auto, json, yaml, text, sqlite)")
	flags.String("tier", defaults.Bank.Tier, "difficulty section to load (Easy, Medium, Hard, Extreme); empty loads all")
	flags.Int("max", defaults.Bank.MaxQuestions, "maximum questions to load from the bank (0 for no limit)")
	flags.Int("questions", defaults.Session.Size, "questions per game (0 asks the whole bank)")
	flags.Int64("seed", defaults.Session.Seed, "shuffle seed (0 seeds from the clock)")
	flags.String("log-level", defaults.Logging.Level, "log level (debug, info, warn, error)")
	flags.Bool("no-color", defaults.NoColor, "disable colored output")

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.ErrOut)

	rootCmd.AddCommand(
		newPlayCmd(a),
		newCheckCmd(a),
		newImportCmd(a),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, streams Streams) int {
	cmd := NewRootCmd(streams)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(streams.ErrOut, "error:", err)
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewLoader(a.cfgFile, cmd.Flags()).Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
		Out:    a.streams.ErrOut,
	})
	return nil
}

// loadBank reads the configured bank and logs what the loader reported.
func (a *app) loadBank(ctx context.Context) (*quiz.Bank, error) {
	path := a.cfg.Bank.Path
	format := a.cfg.BankFormat()

	bank, diagnostics, err := quiz.Load(ctx, openSource(a.cfg), a.cfg.Constraints())
	logger.Diagnostics(a.log, path, diagnostics)
	if err != nil {
		return nil, fmt.Errorf("load questions from %s: %w", path, err)
	}

	skipped := countKind(diagnostics, quiz.DiagRecordMalformed)
	if skipped > 0 {
		fmt.Fprintf(a.streams.ErrOut, "warning: skipped %d malformed question records in %s\n", skipped, path)
	}

	a.log.Info().
		Str("source", path).
		Str("format", string(format)).
		Str("tier", a.cfg.Bank.Tier).
		Int("questions", bank.Len()).
		Int("skipped", skipped).
		Msg("question bank loaded")
	return bank, nil
}

func countKind(diagnostics []quiz.Diagnostic, kind string) int {
	count := 0
	for _, diag := range diagnostics {
		if diag.Kind == kind {
			count++
		}
	}
	return count
}
