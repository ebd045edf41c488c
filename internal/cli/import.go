package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quiz-game/internal/quiz"
	"quiz-game/internal/quiz/sqlite"
)

func newImportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the question bank into a SQLite database",
		Long: `Load the configured question bank and upsert every valid question into
the SQLite database given by --out, creating it if needed. The database can
then be played with --bank <file> --format sqlite.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runImport(cmd, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "SQLite database to write")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, out string) error {
	if out == "" {
		return errors.New("--out is required")
	}
	if a.cfg.BankFormat() == quiz.FormatSQLite && out == a.cfg.Bank.Path {
		return errors.New("--out must differ from the bank being imported")
	}

	ctx := cmd.Context()
	bank, err := a.loadBank(ctx)
	if err != nil {
		return err
	}

	store, err := sqlite.NewSQLiteStore(out)
	if err != nil {
		return fmt.Errorf("open %s: %w", out, err)
	}
	defer store.Close()

	written, err := store.ImportQuestions(ctx, bank.Questions(), a.cfg.Bank.Path)
	if err != nil {
		return fmt.Errorf("import into %s: %w", out, err)
	}

	a.log.Info().Str("out", out).Int("questions", written).Msg("questions imported")
	fmt.Fprintf(a.streams.Out, "Imported %d questions into %s\n", written, out)
	return nil
}
