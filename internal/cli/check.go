package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"quiz-game/internal/quiz"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the question bank",
		Long: `Load the question bank without playing and report how many questions
were accepted, how many records were skipped and why.`,
		Args: cobra.NoArgs,
		RunE: a.runCheck,
	}
}

func (a *app) runCheck(cmd *cobra.Command, _ []string) error {
	out := a.streams.Out
	bank, diagnostics, err := quiz.Load(cmd.Context(), openSource(a.cfg), a.cfg.Constraints())

	fmt.Fprintf(out, "Bank: %s (%s)\n", a.cfg.Bank.Path, a.cfg.BankFormat())
	for _, diag := range diagnostics {
		fmt.Fprintf(out, "  %s\n", diag)
	}
	if err != nil {
		return fmt.Errorf("load questions from %s: %w", a.cfg.Bank.Path, err)
	}

	byTier := make(map[quiz.Difficulty]int)
	for _, question := range bank.Questions() {
		byTier[question.Difficulty]++
	}
	tiers := make([]string, 0, len(byTier))
	for tier := range byTier {
		tiers = append(tiers, string(tier))
	}
	sort.Strings(tiers)

	fmt.Fprintf(out, "Questions: %d\n", bank.Len())
	fmt.Fprintf(out, "Skipped: %d\n", countKind(diagnostics, quiz.DiagRecordMalformed))
	for _, tier := range tiers {
		label := tier
		if label == "" {
			label = "(untagged)"
		}
		fmt.Fprintf(out, "  %s: %d\n", label, byTier[quiz.Difficulty(tier)])
	}
	return nil
}
