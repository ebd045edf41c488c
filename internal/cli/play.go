package cli

import (
	"time"

	"github.com/spf13/cobra"

	"quiz-game/internal/quiz"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a game (default)",
		Long:  `Load the question bank, pick a random set of questions and ask them.`,
		Args:  cobra.NoArgs,
		RunE:  a.runPlay,
	}
}

func (a *app) runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	bank, err := a.loadBank(ctx)
	if err != nil {
		return err
	}

	seed := a.cfg.Session.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session := quiz.SelectSession(bank, a.cfg.Session.Size, quiz.NewRand(seed))
	a.log.Info().
		Str("session_id", session.ID).
		Int64("seed", seed).
		Int("questions", session.Len()).
		Msg("session started")

	score, err := Run(ctx, a.streams.In, a.streams.Out, session, RunOptions{NoColor: a.cfg.NoColor})
	if err != nil {
		return err
	}

	a.log.Info().
		Str("session_id", session.ID).
		Int("correct", score.Correct).
		Int("asked", score.Asked).
		Str("tier", string(score.Tier())).
		Msg("session finished")
	return nil
}
