package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quiz-game-app/internal/app"
	"quiz-game-app/internal/config"
	"quiz-game-app/internal/domain"
)

// NewScoresCmd prints the score table from the configured answer store.
func NewScoresCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Print the current score table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), *configPath, func(service *app.QuizService) error {
				report, err := service.ScoreReport(cmd.Context())
				if err != nil {
					return err
				}
				return printScores(cmd.OutOrStdout(), report)
			})
		},
	}
}

// NewWinnersCmd prints everyone tied on the top score.
func NewWinnersCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "winners",
		Short: "Print the current winners",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), *configPath, func(service *app.QuizService) error {
				report, err := service.Winners(cmd.Context())
				if err != nil {
					return err
				}
				printWinners(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
}

// NewClearAnswersCmd empties the answer store.
func NewClearAnswersCmd(configPath *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear-answers",
		Short: "Delete every recorded answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear answers without --yes")
			}
			return withService(cmd.Context(), *configPath, func(service *app.QuizService) error {
				if err := service.ClearAllAnswers(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "answers cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func withService(ctx context.Context, configPath string, fn func(*app.QuizService) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	c, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c.service)
}

func printScores(w io.Writer, report domain.ScoreReport) error {
	if len(report.Entries) == 0 {
		_, err := fmt.Fprintln(w, "no answers recorded")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPARTICIPANT\tSCORE")
	for _, e := range report.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", e.Rank, e.Participant, e.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := report.Stats
	_, err := fmt.Fprintf(w, "\n%d participants, mean %.2f, max %d, min %d\n", s.Participants, s.Mean, s.Max, s.Min)
	return err
}

func printWinners(w io.Writer, report domain.WinnerReport) {
	if len(report.Winners) == 0 {
		fmt.Fprintln(w, "no winners yet")
		return
	}
	fmt.Fprintf(w, "%s (%d points)\n", strings.Join(report.Winners, ", "), report.TopScore)
}
