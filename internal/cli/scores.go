package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Quiz score commands",
	}

	cmd.AddCommand(newScoreSubmitCmd())
	cmd.AddCommand(newScoreListCmd())
	cmd.AddCommand(newScoreGetCmd())

	return cmd
}

func newScoreSubmitCmd() *cobra.Command {
	var (
		category string
		score    int
		seconds  float64
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a quiz result",
		Long: `Submit a quiz result. The stored best score for the category is only
replaced by a higher score, or an equal score in less time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" {
				return fmt.Errorf("--category is required")
			}

			req := map[string]any{
				"category": category,
				"score":    score,
				"time":     seconds,
			}
			var result SubmitResult

			if err := client.Post(cmd.Context(), "/api/v1/scores", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Quiz category (required)")
	cmd.Flags().IntVar(&score, "score", 0, "Number of correct answers")
	cmd.Flags().Float64Var(&seconds, "time", 0, "Time taken in seconds")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("score")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newScoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your best score per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ScoreList

			if err := client.Get(cmd.Context(), "/api/v1/scores", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newScoreGetCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show your best score for one category",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ScoreResult

			if err := client.Get(cmd.Context(), "/api/v1/scores/"+url.PathEscape(category), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result.Score)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Quiz category (required)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
