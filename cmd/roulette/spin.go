package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vmunix/roulette/internal/recommend"
	"github.com/vmunix/roulette/internal/roulette"
	"github.com/vmunix/roulette/internal/screen"
)

type spinFlags struct {
	category string
	minScore int
	json     bool
}

func newSpinCmd(global *globalFlags) *cobra.Command {
	flags := &spinFlags{}

	cmd := &cobra.Command{
		Use:   "spin",
		Short: "Spin once and print the recommendation",
		Long: `Spin once with the given filter and print the recommendation.

Examples:
  roulette spin
  roulette spin --type movies --min-score 7
  roulette spin --type tv --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSpin(cmd, global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.category, "type", "t", "tv", "Category: tv or movies")
	cmd.Flags().IntVarP(&flags.minScore, "min-score", "s", 0, "Minimum IMDB score (0-9, 0 means any)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output as JSON")
	return cmd
}

func runSpin(cmd *cobra.Command, global *globalFlags, flags *spinFlags) error {
	category, err := recommend.ParseCategory(flags.category)
	if err != nil {
		return err
	}
	if flags.minScore < 0 || flags.minScore > recommend.MaxScore {
		return fmt.Errorf("--min-score must be between 0 and %d, got %d", recommend.MaxScore, flags.minScore)
	}

	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy := roulette.FailureShowsForm
	if cfg.Screen.ShowErrors {
		policy = roulette.FailureShowsError
	}
	state := roulette.New(policy).
		SetCategory(category).
		SetMinimumScore(flags.minScore).
		Submit()

	id := uuid.NewString()
	q := state.Filter().Query()
	logger.Debug("spin started", "request_id", id, "category", q.Category, "min_score", q.MinimumScore)

	start := time.Now()
	rec, err := newRecommendClient(cfg).Fetch(recommend.WithRequestID(ctx, id), q)
	result := roulette.ResultOf(rec, err)
	state = state.Settle(result)

	if result.Err != nil {
		logger.Warn("spin failed", "request_id", id, "kind", result.Kind, "error", result.Err,
			"duration_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("spin failed: %w", result.Err)
	}
	logger.Debug("spin settled", "request_id", id, "id", rec.ID, "duration_ms", time.Since(start).Milliseconds())

	v := roulette.Render(state)
	if flags.json {
		return printJSON(cmd.OutOrStdout(), v.Recommendation)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s · %s\n", v.Filter.Category.Label(), v.ScoreLabel)
	fmt.Fprintln(out, screen.RecommendationView(v.Recommendation, 0))
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
