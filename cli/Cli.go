// Package cli implements the mlagents-learn command line interface:
// configuration checking, trainer listing, and the entry point that
// embedding applications use to launch a training session against
// their own environment.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Edlina007/ml-agents/trainer"
)

var (
	flagRunID string
	flagDebug bool
)

// NewRootCommand returns the mlagents-learn root command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mlagents-learn",
		Short: "Train agent brains in a simulated environment",
		Long: "mlagents-learn drives reinforcement-learning trainers " +
			"against a simulated environment, writing periodic summaries " +
			"and timing metrics for each brain being trained.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(flagDebug)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagRunID, "run-id", "",
		"identifier for this training run (default: a fresh UUID)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"enable debug logging")

	root.AddCommand(newCheckCommand())
	root.AddCommand(newTrainersCommand())
	return root
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// runID returns the run identifier from the --run-id flag, or a fresh
// UUID when the flag was not given
func runID() string {
	if flagRunID != "" {
		return flagRunID
	}
	return uuid.NewString()
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func newTrainersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trainers",
		Short: "List the trainer types linked into this binary",
		RunE: func(cmd *cobra.Command, args []string) error {
			types := trainer.Types()
			if len(types) == 0 {
				return fmt.Errorf("no trainer types registered in this " +
					"binary")
			}
			for _, name := range types {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
