package cli

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/Edlina007/ml-agents/config"
)

// newCheckCommand builds the command that validates a trainer
// configuration file without running anything
func newCheckCommand() *cobra.Command {
	var summariesDir string

	cmd := &cobra.Command{
		Use:   "check <trainer-config.yaml>",
		Short: "Validate a trainer configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.Load(args[0])
			if err != nil {
				return err
			}

			brains := file.Brains()
			if len(brains) == 0 {
				return fmt.Errorf("check: %v declares no brain sections",
					args[0])
			}

			run := runID()
			for _, name := range brains {
				params := file.Parameters(name)

				trainerType := cast.ToString(params[config.KeyTrainer])
				if trainerType == "" {
					return fmt.Errorf("check: brain %v does not declare "+
						"a %v key", name, config.KeyTrainer)
				}
				if freq := cast.ToInt(params[config.KeySummaryFreq]); freq <= 0 {
					return fmt.Errorf("check: brain %v needs a positive "+
						"%v, got %v", name, config.KeySummaryFreq, freq)
				}

				fmt.Fprintf(cmd.OutOrStdout(),
					"%v:\n\ttrainer: %v\n\tsummary path: %v\n",
					name, trainerType,
					config.SummaryPath(summariesDir, run, name))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&summariesDir, "summaries-dir", "./summaries",
		"directory run summaries are written under")
	return cmd
}
