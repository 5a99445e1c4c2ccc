package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cast"

	"github.com/Edlina007/ml-agents/config"
	"github.com/Edlina007/ml-agents/controller"
	"github.com/Edlina007/ml-agents/trainer"
)

// LearnOptions configures a training session launched with Learn
type LearnOptions struct {
	// ConfigPath is the trainer configuration YAML to load
	ConfigPath string

	// RunID identifies this run. Empty means a fresh UUID.
	RunID string

	// SummariesDir is the directory run summaries are written
	// under. Empty means "./summaries".
	SummariesDir string

	// MaxSteps is the total number of simulation steps to run
	MaxSteps int

	// SaveFreq is the number of steps between model checkpoints
	SaveFreq int

	// Train enables policy updates
	Train bool

	// Lesson supplies the curriculum lesson number, optional
	Lesson func() int

	// Progress draws a console progress bar
	Progress bool

	Logger *slog.Logger
}

// Learn runs a full training session against env using the trainers
// declared in the configuration file. The environment is supplied by
// the embedding application; this module never simulates one itself.
func Learn(env controller.Environment, opts LearnOptions) error {
	if opts.ConfigPath == "" {
		return fmt.Errorf("learn: no trainer configuration given")
	}
	if opts.RunID == "" {
		opts.RunID = runID()
	}
	if opts.SummariesDir == "" {
		opts.SummariesDir = "./summaries"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	file, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("learn: %v", err)
	}

	trainers, err := BuildTrainers(file, env, opts.RunID,
		opts.SummariesDir, opts.Train, logger)
	if err != nil {
		return fmt.Errorf("learn: %v", err)
	}

	ctrl, err := controller.New(env, trainers, controller.Config{
		MaxSteps: opts.MaxSteps,
		SaveFreq: opts.SaveFreq,
		Train:    opts.Train,
		Lesson:   opts.Lesson,
		Progress: opts.Progress,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("learn: %v", err)
	}

	logger.Info("starting training run",
		slog.String("run_id", opts.RunID),
		slog.Int("max_steps", opts.MaxSteps),
		slog.Bool("train", opts.Train))
	return ctrl.Run()
}

// BuildTrainers constructs one trainer per brain the environment
// exposes, resolving each brain's trainer type and hyperparameters
// from the configuration file.
func BuildTrainers(file *config.File, env controller.Environment,
	runID, summariesDir string, train bool,
	logger *slog.Logger) (map[string]trainer.Trainer, error) {
	trainers := make(map[string]trainer.Trainer)

	for _, params := range env.Brains() {
		name := params.BrainName

		hyper := file.Parameters(name)
		hyper[config.KeySummaryPath] = config.SummaryPath(summariesDir,
			runID, name)

		trainerType := cast.ToString(hyper[config.KeyTrainer])
		if trainerType == "" {
			return nil, fmt.Errorf("buildtrainers: brain %v does not "+
				"declare a %v key", name, config.KeyTrainer)
		}

		t, err := trainer.New(trainerType, params, hyper, train, runID,
			logger)
		if err != nil {
			return nil, fmt.Errorf("buildtrainers: brain %v: %v", name,
				err)
		}
		trainers[name] = t
	}

	return trainers, nil
}
