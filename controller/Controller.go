// Package controller implements the loop that drives per-brain
// trainers against a simulated environment: select actions, step the
// simulation, feed experiences back, update policies when ready, and
// emit periodic summaries and model checkpoints.
package controller

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/Edlina007/ml-agents/brain"
	"github.com/Edlina007/ml-agents/trainer"
	"github.com/Edlina007/ml-agents/utils/progressbar"
)

// Config configures a training run
type Config struct {
	// MaxSteps is the total number of simulation steps to run
	MaxSteps int

	// SaveFreq is the number of simulation steps between model
	// checkpoints. Zero disables periodic checkpoints; a final save
	// still happens at the end of a training run.
	SaveFreq int

	// Train enables policy updates. With Train false the loop still
	// steps the simulation and records statistics, but never
	// updates or saves models.
	Train bool

	// Lesson supplies the current curriculum lesson number for
	// summaries. Nil means lesson 0 throughout.
	Lesson func() int

	// Progress draws a console progress bar on ProgressOut during
	// the run
	Progress    bool
	ProgressOut io.Writer

	Logger *slog.Logger
}

// Controller owns a training run: one Environment and one Trainer per
// brain the environment exposes.
type Controller struct {
	env      Environment
	trainers map[string]trainer.Trainer

	maxSteps int
	saveFreq int
	train    bool
	lesson   func() int

	progress    bool
	progressOut io.Writer

	logger *slog.Logger
}

// New returns a Controller for the given environment and trainers.
// Every brain the environment exposes must have a trainer under its
// name.
func New(env Environment, trainers map[string]trainer.Trainer,
	c Config) (*Controller, error) {
	if c.MaxSteps <= 0 {
		return nil, fmt.Errorf("new: max steps must be positive, got %v",
			c.MaxSteps)
	}
	for _, params := range env.Brains() {
		if _, ok := trainers[params.BrainName]; !ok {
			return nil, fmt.Errorf("new: no trainer for brain %v",
				params.BrainName)
		}
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lesson := c.Lesson
	if lesson == nil {
		lesson = func() int { return 0 }
	}
	out := c.ProgressOut
	if out == nil {
		out = os.Stdout
	}

	return &Controller{
		env:         env,
		trainers:    trainers,
		maxSteps:    c.MaxSteps,
		saveFreq:    c.SaveFreq,
		train:       c.Train,
		lesson:      lesson,
		progress:    c.Progress,
		progressOut: out,
		logger:      logger,
	}, nil
}

// Run runs the whole training loop for the configured number of
// simulation steps, then writes final metrics and, when training,
// saves and exports every model.
func (c *Controller) Run() error {
	curr, err := c.env.Reset()
	if err != nil {
		return fmt.Errorf("run: could not reset environment: %v", err)
	}

	var bar *progressbar.Bar
	if c.progress {
		bar = progressbar.New(c.progressOut, 65, c.maxSteps)
	}

	names := c.brainNames()

	for step := 1; step <= c.maxSteps; step++ {
		if c.env.GlobalDone() {
			for _, name := range names {
				c.trainers[name].EndEpisode()
			}
			if curr, err = c.env.Reset(); err != nil {
				return fmt.Errorf("run: could not reset environment: %v",
					err)
			}
		}

		// Select one action batch per brain
		actions := make(map[string]brain.ActionInfo, len(c.trainers))
		for _, name := range names {
			info, ok := curr[name]
			if !ok {
				return fmt.Errorf("run: environment returned no data "+
					"for brain %v", name)
			}
			action, err := c.trainers[name].GetAction(info)
			if err != nil {
				return fmt.Errorf("run: could not get action for "+
					"brain %v: %v", name, err)
			}
			actions[name] = action
		}

		next, err := c.env.Step(actions)
		if err != nil {
			return fmt.Errorf("run: could not step environment: %v", err)
		}

		// Feed the transition to each trainer and update when ready
		for _, name := range names {
			t := c.trainers[name]
			if err := t.AddExperiences(curr, next, actions[name]); err != nil {
				return fmt.Errorf("run: brain %v: %v", name, err)
			}
			if err := t.ProcessExperiences(curr, next); err != nil {
				return fmt.Errorf("run: brain %v: %v", name, err)
			}

			if t.IsReadyUpdate() && c.train && t.Step() <= t.MaxSteps() {
				if err := t.UpdatePolicy(); err != nil {
					return fmt.Errorf("run: brain %v: %v", name, err)
				}
			}

			if err := t.WriteSummary(step, c.lesson()); err != nil {
				return fmt.Errorf("run: brain %v: %v", name, err)
			}

			if c.train && t.Step() <= t.MaxSteps() {
				t.IncrementStepAndUpdateLastReward()
			}
		}

		if c.train && c.saveFreq > 0 && step%c.saveFreq == 0 {
			if err := c.saveModels(); err != nil {
				return fmt.Errorf("run: %v", err)
			}
		}

		curr = next

		if bar != nil {
			bar.Increment()
			bar.SetSuffix(c.rewardSuffix(names))
			bar.Display()
		}
	}

	if bar != nil {
		bar.Finish()
	}

	return c.finish(names)
}

// finish writes every trainer's timing metrics and, when training,
// saves and exports the final models
func (c *Controller) finish(names []string) error {
	for _, name := range names {
		if err := c.trainers[name].WriteTrainingMetrics(); err != nil {
			return fmt.Errorf("finish: brain %v: %v", name, err)
		}
	}
	if !c.train {
		return nil
	}
	if err := c.saveModels(); err != nil {
		return fmt.Errorf("finish: %v", err)
	}
	for _, name := range names {
		if err := c.trainers[name].ExportModel(); err != nil {
			return fmt.Errorf("finish: brain %v: %v", name, err)
		}
	}
	return nil
}

func (c *Controller) saveModels() error {
	for name, t := range c.trainers {
		if err := t.SaveModel(); err != nil {
			return fmt.Errorf("savemodels: brain %v: %v", name, err)
		}
	}
	c.logger.Debug("saved models", slog.Int("trainers", len(c.trainers)))
	return nil
}

// rewardSuffix summarizes each brain's last reward for the progress
// bar
func (c *Controller) rewardSuffix(names []string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%v: %.3f", name,
			c.trainers[name].LastReward()))
	}
	return strings.Join(parts, ", ")
}

func (c *Controller) brainNames() []string {
	names := make([]string, 0, len(c.trainers))
	for name := range c.trainers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
