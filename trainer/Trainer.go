// Package trainer defines the contract every concrete trainer
// implements and provides the shared bookkeeping all trainers carry:
// wall-clock training metrics, periodic statistic summaries, and
// delegation to the policy that owns the trainable model.
//
// A concrete trainer embeds a *Base, which supplies the shared
// operations, and overrides the algorithm-specific operations. The
// external driving loop owns control flow: it asks the trainer for
// actions, feeds experiences back, checks readiness, and triggers
// policy updates and periodic summaries.
package trainer

import (
	"errors"

	"github.com/Edlina007/ml-agents/brain"
)

// ErrNotImplemented marks a call to a trainer operation that the
// concrete trainer was required to override and did not. It signals a
// programming defect, never a runtime condition.
var ErrNotImplemented = errors.New("not implemented")

// ErrMissingHyperparameter marks a trainer configuration that lacks a
// hyperparameter the trainer declared as required
var ErrMissingHyperparameter = errors.New("missing hyperparameter")

// Trainer is the lifecycle contract of one brain's trainer. The
// driving loop calls GetAction while stepping the environment, records
// the resulting transitions with AddExperiences and
// ProcessExperiences, and runs UpdatePolicy whenever IsReadyUpdate
// reports that enough experience has accumulated.
//
// Base implements the whole interface. The shared operations
// (GetAction, SaveModel, ExportModel, WriteSummary, WriteTextSummary,
// WriteTrainingMetrics) are usable as-is; the remaining operations are
// loud stubs that panic with ErrNotImplemented and must be overridden
// by the concrete trainer.
type Trainer interface {
	// Parameters returns the hyperparameters the trainer runs with
	Parameters() map[string]interface{}

	// GraphScope returns the model graph scope the trainer trains
	// under
	GraphScope() string

	// MaxSteps returns the step count at which the trainer should be
	// stopped
	MaxSteps() int

	// Step returns the number of training steps performed so far
	Step() int

	// LastReward returns the most recent reward estimate
	LastReward() float64

	// IncrementStepAndUpdateLastReward advances the step count and
	// refreshes the last reward estimate
	IncrementStepAndUpdateLastReward()

	// GetAction selects actions for the brain's agents using the
	// current policy
	GetAction(info *brain.Info) (brain.ActionInfo, error)

	// AddExperiences records the transition between two simulation
	// steps, together with the policy outputs that produced it, in
	// the trainer's experience history
	AddExperiences(curr, next brain.AllInfo, outputs brain.ActionInfo) error

	// ProcessExperiences checks agent histories for processing
	// conditions, computing whatever the update step needs (value
	// and advantage targets, bootstrapping, ...)
	ProcessExperiences(curr, next brain.AllInfo) error

	// EndEpisode signals that the episode ended and buffered
	// history must be reset
	EndEpisode()

	// IsReadyUpdate reports whether enough experience has
	// accumulated to run UpdatePolicy
	IsReadyUpdate() bool

	// UpdatePolicy updates the model from buffered experience
	UpdatePolicy() error

	// SaveModel checkpoints the policy's model at the current step
	SaveModel() error

	// ExportModel writes the policy's model in its final form
	ExportModel() error

	// WriteSummary emits the periodic statistics summary when
	// globalStep lands on the summary frequency
	WriteSummary(globalStep, lessonNum int) error

	// WriteTextSummary emits a descriptive text table, best-effort
	WriteTextSummary(key string, table map[string]string)

	// WriteTrainingMetrics writes the accumulated timing rows to the
	// trainer's metrics CSV
	WriteTrainingMetrics() error
}
