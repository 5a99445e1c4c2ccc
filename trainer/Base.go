package trainer

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cast"

	"github.com/Edlina007/ml-agents/brain"
	"github.com/Edlina007/ml-agents/config"
	"github.com/Edlina007/ml-agents/policy"
	"github.com/Edlina007/ml-agents/summary"
)

// BaseConfig bundles everything a Base needs at construction
type BaseConfig struct {
	// TrainerType names the concrete trainer, for log and error
	// messages ("ppo", "bc", ...)
	TrainerType string

	BrainName string
	RunID     string

	// Parameters holds the trainer's hyperparameters. It must carry
	// at least summary_path and summary_freq.
	Parameters map[string]interface{}

	// Training disables policy updates when false
	Training bool

	Policy policy.Policy

	// Writer receives the periodic summaries. When nil, a file
	// writer under summary_path is created.
	Writer summary.Writer

	// Logger receives the trainer's log output. When nil, the
	// process default is used.
	Logger *slog.Logger
}

// Base carries the state and shared operations common to every
// trainer: the hyperparameter mapping, the statistics accumulated
// between summaries, the wall-clock metrics recorder, and the policy
// collaborator the trainer drives.
//
// Base implements all of Trainer so that a concrete trainer only
// overrides the algorithm-specific operations. The operations Base
// does not implement for real panic with an error wrapping
// ErrNotImplemented; reaching one of those panics means a concrete
// trainer forgot an override, a defect to fix rather than an error to
// handle.
type Base struct {
	trainerType string
	brainName   string
	runID       string

	params     map[string]interface{}
	isTraining bool

	summaryPath string
	summaryFreq int

	pol     policy.Policy
	writer  summary.Writer
	stats   *Stats
	metrics *Metrics
	logger  *slog.Logger

	// trainer is the concrete trainer embedding this Base, bound
	// with Bind. Shared operations consult it for the dynamic step
	// counts. Until Bind is called it points back at the Base
	// itself, so those operations fail with the not-implemented
	// contract error.
	trainer Trainer
}

// NewBase validates the base hyperparameters, creates the summary
// directory, and returns a Base ready to be embedded by a concrete
// trainer. The returned Base's metrics CSV lives next to the summary
// directory, at summary_path + ".csv".
func NewBase(c BaseConfig) (*Base, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b := &Base{
		trainerType: c.TrainerType,
		brainName:   c.BrainName,
		runID:       c.RunID,
		params:      c.Parameters,
		isTraining:  c.Training,
		pol:         c.Policy,
		writer:      c.Writer,
		stats:       NewStats(),
		logger:      logger,
	}
	b.trainer = b

	if err := b.CheckParamKeys(config.KeySummaryPath,
		config.KeySummaryFreq); err != nil {
		return nil, err
	}

	b.summaryPath = cast.ToString(c.Parameters[config.KeySummaryPath])
	b.summaryFreq = cast.ToInt(c.Parameters[config.KeySummaryFreq])
	if b.summaryFreq <= 0 {
		return nil, fmt.Errorf("newbase: summary_freq must be positive "+
			"for the %v trainer of brain %v, got %v", c.TrainerType,
			c.BrainName, b.summaryFreq)
	}

	if err := os.MkdirAll(b.summaryPath, 0o755); err != nil {
		return nil, fmt.Errorf("newbase: could not create summary "+
			"directory: %v", err)
	}

	if b.writer == nil {
		w, err := summary.NewFileWriter(b.summaryPath)
		if err != nil {
			return nil, fmt.Errorf("newbase: %v", err)
		}
		b.writer = w
	}

	b.metrics = NewMetrics(b.summaryPath+".csv", c.BrainName, logger)
	return b, nil
}

// Bind registers the concrete trainer embedding this Base so that the
// shared operations can consult the trainer's step counts. Concrete
// trainers call Bind once, right after constructing themselves.
func (b *Base) Bind(t Trainer) {
	if t == nil {
		panic("bind: nil trainer")
	}
	b.trainer = t
}

func (b *Base) String() string {
	return fmt.Sprintf("%v trainer of brain %v", b.trainerType, b.brainName)
}

// BrainName returns the name of the brain being trained
func (b *Base) BrainName() string { return b.brainName }

// RunID returns the identifier of the current run
func (b *Base) RunID() string { return b.runID }

// IsTraining reports whether the trainer is set for training rather
// than inference only
func (b *Base) IsTraining() bool { return b.isTraining }

// Hyperparameters returns the raw hyperparameter mapping the trainer
// was constructed with
func (b *Base) Hyperparameters() map[string]interface{} { return b.params }

// Policy returns the policy collaborator the trainer drives
func (b *Base) Policy() policy.Policy { return b.pol }

// Stats returns the statistics accumulator samples are recorded in
// between summaries
func (b *Base) Stats() *Stats { return b.stats }

// Metrics returns the wall-clock metrics recorder
func (b *Base) Metrics() *Metrics { return b.metrics }

// Logger returns the logger the trainer was constructed with
func (b *Base) Logger() *slog.Logger { return b.logger }

// SummaryFreq returns the number of simulation steps between summary
// flushes
func (b *Base) SummaryFreq() int { return b.summaryFreq }

// CheckParamKeys verifies that every one of the given hyperparameter
// keys is present in the trainer's configuration. The returned error
// names the first missing key, the trainer type, and the brain, and
// wraps ErrMissingHyperparameter.
func (b *Base) CheckParamKeys(keys ...string) error {
	for _, key := range keys {
		if _, ok := b.params[key]; !ok {
			return fmt.Errorf("checkparamkeys: the hyperparameter %q "+
				"could not be found for the %v trainer of brain %v: %w",
				key, b.trainerType, b.brainName,
				ErrMissingHyperparameter)
		}
	}
	return nil
}

// GetAction selects actions with the current policy. As a side effect
// it starts the experience-collection stopwatch, so wall-clock time
// spent gathering experience is attributed correctly.
func (b *Base) GetAction(info *brain.Info) (brain.ActionInfo, error) {
	b.metrics.StartExperienceCollection()
	return b.pol.GetAction(info)
}

// SaveModel checkpoints the policy's model at the trainer's current
// step
func (b *Base) SaveModel() error {
	return b.pol.SaveModel(b.trainer.Step())
}

// ExportModel writes the policy's model in its final form
func (b *Base) ExportModel() error {
	return b.pol.ExportModel()
}

// WriteTrainingMetrics writes the accumulated timing rows to the
// trainer's metrics CSV
func (b *Base) WriteTrainingMetrics() error {
	return b.metrics.Write()
}

// WriteSummary emits the periodic statistics summary. It is a no-op
// unless globalStep is a positive multiple of the trainer's summary
// frequency. When it fires, every statistic holding at least one
// sample is averaged, emitted, and cleared; the current lesson number
// is always emitted alongside.
func (b *Base) WriteSummary(globalStep, lessonNum int) error {
	if globalStep == 0 || globalStep%b.summaryFreq != 0 {
		return nil
	}

	t := b.trainer
	status := "not training"
	if b.isTraining && t.Step() <= t.MaxSteps() {
		status = "training"
	}

	elapsed := b.metrics.SinceTrainingStart()
	if mean, std, ok := b.stats.MeanStdDev(StatCumulativeReward); ok {
		step := t.Step()
		if max := t.MaxSteps(); step > max {
			step = max
		}
		b.logger.Info("training summary",
			slog.String("run_id", b.runID),
			slog.String("brain", b.brainName),
			slog.Int("step", step),
			slog.Float64("elapsed_s", elapsed.Seconds()),
			slog.Float64("mean_reward", mean),
			slog.Float64("std_reward", std),
			slog.String("status", status))
	} else {
		b.logger.Info("no episode was completed since last summary",
			slog.String("run_id", b.runID),
			slog.String("brain", b.brainName),
			slog.Int("step", t.Step()),
			slog.String("status", status))
	}

	means := b.stats.DrainMeans()
	tags := make([]string, 0, len(means))
	for tag := range means {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	values := make([]summary.Value, 0, len(means)+1)
	for _, tag := range tags {
		values = append(values, summary.Value{Tag: tag, Value: means[tag]})
	}
	values = append(values,
		summary.Value{Tag: StatLesson, Value: float64(lessonNum)})

	if err := b.writer.WriteScalars(t.Step(), values); err != nil {
		return fmt.Errorf("writesummary: %v", err)
	}
	if err := b.writer.Flush(); err != nil {
		return fmt.Errorf("writesummary: %v", err)
	}
	return nil
}

// WriteTextSummary emits a named table of descriptive text to the
// summary writer. The text path is diagnostic only, so a failing
// writer is logged as a warning and otherwise ignored.
func (b *Base) WriteTextSummary(key string, table map[string]string) {
	if err := b.writer.WriteText(key, table); err != nil {
		b.logger.Warn("cannot write text summary",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// contractViolation builds the error a mandatory operation panics
// with when the concrete trainer did not override it
func (b *Base) contractViolation(method string) error {
	return fmt.Errorf("the %v method was %w for the %v trainer of "+
		"brain %v", method, ErrNotImplemented, b.trainerType, b.brainName)
}

// Parameters implements Trainer. Concrete trainers must override it.
func (b *Base) Parameters() map[string]interface{} {
	panic(b.contractViolation("Parameters"))
}

// GraphScope implements Trainer. Concrete trainers must override it.
func (b *Base) GraphScope() string {
	panic(b.contractViolation("GraphScope"))
}

// MaxSteps implements Trainer. Concrete trainers must override it.
func (b *Base) MaxSteps() int {
	panic(b.contractViolation("MaxSteps"))
}

// Step implements Trainer. Concrete trainers must override it.
func (b *Base) Step() int {
	panic(b.contractViolation("Step"))
}

// LastReward implements Trainer. Concrete trainers must override it.
func (b *Base) LastReward() float64 {
	panic(b.contractViolation("LastReward"))
}

// IncrementStepAndUpdateLastReward implements Trainer. Concrete
// trainers must override it.
func (b *Base) IncrementStepAndUpdateLastReward() {
	panic(b.contractViolation("IncrementStepAndUpdateLastReward"))
}

// AddExperiences implements Trainer. Concrete trainers must override
// it.
func (b *Base) AddExperiences(curr, next brain.AllInfo,
	outputs brain.ActionInfo) error {
	panic(b.contractViolation("AddExperiences"))
}

// ProcessExperiences implements Trainer. Concrete trainers must
// override it.
func (b *Base) ProcessExperiences(curr, next brain.AllInfo) error {
	panic(b.contractViolation("ProcessExperiences"))
}

// EndEpisode implements Trainer. Concrete trainers must override it.
func (b *Base) EndEpisode() {
	panic(b.contractViolation("EndEpisode"))
}

// IsReadyUpdate implements Trainer. Concrete trainers must override
// it.
func (b *Base) IsReadyUpdate() bool {
	panic(b.contractViolation("IsReadyUpdate"))
}

// UpdatePolicy implements Trainer. Concrete trainers must override it.
func (b *Base) UpdatePolicy() error {
	panic(b.contractViolation("UpdatePolicy"))
}
