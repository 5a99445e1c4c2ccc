package trainer

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// metricsHeader is the fixed header row of the training metrics CSV
var metricsHeader = []string{
	"Brain name",
	"Time to update policy",
	"Time since start of training",
	"Time for last experience collection",
	"Number of experiences used for training",
	"Mean return",
}

// MetricsRow captures the timings of one completed policy-update cycle
type MetricsRow struct {
	BrainName            string
	PolicyUpdate         time.Duration
	SinceTrainingStart   time.Duration
	ExperienceCollection time.Duration
	BufferLength         int
	MeanReturn           float64
}

// Metrics tracks wall-clock timings of the two phases of a training
// cycle, experience collection and policy update, and accumulates one
// row per completed cycle for later export as CSV. Time since training
// start is measured from the moment the Metrics is constructed.
//
// The two phases are independent stopwatch pairs. The driving loop may
// interleave environment stepping and updating however it likes;
// Metrics only requires that each End call is preceded by a matching
// Start call.
type Metrics struct {
	path      string
	brainName string
	logger    *slog.Logger

	// now is stubbed out in tests
	now func() time.Time

	trainingStart   time.Time
	collectionStart time.Time
	updateStart     time.Time

	lastCollection   time.Duration
	lastBufferLength int
	lastMeanReturn   float64

	rows []MetricsRow
}

// NewMetrics returns a Metrics recorder for one brain that writes its
// CSV to path. The training-start clock begins immediately.
func NewMetrics(path, brainName string, logger *slog.Logger) *Metrics {
	m := &Metrics{
		path:      path,
		brainName: brainName,
		logger:    logger,
		now:       time.Now,
	}
	m.trainingStart = m.now()
	return m
}

// StartExperienceCollection marks the start of experience collection.
// If a collection is already in progress the call is a no-op, so the
// driving loop may call it every step without bookkeeping.
func (m *Metrics) StartExperienceCollection() {
	if m.collectionStart.IsZero() {
		m.collectionStart = m.now()
	}
}

// EndExperienceCollection records the duration of the experience
// collection phase started by the last StartExperienceCollection call
// and clears the start marker, so the next EndExperienceCollection
// requires a fresh start. Calling it without a start in progress is an
// error: there is nothing to measure against.
func (m *Metrics) EndExperienceCollection() error {
	if m.collectionStart.IsZero() {
		return fmt.Errorf("endexperiencecollection: no experience "+
			"collection in progress for brain %v", m.brainName)
	}
	m.lastCollection = m.now().Sub(m.collectionStart)
	m.collectionStart = time.Time{}
	return nil
}

// StartPolicyUpdate marks the start of a policy update and records the
// buffer length and mean return to associate with it
func (m *Metrics) StartPolicyUpdate(numExperiences int, meanReturn float64) {
	m.lastBufferLength = numExperiences
	m.lastMeanReturn = meanReturn
	m.updateStart = m.now()
}

// EndPolicyUpdate records the duration of the policy update started by
// the last StartPolicyUpdate call and appends one completed-cycle row
func (m *Metrics) EndPolicyUpdate() error {
	if m.updateStart.IsZero() {
		return fmt.Errorf("endpolicyupdate: no policy update in "+
			"progress for brain %v", m.brainName)
	}

	now := m.now()
	row := MetricsRow{
		BrainName:            m.brainName,
		PolicyUpdate:         now.Sub(m.updateStart),
		SinceTrainingStart:   now.Sub(m.trainingStart),
		ExperienceCollection: m.lastCollection,
		BufferLength:         m.lastBufferLength,
		MeanReturn:           m.lastMeanReturn,
	}
	m.rows = append(m.rows, row)
	m.updateStart = time.Time{}

	m.logger.Debug(fmt.Sprintf("policy update training metrics for %v:\n"+
		"\t\ttime to update policy: %.3f s\n"+
		"\t\ttime elapsed since training start: %.3f s\n"+
		"\t\ttime for experience collection: %.3f s\n"+
		"\t\tbuffer length: %v\n"+
		"\t\tmean return: %.3f",
		m.brainName, row.PolicyUpdate.Seconds(),
		row.SinceTrainingStart.Seconds(),
		row.ExperienceCollection.Seconds(),
		row.BufferLength, row.MeanReturn))

	return nil
}

// SinceTrainingStart returns the wall-clock time elapsed since the
// Metrics was constructed
func (m *Metrics) SinceTrainingStart() time.Duration {
	return m.now().Sub(m.trainingStart)
}

// Rows returns the completed-cycle rows accumulated so far, in call
// order. Rows grow until the end of the run; writing them out does not
// clear them.
func (m *Metrics) Rows() []MetricsRow {
	return m.rows
}

// Write writes the accumulated rows as CSV to the Metrics' path,
// truncating any existing file. With no rows the file holds only the
// header. Durations and returns are written with three decimal places,
// counts as plain integers.
func (m *Metrics) Write() error {
	file, err := os.Create(m.path)
	if err != nil {
		return fmt.Errorf("write: could not create metrics file: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(metricsHeader); err != nil {
		return fmt.Errorf("write: could not write header: %v", err)
	}
	for _, row := range m.rows {
		record := []string{
			row.BrainName,
			fmt.Sprintf("%.3f", row.PolicyUpdate.Seconds()),
			fmt.Sprintf("%.3f", row.SinceTrainingStart.Seconds()),
			fmt.Sprintf("%.3f", row.ExperienceCollection.Seconds()),
			strconv.Itoa(row.BufferLength),
			fmt.Sprintf("%.3f", row.MeanReturn),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write: could not write row: %v", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write: %v", err)
	}
	return nil
}
