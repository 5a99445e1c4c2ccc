package trainer

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock is a clock the test advances by hand
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestMetrics(t *testing.T) (*Metrics, *manualClock) {
	t.Helper()
	clock := &manualClock{now: time.Unix(1000, 0)}
	m := NewMetrics(filepath.Join(t.TempDir(), "metrics.csv"), "TestBrain",
		slog.Default())
	m.now = clock.Now
	m.trainingStart = clock.Now()
	return m, clock
}

func TestMetricsStartExperienceCollectionIsIdempotent(t *testing.T) {
	m, clock := newTestMetrics(t)

	m.StartExperienceCollection()
	clock.Advance(300 * time.Millisecond)

	// A second start while collection is in progress must not move
	// the start marker
	m.StartExperienceCollection()

	require.NoError(t, m.EndExperienceCollection())
	assert.Equal(t, 300*time.Millisecond, m.lastCollection)
}

func TestMetricsEndExperienceCollectionClearsStart(t *testing.T) {
	m, clock := newTestMetrics(t)

	m.StartExperienceCollection()
	clock.Advance(100 * time.Millisecond)
	require.NoError(t, m.EndExperienceCollection())

	// The marker was cleared, so a new interval begins now rather
	// than continuing the old one
	m.StartExperienceCollection()
	clock.Advance(50 * time.Millisecond)
	require.NoError(t, m.EndExperienceCollection())
	assert.Equal(t, 50*time.Millisecond, m.lastCollection)
}

func TestMetricsEndExperienceCollectionWithoutStart(t *testing.T) {
	m, _ := newTestMetrics(t)

	err := m.EndExperienceCollection()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no experience collection in progress")
}

func TestMetricsEndPolicyUpdateWithoutStart(t *testing.T) {
	m, _ := newTestMetrics(t)

	err := m.EndPolicyUpdate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no policy update in progress")
}

func TestMetricsRowsFollowCallOrder(t *testing.T) {
	m, clock := newTestMetrics(t)

	cycles := []struct {
		bufferLength int
		meanReturn   float64
	}{
		{1024, 1.5},
		{2048, -0.25},
		{512, 10.0},
	}

	for _, cycle := range cycles {
		m.StartExperienceCollection()
		clock.Advance(100 * time.Millisecond)
		require.NoError(t, m.EndExperienceCollection())

		m.StartPolicyUpdate(cycle.bufferLength, cycle.meanReturn)
		clock.Advance(200 * time.Millisecond)
		require.NoError(t, m.EndPolicyUpdate())
	}

	rows := m.Rows()
	require.Len(t, rows, len(cycles))
	for i, cycle := range cycles {
		assert.Equal(t, "TestBrain", rows[i].BrainName)
		assert.Equal(t, cycle.bufferLength, rows[i].BufferLength)
		assert.Equal(t, cycle.meanReturn, rows[i].MeanReturn)
		assert.Equal(t, 200*time.Millisecond, rows[i].PolicyUpdate)
		assert.Equal(t, 100*time.Millisecond, rows[i].ExperienceCollection)
	}
}

func TestMetricsWriteHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	m := NewMetrics(path, "TestBrain", slog.Default())

	require.NoError(t, m.Write())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, metricsHeader, records[0])
}

func TestMetricsWriteFormatsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	clock := &manualClock{now: time.Unix(1000, 0)}
	m := NewMetrics(path, "TestBrain", slog.Default())
	m.now = clock.Now
	m.trainingStart = clock.Now()

	m.StartExperienceCollection()
	clock.Advance(250 * time.Millisecond)
	require.NoError(t, m.EndExperienceCollection())

	clock.Advance(500 * time.Millisecond)
	m.StartPolicyUpdate(64, 1.23456)
	clock.Advance(250 * time.Millisecond)
	require.NoError(t, m.EndPolicyUpdate())

	require.NoError(t, m.Write())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "TestBrain", row[0])
	assert.Equal(t, "0.250", row[1]) // time to update policy
	assert.Equal(t, "1.000", row[2]) // time since training start
	assert.Equal(t, "0.250", row[3]) // last experience collection
	assert.Equal(t, "64", row[4])
	assert.Equal(t, "1.235", row[5])
}

// Writing twice must not duplicate or drop rows: the file is
// truncated and rewritten from the full row set each time
func TestMetricsWriteIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	m := NewMetrics(path, "TestBrain", slog.Default())

	m.StartPolicyUpdate(10, 0.5)
	require.NoError(t, m.EndPolicyUpdate())

	require.NoError(t, m.Write())
	require.NoError(t, m.Write())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
