package summary

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEvents(t *testing.T, dir string) []event {
	t.Helper()
	file, err := os.Open(filepath.Join(dir, "events.jsonl"))
	require.NoError(t, err)
	defer file.Close()

	var events []event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		events = append(events, e)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestFileWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run0_TestBrain")

	w, err := NewFileWriter(dir)
	require.NoError(t, err)
	defer w.Close()

	stat, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestFileWriterScalars(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWriter(dir)
	require.NoError(t, err)

	values := []Value{
		{Tag: "Environment/Cumulative Reward", Value: 2.0},
		{Tag: "Environment/Lesson", Value: 0.0},
	}
	require.NoError(t, w.WriteScalars(100, values))
	require.NoError(t, w.WriteScalars(200, values[:1]))
	require.NoError(t, w.Flush())

	events := readEvents(t, dir)
	require.Len(t, events, 2)
	assert.Equal(t, 100, events[0].Step)
	assert.Equal(t, values, events[0].Values)
	assert.Equal(t, 200, events[1].Step)
	assert.NotZero(t, events[0].WallTime)
}

func TestFileWriterText(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFileWriter(dir)
	require.NoError(t, err)

	table := map[string]string{"batch_size": "1024"}
	require.NoError(t, w.WriteText("Hyperparameters", table))
	require.NoError(t, w.Close())

	events := readEvents(t, dir)
	require.Len(t, events, 1)
	assert.Equal(t, "Hyperparameters", events[0].Key)
	assert.Equal(t, table, events[0].Text)
}

func TestFileWriterTruncatesOldEvents(t *testing.T) {
	dir := t.TempDir()

	w, err := NewFileWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteScalars(1, []Value{{Tag: "a", Value: 1}}))
	require.NoError(t, w.Close())

	// A second writer on the same directory starts a fresh file
	w, err = NewFileWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Empty(t, readEvents(t, dir))
}
