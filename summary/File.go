package summary

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// event is a single line in a summary event file
type event struct {
	WallTime float64           `json:"wall_time"`
	Step     int               `json:"step,omitempty"`
	Values   []Value           `json:"values,omitempty"`
	Key      string            `json:"key,omitempty"`
	Text     map[string]string `json:"text,omitempty"`
}

// FileWriter is a Writer that appends summaries to a JSON-lines event
// file inside a summary directory, one event per line. The directory
// is created when the FileWriter is constructed and lives for the
// whole run.
type FileWriter struct {
	file *os.File
	buf  *bufio.Writer
	now  func() time.Time
}

// NewFileWriter creates the summary directory dir if needed and opens
// an event file inside it, truncating any event file from an earlier
// run with the same name.
func NewFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("newfilewriter: could not create summary "+
			"directory: %v", err)
	}

	file, err := os.Create(filepath.Join(dir, "events.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("newfilewriter: could not create event "+
			"file: %v", err)
	}

	return &FileWriter{
		file: file,
		buf:  bufio.NewWriter(file),
		now:  time.Now,
	}, nil
}

// WriteScalars appends one event holding the batch of scalar values
func (f *FileWriter) WriteScalars(step int, values []Value) error {
	return f.append(event{
		WallTime: float64(f.now().UnixNano()) / 1e9,
		Step:     step,
		Values:   values,
	})
}

// WriteText appends one event holding a named table of text
func (f *FileWriter) WriteText(key string, table map[string]string) error {
	return f.append(event{
		WallTime: float64(f.now().UnixNano()) / 1e9,
		Key:      key,
		Text:     table,
	})
}

// Flush forces buffered events out to the event file
func (f *FileWriter) Flush() error {
	if err := f.buf.Flush(); err != nil {
		return fmt.Errorf("flush: %v", err)
	}
	return nil
}

// Close flushes and closes the event file
func (f *FileWriter) Close() error {
	if err := f.Flush(); err != nil {
		return err
	}
	return f.file.Close()
}

func (f *FileWriter) append(e event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("append: could not encode event: %v", err)
	}
	if _, err := f.buf.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append: could not write event: %v", err)
	}
	return nil
}
