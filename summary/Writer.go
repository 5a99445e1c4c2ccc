// Package summary implements the sinks that periodic training
// summaries are written to for later visualization
package summary

// Value is a single named scalar emitted in a summary
type Value struct {
	Tag   string  `json:"tag"`
	Value float64 `json:"value"`
}

// Writer persists batches of summary values emitted by a trainer.
// Implementations may buffer; Flush forces buffered data out.
//
// All methods return errors. Whether a failed write is fatal is the
// caller's decision, not the Writer's.
type Writer interface {
	// WriteScalars records a batch of scalar values at a training
	// step
	WriteScalars(step int, values []Value) error

	// WriteText records a named table of descriptive text
	WriteText(key string, table map[string]string) error

	// Flush forces any buffered summaries out to the sink
	Flush() error
}
