// Package progressbar implements a console progress bar for long
// training runs
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Bar is a manually driven progress bar. The driving loop calls
// Increment once per iteration and Display whenever the bar should be
// redrawn; nothing runs in the background.
type Bar struct {
	out io.Writer

	width   float64
	max     float64
	current float64

	// suffix is extra status text drawn after the bar, typically the
	// latest reward statistics
	suffix string

	start time.Time
	bar   strings.Builder
}

// New returns a Bar that is width characters wide, reaches 100% after
// max Increment calls, and draws itself to out
func New(out io.Writer, width, max int) *Bar {
	return &Bar{
		out:   out,
		width: float64(width),
		max:   float64(max),
		start: time.Now(),
	}
}

// Increment advances the internal progress counter by one iteration
func (b *Bar) Increment() {
	if b.current < b.max {
		b.current++
	}
}

// SetSuffix sets the status text drawn after the bar on the next
// Display
func (b *Bar) SetSuffix(suffix string) {
	b.suffix = suffix
}

// Display redraws the progress bar in place
func (b *Bar) Display() {
	b.bar.Reset()
	b.bar.WriteString("|")

	progress := b.current / b.max * b.width
	for i := 0.0; i < progress; i++ {
		b.bar.WriteString("█")
	}
	for i := progress; i < b.width; i++ {
		b.bar.WriteString(" ")
	}

	b.bar.WriteString(fmt.Sprintf("| [%.2f%% | elapsed: %v]",
		b.current/b.max*100, time.Since(b.start).Truncate(time.Second)))
	if b.suffix != "" {
		b.bar.WriteString(" " + b.suffix)
	}

	fmt.Fprintf(b.out, "\n\033[1A\033[K%v", b.bar.String())
}

// Finish moves the cursor past the bar so later output starts on a
// fresh line
func (b *Bar) Finish() {
	fmt.Fprintln(b.out)
}
