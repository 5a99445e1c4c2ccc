package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestBarDisplay(t *testing.T) {
	var out bytes.Buffer
	bar := New(&out, 10, 4)

	bar.Increment()
	bar.Increment()
	bar.SetSuffix("TestBrain: 1.500")
	bar.Display()

	got := out.String()
	if !strings.Contains(got, "50.00%") {
		t.Errorf("expected 50%% progress in %q", got)
	}
	if !strings.Contains(got, "TestBrain: 1.500") {
		t.Errorf("expected suffix in %q", got)
	}
}

func TestBarNeverExceedsMax(t *testing.T) {
	var out bytes.Buffer
	bar := New(&out, 10, 2)

	for i := 0; i < 5; i++ {
		bar.Increment()
	}
	bar.Display()

	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("expected capped progress in %q", out.String())
	}
}
