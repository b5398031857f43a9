package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRenderStats(t *testing.T) {
	stats := RenderStats{
		RenderID:     uuid.MustParse("0b6d2a51-5b8e-4d3c-9a51-2f0f3f1b9c10"),
		Width:        400,
		Height:       225,
		Passes:       4,
		TotalSamples: 10,
		MaxDepth:     50,
		Duration:     1500 * time.Millisecond,
	}

	if stats.TotalPixels() != 90000 {
		t.Errorf("Expected 90000 pixels, got %d", stats.TotalPixels())
	}
	if stats.TotalRays() != 900000 {
		t.Errorf("Expected 900000 camera rays, got %d", stats.TotalRays())
	}

	s := stats.String()
	for _, want := range []string{"0b6d2a51", "400x225", "4 passes", "10 samples/pixel", "900000 camera rays", "depth 50", "1.5s"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in %q", want, s)
		}
	}
}

func TestProgressReporter(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf, 2)
	p.RowDone()
	p.RowDone()
	p.RowDone() // extra rows never go negative
	p.Done()

	expected := "\rScanlines remaining: 2 " +
		"\rScanlines remaining: 1 " +
		"\rScanlines remaining: 0 " +
		"\rScanlines remaining: 0 " +
		"\rDone.                   \n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
	if p.Remaining() != 0 {
		t.Errorf("Expected 0 remaining, got %d", p.Remaining())
	}
}

func TestProgressReporter_NilWriter(t *testing.T) {
	p := NewProgressReporter(nil, 3)
	p.RowDone()
	p.Done()
	if p.Remaining() != 2 {
		t.Errorf("Expected 2 remaining, got %d", p.Remaining())
	}
}
