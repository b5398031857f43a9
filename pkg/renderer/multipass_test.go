package renderer

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/df07/go-multipass-raytracer/pkg/core"
)

func smallCamera(width int) *Camera {
	config := DefaultCameraConfig()
	config.Width = width
	config.AspectRatio = 16.0 / 9.0
	config.FocusDistance = 1
	return NewCamera(config)
}

func samePixels(a, b *Frame) bool {
	return reflect.DeepEqual(a.Pixels, b.Pixels)
}

func TestSplitSamples(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		passes   int
		expected []int
	}{
		{"single pass", 10, 1, []int{10}},
		{"even split", 12, 4, []int{3, 3, 3, 3}},
		{"remainder to first passes", 10, 4, []int{3, 3, 2, 2}},
		{"more passes than samples", 2, 3, []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitSamples(tt.total, tt.passes); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDrawSeeds(t *testing.T) {
	a := drawSeeds(42, 4)
	b := drawSeeds(42, 4)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("A fixed seed should give the same pass seeds: %v vs %v", a, b)
	}
	if len(a) != 4 {
		t.Fatalf("Expected 4 seeds, got %d", len(a))
	}

	seen := map[int64]bool{}
	for _, s := range a {
		if seen[s] {
			t.Errorf("Pass seed %d repeated", s)
		}
		seen[s] = true
	}

	if reflect.DeepEqual(a, drawSeeds(43, 4)) {
		t.Error("Different master seeds should give different pass seeds")
	}
}

func TestMultiPass_SinglePassEqualsRawPass(t *testing.T) {
	camera := smallCamera(32)
	sampling := SamplingConfig{SamplesPerPixel: 6, MaxDepth: 10}
	config := MultiPassConfig{Passes: 1, NumWorkers: 1, Seed: 1234}

	mr := NewMultiPassRenderer(twoSphereScene(), camera, sampling, config, NopLogger{})
	frame, stats, err := mr.Render()
	if err != nil {
		t.Fatal(err)
	}
	if len(stats.Seeds) != 1 {
		t.Fatalf("Expected 1 seed, got %d", len(stats.Seeds))
	}

	raw := NewRaytracer(twoSphereScene(), camera, sampling).
		RenderPass(core.NewSeededSampler(stats.Seeds[0]), 6, nil)

	if !samePixels(raw, frame) {
		t.Error("Single-pass render should equal the raw pass")
	}
	if stats.TotalSamples != 6 {
		t.Errorf("Expected 6 samples, got %d", stats.TotalSamples)
	}
}

func TestMultiPass_FixedSeedDeterministic(t *testing.T) {
	camera := smallCamera(24)
	sampling := SamplingConfig{SamplesPerPixel: 8, MaxDepth: 10}
	config := MultiPassConfig{Passes: 4, NumWorkers: 0, Seed: 7}

	first, _, err := NewMultiPassRenderer(twoSphereScene(), camera, sampling, config, nil).Render()
	if err != nil {
		t.Fatal(err)
	}

	// a different worker limit changes scheduling but not the result
	config.NumWorkers = 1
	second, _, err := NewMultiPassRenderer(twoSphereScene(), camera, sampling, config, nil).Render()
	if err != nil {
		t.Fatal(err)
	}

	if !samePixels(first, second) {
		t.Error("Expected identical frames for the same seed")
	}
}

func TestMultiPass_PassCountsAgree(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence test in short mode")
	}

	camera := smallCamera(40)
	sampling := SamplingConfig{SamplesPerPixel: 64, MaxDepth: 10}

	render := func(passes int) *Frame {
		config := MultiPassConfig{Passes: passes, Seed: int64(passes)}
		frame, stats, err := NewMultiPassRenderer(twoSphereScene(), camera, sampling, config, NopLogger{}).Render()
		if err != nil {
			t.Fatal(err)
		}
		if stats.TotalSamples != 64 {
			t.Fatalf("Expected 64 samples, got %d", stats.TotalSamples)
		}
		return frame
	}

	one := render(1)
	four := render(4)

	// the same total sample budget converges to the same image within noise
	if d := math.Abs(one.AverageLuminance() - four.AverageLuminance()); d > 0.01 {
		t.Errorf("Average luminance differs by %f", d)
	}

	var diff float64
	for i := range one.Pixels {
		diff += one.Pixels[i].Subtract(four.Pixels[i]).Length()
	}
	if meanDiff := diff / float64(len(one.Pixels)); meanDiff >= 0.1 {
		t.Errorf("Mean per-pixel difference between 1 and 4 passes is %f", meanDiff)
	}
}

func TestMultiPass_InvalidPasses(t *testing.T) {
	mr := NewMultiPassRenderer(twoSphereScene(), smallCamera(8), DefaultSamplingConfig(), MultiPassConfig{Passes: 0}, nil)
	if _, _, err := mr.Render(); err == nil {
		t.Error("Expected an error for zero passes")
	}
}

func TestMultiPass_ProgressAndLogging(t *testing.T) {
	var progress, logs bytes.Buffer
	camera := smallCamera(16)
	config := MultiPassConfig{Passes: 3, NumWorkers: 2, Seed: 5}

	mr := NewMultiPassRenderer(twoSphereScene(), camera, SamplingConfig{SamplesPerPixel: 3, MaxDepth: 5}, config, NewWriterLogger(&logs))
	mr.SetProgressOutput(&progress)

	_, stats, err := mr.Render()
	if err != nil {
		t.Fatal(err)
	}

	out := progress.String()
	if !strings.HasPrefix(out, "\rScanlines remaining: 27 ") {
		t.Errorf("Progress should count the rows of every pass: %q", out)
	}
	if !strings.Contains(out, "\rScanlines remaining: 0 ") {
		t.Errorf("Progress never reached zero: %q", out)
	}
	if !strings.HasSuffix(out, "\rDone.                   \n") {
		t.Errorf("Missing final message: %q", out)
	}

	if !strings.Contains(logs.String(), stats.RenderID.String()) {
		t.Errorf("Expected render id in logs: %q", logs.String())
	}
	if strings.Contains(logs.String(), "Raising") {
		t.Errorf("Sample budget matches the passes, no notice expected: %q", logs.String())
	}
	if !reflect.DeepEqual(stats.SamplesPerPass, []int{1, 1, 1}) {
		t.Errorf("Expected one sample per pass, got %v", stats.SamplesPerPass)
	}
	if stats.TotalPixels() != 16*9 {
		t.Errorf("Expected %d pixels, got %d", 16*9, stats.TotalPixels())
	}
}

func TestMultiPass_RaisedSampleBudgetIsLogged(t *testing.T) {
	var logs bytes.Buffer
	config := MultiPassConfig{Passes: 4, NumWorkers: 1, Seed: 3}

	mr := NewMultiPassRenderer(twoSphereScene(), smallCamera(8), SamplingConfig{SamplesPerPixel: 1, MaxDepth: 5}, config, NewWriterLogger(&logs))
	_, stats, err := mr.Render()
	if err != nil {
		t.Fatal(err)
	}

	if stats.TotalSamples != 4 {
		t.Errorf("Expected 4 samples over 4 passes, got %d", stats.TotalSamples)
	}
	if !strings.Contains(logs.String(), "Raising 1 samples/pixel to 4") {
		t.Errorf("Expected a notice about the raised sample budget: %q", logs.String())
	}
}
