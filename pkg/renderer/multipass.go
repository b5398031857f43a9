package renderer

import (
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-multipass-raytracer/pkg/core"
)

// MultiPassConfig contains configuration for multi-pass rendering
type MultiPassConfig struct {
	Passes     int   // Number of independent full-image passes
	NumWorkers int   // Number of passes rendered at once (0 = use CPU count)
	Seed       int64 // Seed for the per-pass seeds (0 = seed from the clock)
}

// DefaultMultiPassConfig returns sensible default values
func DefaultMultiPassConfig() MultiPassConfig {
	return MultiPassConfig{
		Passes:     4,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       0,
	}
}

// MultiPassRenderer renders several independently seeded passes in parallel
// and averages them into the final frame
type MultiPassRenderer struct {
	raytracer *Raytracer
	config    MultiPassConfig
	logger    core.Logger
	progress  io.Writer
}

// NewMultiPassRenderer creates a renderer for the scene as seen by camera
func NewMultiPassRenderer(scene Scene, camera *Camera, sampling SamplingConfig, config MultiPassConfig, logger core.Logger) *MultiPassRenderer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &MultiPassRenderer{
		raytracer: NewRaytracer(scene, camera, sampling),
		config:    config,
		logger:    logger,
	}
}

// SetProgressOutput sets where the scanline counter is written. Nil disables it.
func (mr *MultiPassRenderer) SetProgressOutput(w io.Writer) {
	mr.progress = w
}

// numWorkers resolves the worker limit
func (mr *MultiPassRenderer) numWorkers() int {
	if mr.config.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return mr.config.NumWorkers
}

// splitSamples divides total samples over passes, giving the remainder to the
// first passes. Every pass gets at least one sample.
func splitSamples(total, passes int) []int {
	samples := make([]int, passes)
	base := total / passes
	extra := total % passes
	for i := range samples {
		samples[i] = base
		if i < extra {
			samples[i]++
		}
		if samples[i] < 1 {
			samples[i] = 1
		}
	}
	return samples
}

// drawSeeds returns one seed per pass. A zero seed draws from the clock.
func drawSeeds(seed int64, passes int) []int64 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.New(rand.NewSource(seed))
	seeds := make([]int64, passes)
	for i := range seeds {
		seeds[i] = source.Int63()
	}
	return seeds
}

// Render runs every pass and returns their sample-weighted average.
// It blocks until all passes have finished.
func (mr *MultiPassRenderer) Render() (*Frame, RenderStats, error) {
	if mr.config.Passes < 1 {
		return nil, RenderStats{}, fmt.Errorf("renderer: passes must be at least 1, got %d", mr.config.Passes)
	}

	camera := mr.raytracer.Camera()
	sampling := mr.raytracer.Config()
	passes := mr.config.Passes

	stats := RenderStats{
		RenderID:       uuid.New(),
		Width:          camera.ImageWidth(),
		Height:         camera.ImageHeight(),
		Passes:         passes,
		SamplesPerPass: splitSamples(sampling.SamplesPerPixel, passes),
		Seeds:          drawSeeds(mr.config.Seed, passes),
		MaxDepth:       sampling.MaxDepth,
	}
	for _, s := range stats.SamplesPerPass {
		stats.TotalSamples += s
	}
	if stats.TotalSamples > sampling.SamplesPerPixel {
		mr.logger.Printf("Raising %d samples/pixel to %d so each of the %d passes takes at least one\n",
			sampling.SamplesPerPixel, stats.TotalSamples, passes)
	}

	mr.logger.Printf("Render %s: %dx%d, %d passes of %v samples (using %d workers)\n",
		stats.RenderID, stats.Width, stats.Height, passes, stats.SamplesPerPass, mr.numWorkers())

	progress := NewProgressReporter(mr.progress, passes*stats.Height)
	frames := make([]*Frame, passes)
	startTime := time.Now()

	var g errgroup.Group
	g.SetLimit(mr.numWorkers())
	for pass := 0; pass < passes; pass++ {
		pass := pass // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			passStart := time.Now()
			sampler := core.NewSeededSampler(stats.Seeds[pass])
			frames[pass] = mr.raytracer.RenderPass(sampler, stats.SamplesPerPass[pass], progress.RowDone)
			mr.logger.Printf("Pass %d completed in %v (seed %d, %d samples/pixel, %d scanlines left)\n",
				pass+1, time.Since(passStart), stats.Seeds[pass], stats.SamplesPerPass[pass], progress.Remaining())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, RenderStats{}, err
	}
	progress.Done()

	frame, err := Average(frames, stats.SamplesPerPass)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("renderer: averaging passes: %w", err)
	}

	stats.Duration = time.Since(startTime)
	stats.AverageLuminance = frame.AverageLuminance()
	mr.logger.Printf("%s\n", stats)

	return frame, stats, nil
}
