package renderer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RenderID         uuid.UUID     // Identifies the render in logs and output names
	Width, Height    int           // Image dimensions in pixels
	Passes           int           // Number of independent passes
	SamplesPerPass   []int         // Samples per pixel taken by each pass
	Seeds            []int64       // Seed used by each pass
	TotalSamples     int           // Samples per pixel over all passes
	MaxDepth         int           // Maximum ray bounce depth
	Duration         time.Duration // Wall time from first pass start to final average
	AverageLuminance float64       // Mean linear luminance of the averaged frame
}

// TotalPixels returns the number of pixels in the image
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// TotalRays returns the number of camera rays traced over all passes
func (s RenderStats) TotalRays() int {
	return s.TotalPixels() * s.TotalSamples
}

func (s RenderStats) String() string {
	return fmt.Sprintf("render %s: %dx%d, %d passes, %d samples/pixel (%d camera rays), depth %d, %v",
		s.RenderID, s.Width, s.Height, s.Passes, s.TotalSamples, s.TotalRays(), s.MaxDepth, s.Duration.Round(time.Millisecond))
}
