package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-multipass-raytracer/pkg/core"
)

// ErrNoFrames is returned when averaging an empty set of frames
var ErrNoFrames = errors.New("renderer: no frames to average")

// Frame is a rendered image in linear color space, row-major with the top row first
type Frame struct {
	Width, Height int
	Pixels        []core.Color
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color of pixel (x, y)
func (f *Frame) Set(x, y int, c core.Color) {
	f.Pixels[y*f.Width+x] = c
}

// AverageLuminance returns the mean luminance over all pixels
func (f *Frame) AverageLuminance() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	var total float64
	for _, p := range f.Pixels {
		total += p.Luminance()
	}
	return total / float64(len(f.Pixels))
}

// Average combines frames into their per-pixel mean, each frame weighted by its
// sample count. weights may be nil for a plain mean. A single frame is returned as is.
func Average(frames []*Frame, weights []int) (*Frame, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if weights != nil && len(weights) != len(frames) {
		return nil, fmt.Errorf("renderer: %d weights for %d frames", len(weights), len(frames))
	}

	first := frames[0]
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("renderer: frame %d is nil", i)
		}
		if f.Width != first.Width || f.Height != first.Height {
			return nil, fmt.Errorf("renderer: frame %d is %dx%d, expected %dx%d",
				i, f.Width, f.Height, first.Width, first.Height)
		}
	}
	if len(frames) == 1 {
		return first, nil
	}

	var totalWeight float64
	for i := range frames {
		totalWeight += frameWeight(weights, i)
	}
	if totalWeight <= 0 {
		return nil, fmt.Errorf("renderer: total frame weight %v is not positive", totalWeight)
	}

	result := NewFrame(first.Width, first.Height)
	for i, f := range frames {
		w := frameWeight(weights, i) / totalWeight
		for p, c := range f.Pixels {
			result.Pixels[p] = result.Pixels[p].Add(c.Multiply(w))
		}
	}
	return result, nil
}

func frameWeight(weights []int, i int) float64 {
	if weights == nil {
		return 1
	}
	return float64(weights[i])
}
