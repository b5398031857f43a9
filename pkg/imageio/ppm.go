package imageio

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/renderer"
)

var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2. Non-positive and NaN components map to 0.
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ColorToRGB converts a linear color to 8-bit channels: gamma corrected,
// clamped to [0, 0.999] and scaled by 256
func ColorToRGB(c core.Color) (r, g, b uint8) {
	r = uint8(256 * intensity.Clamp(linearToGamma(c.X)))
	g = uint8(256 * intensity.Clamp(linearToGamma(c.Y)))
	b = uint8(256 * intensity.Clamp(linearToGamma(c.Z)))
	return r, g, b
}

// WritePPM writes frame as a plain-text P3 image, top row first
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("writing ppm header: %w", err)
	}
	for _, p := range frame.Pixels {
		r, g, b := ColorToRGB(p)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("writing ppm pixels: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing ppm: %w", err)
	}
	return nil
}
