package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-multipass-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for output formats without an encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format names an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// Formats lists every supported output format
var Formats = []Format{FormatPPM, FormatPNG, FormatBMP, FormatTIFF}

// FormatFromPath picks the output format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedFormat, filepath.Ext(path), Formats)
	}
}

// ToRGBA converts a linear frame into an 8-bit image using the same
// conversion as the PPM writer
func ToRGBA(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b := ColorToRGB(frame.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// Encode writes frame to w in the given format
func Encode(w io.Writer, format Format, frame *renderer.Frame) error {
	var err error
	switch format {
	case FormatPPM:
		return WritePPM(w, frame)
	case FormatPNG:
		err = png.Encode(w, ToRGBA(frame))
	case FormatBMP:
		err = bmp.Encode(w, ToRGBA(frame))
	case FormatTIFF:
		err = tiff.Encode(w, ToRGBA(frame), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return nil
}

// WriteImage saves frame to path, choosing the encoder from the extension
func WriteImage(path string, frame *renderer.Frame) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := Encode(file, format, frame); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Thumbnail scales frame down to width pixels, keeping the aspect ratio.
// Frames already narrower than width are converted without scaling.
func Thumbnail(frame *renderer.Frame, width int) image.Image {
	img := ToRGBA(frame)
	if width <= 0 || width >= frame.Width {
		return img
	}
	return resize.Resize(uint(width), 0, img, resize.Bilinear)
}

// WriteThumbnail saves a PNG thumbnail of frame to path
func WriteThumbnail(path string, frame *renderer.Frame, width int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(file, Thumbnail(frame, width)); err != nil {
		file.Close()
		return fmt.Errorf("encoding thumbnail: %w", err)
	}
	return file.Close()
}
