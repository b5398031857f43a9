package imageio

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/renderer"
)

func TestColorToRGB(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Color
		expected [3]uint8
	}{
		{"white", core.NewVec3(1, 1, 1), [3]uint8{255, 255, 255}},
		{"black", core.NewVec3(0, 0, 0), [3]uint8{0, 0, 0}},
		{"overbright clamps", core.NewVec3(4, 2, 1.5), [3]uint8{255, 255, 255}},
		{"negative is black", core.NewVec3(-1, -0.5, 0), [3]uint8{0, 0, 0}},
		{"gamma quarter to half", core.NewVec3(0.25, 0.25, 0.25), [3]uint8{128, 128, 128}},
		{"nan is black", core.NewVec3(math.NaN(), 1, 0), [3]uint8{0, 255, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := ColorToRGB(tt.color)
			assert.Equal(t, tt.expected, [3]uint8{r, g, b})
		})
	}
}

func TestWritePPM(t *testing.T) {
	frame := renderer.NewFrame(2, 2)
	frame.Set(0, 0, core.NewVec3(1, 1, 1))
	frame.Set(1, 0, core.NewVec3(1, 0, 0))
	frame.Set(0, 1, core.NewVec3(0, 0.25, 0))

	var buf bytes.Buffer
	require.NoError(t, WritePPM(&buf, frame))

	expected := "P3\n2 2\n255\n" +
		"255 255 255\n" +
		"255 0 0\n" +
		"0 128 0\n" +
		"0 0 0\n"
	assert.Equal(t, expected, buf.String())
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"out.ppm", FormatPPM},
		{"dir/render.PNG", FormatPNG},
		{"a.bmp", FormatBMP},
		{"a.tif", FormatTIFF},
		{"a.tiff", FormatTIFF},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}

	_, err := FormatFromPath("render.jpg")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	for _, format := range Formats {
		assert.Contains(t, err.Error(), string(format), "error lists the supported formats")
	}
	_, err = FormatFromPath("render")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func gradientFrame(width, height int) *renderer.Frame {
	frame := renderer.NewFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			frame.Set(x, y, core.NewVec3(float64(x)/float64(width), float64(y)/float64(height), 0.5))
		}
	}
	return frame
}

func TestEncode_ImageFormatsMatchPPMConversion(t *testing.T) {
	frame := gradientFrame(8, 4)
	r, g, b := ColorToRGB(frame.At(5, 3))

	var pngBuf, bmpBuf, tiffBuf bytes.Buffer
	require.NoError(t, Encode(&pngBuf, FormatPNG, frame))
	require.NoError(t, Encode(&bmpBuf, FormatBMP, frame))
	require.NoError(t, Encode(&tiffBuf, FormatTIFF, frame))

	pngImg, err := png.Decode(&pngBuf)
	require.NoError(t, err)
	bmpImg, err := bmp.Decode(&bmpBuf)
	require.NoError(t, err)
	tiffImg, err := tiff.Decode(&tiffBuf)
	require.NoError(t, err)

	checks := map[string][2]int{
		"png":  {pngImg.Bounds().Dx(), pngImg.Bounds().Dy()},
		"bmp":  {bmpImg.Bounds().Dx(), bmpImg.Bounds().Dy()},
		"tiff": {tiffImg.Bounds().Dx(), tiffImg.Bounds().Dy()},
	}
	for name, size := range checks {
		assert.Equal(t, [2]int{8, 4}, size, name)
	}

	for name, img := range map[string]func(x, y int) (uint32, uint32, uint32, uint32){
		"png":  func(x, y int) (uint32, uint32, uint32, uint32) { return pngImg.At(x, y).RGBA() },
		"bmp":  func(x, y int) (uint32, uint32, uint32, uint32) { return bmpImg.At(x, y).RGBA() },
		"tiff": func(x, y int) (uint32, uint32, uint32, uint32) { return tiffImg.At(x, y).RGBA() },
	} {
		pr, pg, pb, _ := img(5, 3)
		assert.Equal(t, [3]uint8{r, g, b}, [3]uint8{uint8(pr >> 8), uint8(pg >> 8), uint8(pb >> 8)}, name)
	}

	err = Encode(&bytes.Buffer{}, Format("jpeg"), frame)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestWriteImage(t *testing.T) {
	dir := t.TempDir()
	frame := gradientFrame(4, 3)

	ppmPath := filepath.Join(dir, "render.ppm")
	require.NoError(t, WriteImage(ppmPath, frame))
	data, err := os.ReadFile(ppmPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "P3\n4 3\n255\n"))

	err = WriteImage(filepath.Join(dir, "render.gif"), frame)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	_, statErr := os.Stat(filepath.Join(dir, "render.gif"))
	assert.True(t, os.IsNotExist(statErr), "no file is created for an unsupported format")
}

func TestThumbnail(t *testing.T) {
	frame := gradientFrame(400, 225)

	thumb := Thumbnail(frame, 100)
	assert.Equal(t, 100, thumb.Bounds().Dx())
	assert.InDelta(t, 56, thumb.Bounds().Dy(), 1)

	// never upscaled
	small := Thumbnail(gradientFrame(40, 20), 100)
	assert.Equal(t, 40, small.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "thumb.png")
	require.NoError(t, WriteThumbnail(path, frame, 64))
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}
