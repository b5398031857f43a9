package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/imageio"
	"github.com/df07/go-multipass-raytracer/pkg/renderer"
)

// ErrInvalidConfig is wrapped by every validation and parse error
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix starts the name of every environment override
const EnvPrefix = "RAYTRACER_"

// Vector is a point or direction written as [x, y, z]
type Vector [3]float64

func (v Vector) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraSettings override a scene's camera. Zero values leave the scene's
// choice alone; a nil MotionBlur does too.
type CameraSettings struct {
	Width         int     `yaml:"width"`
	AspectRatio   float64 `yaml:"aspect_ratio"`
	VFov          float64 `yaml:"vfov"`
	LookFrom      *Vector `yaml:"look_from"`
	LookAt        *Vector `yaml:"look_at"`
	Up            *Vector `yaml:"up"`
	DefocusAngle  float64 `yaml:"defocus_angle"`
	FocusDistance float64 `yaml:"focus_distance"`
	MotionBlur    *bool   `yaml:"motion_blur"`
}

// SamplingSettings override a scene's sampling. Zero values leave the scene's choice alone.
type SamplingSettings struct {
	SamplesPerPixel int `yaml:"samples_per_pixel"`
	MaxDepth        int `yaml:"max_depth"`
}

// Config holds everything needed to run a render
type Config struct {
	Scene          string           `yaml:"scene"`
	Output         string           `yaml:"output"` // File path, "-" for stdout, empty for output/<scene>/
	Format         string           `yaml:"format"` // Extension used when Output is empty or "-"
	Passes         int              `yaml:"passes"`
	Workers        int              `yaml:"workers"`
	Seed           int64            `yaml:"seed"`
	ThumbnailWidth int              `yaml:"thumbnail_width"` // 0 disables the thumbnail
	Camera         CameraSettings   `yaml:"camera"`
	Sampling       SamplingSettings `yaml:"sampling"`
}

// Default returns the configuration used when nothing is specified
func Default() Config {
	mp := renderer.DefaultMultiPassConfig()
	return Config{
		Scene:          "default",
		Format:         string(imageio.FormatPPM),
		Passes:         mp.Passes,
		Workers:        mp.NumWorkers,
		Seed:           mp.Seed,
		ThumbnailWidth: 0,
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values; unknown keys are an error.
func LoadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// LoadEnv loads envFile into the process environment if it exists, then
// applies RAYTRACER_* variables to cfg. Variables already set win over the file.
func LoadEnv(envFile string, cfg *Config) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("loading %s: %w", envFile, err)
			}
		}
	}
	return ApplyEnv(cfg, os.LookupEnv)
}

// ApplyEnv applies RAYTRACER_* overrides found through lookup
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	texts := []struct {
		key    string
		target *string
	}{
		{"SCENE", &cfg.Scene},
		{"OUTPUT", &cfg.Output},
		{"FORMAT", &cfg.Format},
	}
	for _, v := range texts {
		if value, ok := lookup(EnvPrefix + v.key); ok {
			*v.target = value
		}
	}

	ints := []struct {
		key    string
		target *int
	}{
		{"PASSES", &cfg.Passes},
		{"WORKERS", &cfg.Workers},
		{"THUMBNAIL_WIDTH", &cfg.ThumbnailWidth},
		{"WIDTH", &cfg.Camera.Width},
		{"SAMPLES", &cfg.Sampling.SamplesPerPixel},
		{"DEPTH", &cfg.Sampling.MaxDepth},
	}
	for _, v := range ints {
		value, ok := lookup(EnvPrefix + v.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, EnvPrefix, v.key, value)
		}
		*v.target = n
	}

	if value, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q is not an integer", ErrInvalidConfig, EnvPrefix, value)
		}
		cfg.Seed = seed
	}

	if value, ok := lookup(EnvPrefix + "MOTION_BLUR"); ok {
		blur, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %sMOTION_BLUR=%q is not a boolean", ErrInvalidConfig, EnvPrefix, value)
		}
		cfg.Camera.MotionBlur = &blur
	}

	return nil
}

// Validate reports the first setting that cannot be rendered
func (c Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene must be set", ErrInvalidConfig)
	case c.Passes < 1:
		return fmt.Errorf("%w: passes must be at least 1, got %d", ErrInvalidConfig, c.Passes)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.ThumbnailWidth < 0:
		return fmt.Errorf("%w: thumbnail width must not be negative, got %d", ErrInvalidConfig, c.ThumbnailWidth)
	case c.Sampling.SamplesPerPixel < 0:
		return fmt.Errorf("%w: samples per pixel must not be negative, got %d", ErrInvalidConfig, c.Sampling.SamplesPerPixel)
	case c.Sampling.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.Sampling.MaxDepth)
	case c.Camera.Width < 0:
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalidConfig, c.Camera.Width)
	case c.Camera.AspectRatio < 0:
		return fmt.Errorf("%w: aspect ratio must not be negative, got %v", ErrInvalidConfig, c.Camera.AspectRatio)
	case c.Camera.VFov < 0 || c.Camera.VFov >= 180:
		return fmt.Errorf("%w: vertical fov must be in [0, 180), got %v", ErrInvalidConfig, c.Camera.VFov)
	case c.Camera.DefocusAngle < 0:
		return fmt.Errorf("%w: defocus angle must not be negative, got %v", ErrInvalidConfig, c.Camera.DefocusAngle)
	case c.Camera.FocusDistance < 0:
		return fmt.Errorf("%w: focus distance must not be negative, got %v", ErrInvalidConfig, c.Camera.FocusDistance)
	}

	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// OutputFormat returns the image format: from the output file's extension, or
// from Format when writing to stdout or the default output directory
func (c Config) OutputFormat() (imageio.Format, error) {
	if c.Output != "" && c.Output != "-" {
		return imageio.FormatFromPath(c.Output)
	}
	return imageio.FormatFromPath("." + c.Format)
}

// CameraOverrides converts the camera settings for renderer.MergeCameraConfig.
// An explicit false MotionBlur cannot be expressed here; see ApplyMotionBlur.
func (c Config) CameraOverrides() renderer.CameraConfig {
	cam := renderer.CameraConfig{
		Width:         c.Camera.Width,
		AspectRatio:   c.Camera.AspectRatio,
		VFov:          c.Camera.VFov,
		DefocusAngle:  c.Camera.DefocusAngle,
		FocusDistance: c.Camera.FocusDistance,
		MotionBlur:    c.Camera.MotionBlur != nil && *c.Camera.MotionBlur,
	}
	if c.Camera.LookFrom != nil {
		cam.LookFrom = c.Camera.LookFrom.toVec3()
	}
	if c.Camera.LookAt != nil {
		cam.LookAt = c.Camera.LookAt.toVec3()
	}
	if c.Camera.Up != nil {
		cam.Up = c.Camera.Up.toVec3()
	}
	return cam
}

// ApplyMotionBlur sets motion blur on cam when it was configured either way
func (c Config) ApplyMotionBlur(cam *renderer.CameraConfig) {
	if c.Camera.MotionBlur != nil {
		cam.MotionBlur = *c.Camera.MotionBlur
	}
}

// SamplingOverrides converts the sampling settings for renderer.MergeSamplingConfig
func (c Config) SamplingOverrides() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		SamplesPerPixel: c.Sampling.SamplesPerPixel,
		MaxDepth:        c.Sampling.MaxDepth,
	}
}

// MultiPassConfig returns the pass settings for renderer.NewMultiPassRenderer
func (c Config) MultiPassConfig() renderer.MultiPassConfig {
	return renderer.MultiPassConfig{
		Passes:     c.Passes,
		NumWorkers: c.Workers,
		Seed:       c.Seed,
	}
}
