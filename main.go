package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-multipass-raytracer/pkg/config"
	"github.com/df07/go-multipass-raytracer/pkg/core"
	"github.com/df07/go-multipass-raytracer/pkg/imageio"
	"github.com/df07/go-multipass-raytracer/pkg/renderer"
	"github.com/df07/go-multipass-raytracer/pkg/scene"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the command line settings that are not part of config.Config
type options struct {
	help       bool
	listScenes bool
}

// run executes the command and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	cfg, opts, err := parseConfig(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.help {
		printHelp(stdout)
		return 0
	}
	if opts.listScenes {
		for _, info := range scene.List() {
			fmt.Fprintf(stdout, "  %-12s %s\n", info.Name, info.Description)
		}
		return 0
	}

	logger := renderer.NewWriterLogger(stderr)
	if err := render(cfg, stdout, stderr, logger); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseConfig builds the configuration from defaults, the YAML file, the
// environment and finally the flags the user actually set
func parseConfig(args []string, stderr io.Writer) (config.Config, options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML render configuration file")
	envFile := fs.String("env", ".env", "Environment file with RAYTRACER_* overrides")
	sceneName := fs.String("scene", "default", "Scene name (see -list)")
	output := fs.String("out", "", "Output file, '-' for stdout (default output/<scene>/render_<timestamp>.<format>)")
	format := fs.String("format", "ppm", fmt.Sprintf("Output format when -out is empty or '-', one of %v", imageio.Formats))
	passes := fs.Int("passes", 4, "Number of independent passes to average")
	workers := fs.Int("workers", 0, "Passes rendered at once (0 = CPU count)")
	seed := fs.Int64("seed", 0, "Seed for reproducible renders (0 = random)")
	width := fs.Int("width", 0, "Image width override")
	samples := fs.Int("samples", 0, "Samples per pixel override (split across passes)")
	depth := fs.Int("depth", 0, "Maximum bounce depth override")
	thumbnail := fs.Int("thumbnail", 0, "Width of a PNG thumbnail written next to the output (0 = none)")
	motionBlur := fs.Bool("motion-blur", false, "Sample ray times for moving objects")
	fs.BoolVar(&opts.listScenes, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, opts, err
	}

	cfg := config.Default()
	if *configPath != "" {
		if err := config.LoadFile(*configPath, &cfg); err != nil {
			return config.Config{}, opts, err
		}
	}
	if err := config.LoadEnv(*envFile, &cfg); err != nil {
		return config.Config{}, opts, err
	}

	// Only flags given on the command line override the file and environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneName
		case "out":
			cfg.Output = *output
		case "format":
			cfg.Format = *format
		case "passes":
			cfg.Passes = *passes
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "width":
			cfg.Camera.Width = *width
		case "samples":
			cfg.Sampling.SamplesPerPixel = *samples
		case "depth":
			cfg.Sampling.MaxDepth = *depth
		case "thumbnail":
			cfg.ThumbnailWidth = *thumbnail
		case "motion-blur":
			blur := *motionBlur
			cfg.Camera.MotionBlur = &blur
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, opts, err
	}
	return cfg, opts, nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Multi-pass Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings are read from defaults, then -config, then .env and RAYTRACER_* variables, then flags.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-12s %s\n", info.Name, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run with -h for the list of options.")
}

// createScene builds the named scene with the configured overrides applied
func createScene(cfg config.Config) (*scene.Scene, error) {
	s, err := scene.New(cfg.Scene, cfg.CameraOverrides())
	if err != nil {
		return nil, err
	}
	cfg.ApplyMotionBlur(&s.CameraConfig)
	s.SamplingConfig = renderer.MergeSamplingConfig(s.SamplingConfig, cfg.SamplingOverrides())
	return s, nil
}

// outputPath returns where the image goes; "-" means stdout
func outputPath(cfg config.Config, format imageio.Format, now time.Time) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", cfg.Scene, fmt.Sprintf("render_%s.%s", timestamp, format))
}

// thumbnailPath places the thumbnail next to the image
func thumbnailPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + "_thumb.png"
}

func render(cfg config.Config, stdout, stderr io.Writer, logger core.Logger) error {
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	s, err := createScene(cfg)
	if err != nil {
		return err
	}

	camera := renderer.NewCamera(s.CameraConfig)
	logger.Printf("Scene %q: %d objects, %d materials, %dx%d\n",
		cfg.Scene, s.GetPrimitiveCount(), s.Materials.Len(), camera.ImageWidth(), camera.ImageHeight())
	if moving := s.MovingSphereCount(); moving > 0 && !s.CameraConfig.MotionBlur {
		logger.Printf("Motion blur is off: %d moving spheres are rendered at their start position\n", moving)
	}

	mr := renderer.NewMultiPassRenderer(s, camera, s.SamplingConfig, cfg.MultiPassConfig(), logger)
	mr.SetProgressOutput(stderr)

	frame, _, err := mr.Render()
	if err != nil {
		return err
	}

	path := outputPath(cfg, format, time.Now())
	if path == "-" {
		if err := imageio.Encode(stdout, format, frame); err != nil {
			return fmt.Errorf("writing image to stdout: %w", err)
		}
		if cfg.ThumbnailWidth > 0 {
			logger.Printf("Skipping thumbnail when writing to stdout\n")
		}
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := imageio.WriteImage(path, frame); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", path)

	if cfg.ThumbnailWidth > 0 {
		thumb := thumbnailPath(path)
		if err := imageio.WriteThumbnail(thumb, frame, cfg.ThumbnailWidth); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumb)
	}
	return nil
}
