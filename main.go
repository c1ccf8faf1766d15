package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene           string
	config          string
	scenesDir       string
	list            bool
	width           int
	samples         int
	depth           int
	workers         int
	samplingWorkers int
	seed            uint64
	out             string
	png             string
	single          bool
	bvh             bool
}

func parseOptions(args []string, usage io.Writer) (*options, error) {
	defaults := renderer.DefaultParallelConfig()
	opts := &options{}

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&opts.scene, "scene", "random", "Scene: 'random', 'simple' or 'three'")
	fs.StringVar(&opts.config, "config", "", "JSON scene file (overrides -scene)")
	fs.StringVar(&opts.scenesDir, "scenes-dir", "scenes", "Directory searched for JSON scenes by -list")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum bounce depth, 0 renders the background only (-1 = scene default)")
	fs.IntVar(&opts.workers, "workers", defaults.NumWorkers, "Column workers (0 = CPU count)")
	fs.IntVar(&opts.samplingWorkers, "sampling-workers", defaults.SamplingWorkers, "Sampling workers per pixel")
	fs.Uint64Var(&opts.seed, "seed", defaults.Seed, "Random seed for the scene layout and sampling")
	fs.StringVar(&opts.out, "out", "-", "PPM output path ('-' = stdout)")
	fs.StringVar(&opts.png, "png", "", "Also save a PNG to this path")
	fs.BoolVar(&opts.single, "single", false, "Render single-threaded, scanning rows top to bottom")
	fs.BoolVar(&opts.bvh, "bvh", true, "Intersect through a BVH instead of the flat sphere list")
	fs.Usage = func() {
		fmt.Fprintln(usage, "Sphere Path Tracer")
		fmt.Fprintln(usage, "Usage: pathtracer [options] > image.ppm")
		fmt.Fprintln(usage)
		fmt.Fprintln(usage, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(usage)
		fmt.Fprintln(usage, "Available scenes:")
		for _, info := range scene.BuiltInScenes() {
			fmt.Fprintf(usage, "  %-7s - %s\n", info.ID, info.Description)
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// createScene builds the selected scene and applies command line overrides
func createScene(opts *options) (*scene.Scene, error) {
	id := opts.scene
	if opts.config != "" {
		id = "config:" + opts.config
	}

	s, err := scene.Create(id, opts.seed, renderer.CameraConfig{Width: opts.width})
	if err != nil {
		return nil, err
	}
	if opts.samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.samples
	}
	if opts.depth >= 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	if opts.bvh {
		if err := s.Preprocess(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func listScenes(w io.Writer, dir string) error {
	groups, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

func render(s *scene.Scene, opts *options, logger core.Logger) (*renderer.Canvas, error) {
	if opts.single {
		raytracer := renderer.NewRaytracer(s)
		return raytracer.RenderPass(core.NewSeededSampler(opts.seed, 0), logger), nil
	}

	pr, err := renderer.NewParallelRenderer(s, renderer.ParallelConfig{
		NumWorkers:      opts.workers,
		SamplingWorkers: opts.samplingWorkers,
		Seed:            opts.seed,
	}, logger)
	if err != nil {
		return nil, err
	}
	canvas, stats, err := pr.Render()
	if err != nil {
		return nil, err
	}
	logger.Printf("Rendered %d pixels, %d samples on %d column workers x %d sampling workers\n",
		stats.TotalPixels, stats.TotalSamples, stats.NumWorkers, stats.SamplingWorkers)
	return canvas, nil
}

func run(args []string, stdout, stderr io.Writer, logger core.Logger) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	if opts.list {
		return listScenes(stdout, opts.scenesDir)
	}

	s, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d spheres, %dx%d, %d samples, depth %d)...\n",
		s.Name, s.GetPrimitiveCount(), s.Camera.Width(), s.Camera.Height(),
		s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)

	startTime := time.Now()
	canvas, err := render(s, opts, logger)
	if err != nil {
		return err
	}
	logger.Printf("Render completed in %v\n", time.Since(startTime))

	if opts.out == "-" {
		if err := output.WritePPM(stdout, canvas); err != nil {
			return fmt.Errorf("error writing image: %w", err)
		}
	} else {
		if err := output.SavePPM(opts.out, canvas); err != nil {
			return err
		}
		logger.Printf("Render saved as %s\n", opts.out)
	}

	if opts.png != "" {
		if err := output.SavePNG(opts.png, canvas); err != nil {
			return err
		}
		logger.Printf("Render saved as %s\n", opts.png)
	}
	return nil
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr, core.NewDefaultLogger())
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
