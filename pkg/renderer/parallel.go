package renderer

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// ParallelConfig contains configuration for parallel rendering
type ParallelConfig struct {
	NumWorkers      int    // Column workers (0 = use CPU count)
	SamplingWorkers int    // Workers sharing each pixel's sample budget
	Seed            uint64 // Base seed for every sampling stream
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		NumWorkers:      0,
		SamplingWorkers: 4,
		Seed:            42,
	}
}

// ParallelRenderer renders a scene on a two-tier pool: column workers own
// disjoint stripes of the canvas, and each pixel's samples are split across
// a small group of sampling workers.
type ParallelRenderer struct {
	raytracer *Raytracer
	config    ParallelConfig
	pool      *WorkerPool
	logger    core.Logger
}

// NewParallelRenderer creates a parallel renderer for the scene
func NewParallelRenderer(scene Scene, config ParallelConfig, logger core.Logger) (*ParallelRenderer, error) {
	sampling := scene.GetSamplingConfig()
	if sampling.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("samples per pixel must be positive, got %d", sampling.SamplesPerPixel)
	}
	if sampling.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", sampling.MaxDepth)
	}
	if config.SamplingWorkers <= 0 {
		config.SamplingWorkers = 1
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	raytracer := NewRaytracer(scene)
	return &ParallelRenderer{
		raytracer: raytracer,
		config:    config,
		pool:      NewWorkerPool(raytracer.Camera().Width(), config.NumWorkers),
		logger:    logger,
	}, nil
}

// Render produces the full image. Either every cell is written and the
// canvas is returned, or an error is returned and no canvas.
func (pr *ParallelRenderer) Render() (*Canvas, RenderStats, error) {
	start := time.Now()
	camera := pr.raytracer.Camera()
	width, height := camera.Width(), camera.Height()
	samples := pr.raytracer.SamplingConfig().SamplesPerPixel

	pr.logger.Printf("Rendering %dx%d, %d samples per pixel (using %d column workers, %d sampling workers)...\n",
		width, height, samples, pr.pool.GetNumWorkers(), pr.config.SamplingWorkers)

	canvas := NewCanvas(width, height)
	progress := NewProgress("column", width, pr.logger)

	err := pr.pool.Run(func(_, col int) error {
		if err := pr.renderColumn(canvas, col); err != nil {
			return err
		}
		progress.Done()
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", err)
	}
	if !canvas.Complete() {
		return nil, RenderStats{}, fmt.Errorf("render failed: %d of %d cells written", canvas.Written(), width*height)
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		TotalSamples:    width * height * samples,
		SamplesPerPixel: samples,
		NumWorkers:      pr.pool.GetNumWorkers(),
		SamplingWorkers: pr.config.SamplingWorkers,
		Duration:        time.Since(start),
	}
	return canvas, stats, nil
}

// renderColumn renders every row of one column, top to bottom
func (pr *ParallelRenderer) renderColumn(canvas *Canvas, col int) error {
	for row := 0; row < canvas.Height(); row++ {
		c, err := pr.samplePixel(row, col)
		if err != nil {
			return err
		}
		if err := canvas.Set(row, col, ToRGB(c)); err != nil {
			return err
		}
	}
	return nil
}

// samplePixel averages the pixel's samples, computed by the sampling workers
func (pr *ParallelRenderer) samplePixel(row, col int) (core.Color, error) {
	shares := SplitSamples(pr.raytracer.SamplingConfig().SamplesPerPixel, pr.config.SamplingWorkers)
	acc := NewPixelAccumulator(len(shares))

	var g errgroup.Group
	for k, n := range shares {
		if n == 0 {
			continue
		}
		g.Go(func() (err error) {
			defer recoverWorker(&err, "sampling worker %d for pixel (%d, %d)", k, row, col)
			sampler := core.NewSeededSampler(pr.config.Seed, pixelStream(row, col, k))
			acc.Add(k, pr.raytracer.SampleSum(row, col, n, sampler), n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return core.Color{}, err
	}

	total := acc.SampleCount()
	return acc.Average(total), nil
}

// SplitSamples divides samples evenly across workers; the last worker also takes the remainder
func SplitSamples(samples, workers int) []int {
	shares := make([]int, workers)
	base := samples / workers
	for k := range shares {
		shares[k] = base
	}
	shares[workers-1] += samples % workers
	return shares
}

// pixelStream derives an independent random stream id for one sampling worker of one pixel
func pixelStream(row, col, worker int) uint64 {
	x := uint64(row)<<40 ^ uint64(col)<<16 ^ uint64(worker)
	// splitmix64 finalizer
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
