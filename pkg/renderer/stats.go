package renderer

import (
	"sync"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	NumWorkers      int           // Column workers used
	SamplingWorkers int           // Sampling workers per pixel
	Duration        time.Duration // Wall-clock render time
}

// PixelAccumulator collects partial color sums for one pixel from several
// sampling workers. Partials are combined in worker order so the result does
// not depend on which worker finished first.
type PixelAccumulator struct {
	mu       sync.Mutex
	partials []core.Color
	samples  int
}

// NewPixelAccumulator creates an accumulator for the given number of sampling workers
func NewPixelAccumulator(workers int) *PixelAccumulator {
	return &PixelAccumulator{partials: make([]core.Color, workers)}
}

// Add records the partial sum of n samples computed by worker
func (pa *PixelAccumulator) Add(worker int, sum core.Color, n int) {
	pa.mu.Lock()
	defer pa.mu.Unlock()
	pa.partials[worker] = pa.partials[worker].Add(sum)
	pa.samples += n
}

// SampleCount returns the number of samples recorded so far
func (pa *PixelAccumulator) SampleCount() int {
	pa.mu.Lock()
	defer pa.mu.Unlock()
	return pa.samples
}

// Average returns the mean color over totalSamples samples
func (pa *PixelAccumulator) Average(totalSamples int) core.Color {
	pa.mu.Lock()
	defer pa.mu.Unlock()
	sum := core.Color{}
	for _, partial := range pa.partials {
		sum = sum.Add(partial)
	}
	return sum.Divide(float64(totalSamples))
}
