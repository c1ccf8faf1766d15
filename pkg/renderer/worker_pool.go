package renderer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ColumnFunc renders one column on behalf of a worker
type ColumnFunc func(workerID, col int) error

// WorkerPool stripes image columns across a fixed set of workers:
// worker k owns columns k, k+N, k+2N, ...
type WorkerPool struct {
	width      int
	numWorkers int
}

// Worker handles the columns of one stripe
type Worker struct {
	ID   int
	pool *WorkerPool
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(width, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{width: width, numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Columns returns the columns owned by a worker, in processing order
func (wp *WorkerPool) Columns(workerID int) []int {
	var cols []int
	for col := workerID; col < wp.width; col += wp.numWorkers {
		cols = append(cols, col)
	}
	return cols
}

// Run starts every worker and waits for all of them. The first failure,
// including a recovered panic, stops the remaining workers at their next
// column boundary and is returned.
func (wp *WorkerPool) Run(renderColumn ColumnFunc) error {
	g, ctx := errgroup.WithContext(context.Background())
	for id := 0; id < wp.numWorkers; id++ {
		worker := &Worker{ID: id, pool: wp}
		g.Go(func() (err error) {
			defer recoverWorker(&err, "column worker %d", worker.ID)
			return worker.run(ctx, renderColumn)
		})
	}
	return g.Wait()
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, renderColumn ColumnFunc) error {
	for _, col := range w.pool.Columns(w.ID) {
		if err := ctx.Err(); err != nil {
			return nil // another worker failed; its error is reported
		}
		if err := renderColumn(w.ID, col); err != nil {
			return fmt.Errorf("column worker %d, column %d: %w", w.ID, col, err)
		}
	}
	return nil
}

// recoverWorker turns a panic in a worker goroutine into its returned error
func recoverWorker(err *error, format string, args ...any) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s panicked: %v", fmt.Sprintf(format, args...), r)
	}
}
