package renderer

import (
	"sync"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Progress counts finished units of work and reports each one
type Progress struct {
	mu        sync.Mutex
	completed int
	total     int
	label     string
	logger    core.Logger
}

// NewProgress creates a counter for total units, logged as "Completed <label> n/total"
func NewProgress(label string, total int, logger core.Logger) *Progress {
	return &Progress{label: label, total: total, logger: logger}
}

// Done marks one unit complete and returns the new count
func (p *Progress) Done() int {
	p.mu.Lock()
	p.completed++
	completed := p.completed
	p.mu.Unlock()

	p.logger.Printf("Completed %s %d/%d\n", p.label, completed, p.total)
	return completed
}

// Completed returns the number of finished units
func (p *Progress) Completed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}
