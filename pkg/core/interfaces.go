package core

import (
	"fmt"
	"io"
	"os"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// WriterLogger implements Logger on top of an io.Writer
type WriterLogger struct {
	w io.Writer
}

// NewDefaultLogger creates a logger writing to stderr, keeping stdout free for image data
func NewDefaultLogger() Logger {
	return &WriterLogger{w: os.Stderr}
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) Logger {
	return &WriterLogger{w: w}
}

func (l *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
