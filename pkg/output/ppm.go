// Package output encodes rendered canvases as image files.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// WritePPM writes the canvas as a plain-text (P3) PPM image: a header with
// the dimensions and maximum channel value, then one line per row with
// pixels separated by two spaces, top row first.
func WritePPM(w io.Writer, canvas *renderer.Canvas) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n%d\n", canvas.Width(), canvas.Height(), renderer.MaxColor); err != nil {
		return err
	}

	for row := 0; row < canvas.Height(); row++ {
		for col := 0; col < canvas.Width(); col++ {
			px := canvas.At(row, col)
			sep := "  "
			if col == canvas.Width()-1 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(bw, "%d %d %d%s", px.R, px.G, px.B, sep); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// SavePPM writes the canvas to a PPM file, or to stdout when path is "-"
func SavePPM(path string, canvas *renderer.Canvas) error {
	if path == "-" {
		return WritePPM(os.Stdout, canvas)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := WritePPM(file, canvas); err != nil {
		file.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return file.Close()
}
