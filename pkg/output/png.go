package output

import (
	"fmt"

	"github.com/fogleman/gg"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// SavePNG writes the canvas to a PNG file
func SavePNG(path string, canvas *renderer.Canvas) error {
	ctx := gg.NewContextForRGBA(canvas.Image())
	if err := ctx.SavePNG(path); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return nil
}
