package renderer

import (
	"errors"
	"testing"
)

func TestCanvas_WriteOnce(t *testing.T) {
	canvas := NewCanvas(3, 2)
	if err := canvas.Set(1, 2, RGB{1, 2, 3}); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := canvas.Set(1, 2, RGB{4, 5, 6}); !errors.Is(err, ErrCellRewritten) {
		t.Errorf("Second write should fail with ErrCellRewritten, got %v", err)
	}
	if got := canvas.At(1, 2); got != (RGB{1, 2, 3}) {
		t.Errorf("Rejected write must not change the cell, got %+v", got)
	}
}

func TestCanvas_OutOfRange(t *testing.T) {
	canvas := NewCanvas(3, 2)
	for _, cell := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}} {
		if err := canvas.Set(cell[0], cell[1], RGB{}); err == nil {
			t.Errorf("Write to (%d, %d) should fail", cell[0], cell[1])
		}
	}
}

func TestCanvas_CompleteAndImage(t *testing.T) {
	canvas := NewCanvas(2, 2)
	cells := map[[2]int]RGB{
		{0, 0}: {255, 0, 0},
		{0, 1}: {0, 255, 0},
		{1, 0}: {0, 0, 255},
		{1, 1}: {10, 20, 30},
	}
	for cell, px := range cells {
		if canvas.Complete() {
			t.Fatal("Canvas should not be complete before every cell is written")
		}
		if err := canvas.Set(cell[0], cell[1], px); err != nil {
			t.Fatal(err)
		}
	}
	if !canvas.Complete() || canvas.Written() != 4 {
		t.Fatalf("Canvas should be complete, written=%d", canvas.Written())
	}

	img := canvas.Image()
	for cell, px := range cells {
		got := img.RGBAAt(cell[1], cell[0])
		if got.R != px.R || got.G != px.G || got.B != px.B || got.A != 255 {
			t.Errorf("Image pixel at row %d col %d: expected %+v, got %+v", cell[0], cell[1], px, got)
		}
	}
}
