package export

import (
	"fmt"
	"io"

	"PaintBoard/internal/document"
	"PaintBoard/internal/render"
)

// PNG rasterizes p at its canvas size.
func PNG(w io.Writer, p document.Painting) error {
	if !p.HasCanvas() {
		return fmt.Errorf("export png: painting has no canvas")
	}
	return render.WritePNG(w, *p.Canvas)
}
