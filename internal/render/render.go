// Package render rasterizes a scene with gg. The drawing surface uses it to
// paint the canvas and the PNG exporter uses it to write files.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log/slog"

	"github.com/gogpu/gg"

	"PaintBoard/internal/state"
)

const fallbackBackground = "#1a1a2e"

// Draw paints d onto dc, scaled so the scene's canvas fills the context.
func Draw(dc *gg.Context, d state.SceneData) error {
	bg, err := ParseColor(d.Background)
	if err != nil {
		bg, _ = ParseColor(fallbackBackground)
	}
	dc.ClearWithColor(bg)

	if d.Width > 0 && d.Height > 0 {
		dc.Push()
		defer dc.Pop()
		dc.Scale(float64(dc.Width())/d.Width, float64(dc.Height())/d.Height)
	}

	for _, sh := range d.Objects {
		if err := drawShape(dc, sh); err != nil {
			return fmt.Errorf("draw %s %s: %w", sh.Kind, sh.ID, err)
		}
	}
	return nil
}

func tracePath(dc *gg.Context, sh state.Shape) bool {
	switch sh.Kind {
	case state.KindCircle:
		c := sh.Bounds().Center()
		dc.DrawCircle(c.X, c.Y, sh.Radius)
	case state.KindRectangle:
		dc.DrawRectangle(sh.Left, sh.Top, sh.Width, sh.Height)
	case state.KindTriangle:
		v := sh.Vertices()
		if len(v) == 0 {
			return false
		}
		dc.MoveTo(v[0].X, v[0].Y)
		for _, p := range v[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
	default:
		return false
	}
	return true
}

func drawShape(dc *gg.Context, sh state.Shape) error {
	if !tracePath(dc, sh) {
		slog.Debug("[RENDER] skipping shape", "kind", sh.Kind)
		return nil
	}
	if fill, err := ParseColor(sh.Fill); err == nil {
		dc.SetFillBrush(gg.Solid(fill))
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	if stroke, err := ParseColor(sh.Stroke); err == nil && sh.StrokeWidth > 0 {
		dc.SetStrokeBrush(gg.Solid(stroke))
		dc.SetLineWidth(sh.StrokeWidth)
		if err := dc.StrokePreserve(); err != nil {
			return err
		}
	}
	dc.ClearPath()
	return nil
}

// Image renders d into a width x height RGBA image.
func Image(d state.SceneData, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid size %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	defer dc.Close()

	if err := Draw(dc, d); err != nil {
		return nil, err
	}
	src := dc.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out, nil
}

// WritePNG renders d at its own canvas size and encodes it as PNG.
func WritePNG(w io.Writer, d state.SceneData) error {
	img, err := Image(d, int(d.Width), int(d.Height))
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
