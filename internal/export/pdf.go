// Package export writes paintings to the non-JSON formats offered in the
// header bar.
package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"PaintBoard/internal/document"
	"PaintBoard/internal/render"
	"PaintBoard/internal/state"
)

// PDF writes a single-page vector rendition of p, one point per canvas pixel.
func PDF(w io.Writer, p document.Painting) error {
	if !p.HasCanvas() {
		return fmt.Errorf("export pdf: painting has no canvas")
	}
	scene := *p.Canvas
	width, height := scene.Width, scene.Height
	if width <= 0 || height <= 0 {
		width, height = 700, 450
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetTitle(p.Title, true)
	pdf.SetCreator("PaintBoard", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	setFill(pdf, render.Color(scene.Background, color.Black))
	pdf.Rect(0, 0, width, height, "F")

	for _, sh := range scene.Objects {
		drawShape(pdf, sh)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return pdf.Output(w)
}

func drawShape(pdf *gofpdf.Fpdf, sh state.Shape) {
	style := "F"
	setFill(pdf, render.Color(sh.Fill, color.Black))
	if sh.StrokeWidth > 0 && sh.Stroke != "" {
		r, g, b := rgb(render.Color(sh.Stroke, color.Black))
		pdf.SetDrawColor(r, g, b)
		pdf.SetLineWidth(sh.StrokeWidth)
		style = "FD"
	}

	switch sh.Kind {
	case state.KindCircle:
		c := sh.Bounds().Center()
		pdf.Circle(c.X, c.Y, sh.Radius, style)
	case state.KindRectangle:
		pdf.Rect(sh.Left, sh.Top, sh.Width, sh.Height, style)
	case state.KindTriangle:
		v := sh.Vertices()
		pts := make([]gofpdf.PointType, len(v))
		for i, p := range v {
			pts[i] = gofpdf.PointType{X: p.X, Y: p.Y}
		}
		pdf.Polygon(pts, style)
	}
}

func setFill(pdf *gofpdf.Fpdf, c color.Color) {
	r, g, b := rgb(c)
	pdf.SetFillColor(r, g, b)
}

func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}
