package state

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	// NominalSize is the width and height of every freshly placed shape.
	NominalSize = 60.0
	// PlacementMargin keeps randomly placed shapes away from the canvas edge.
	PlacementMargin = 50.0

	DefaultStroke      = "hsl(220, 100%, 70%)"
	DefaultStrokeWidth = 2.0
)

// DefaultPalette is the set of fills new shapes draw from.
var DefaultPalette = []string{
	"hsl(200, 80%, 60%)",
	"hsl(150, 70%, 55%)",
	"hsl(180, 75%, 50%)",
	"hsl(120, 65%, 60%)",
	"hsl(220, 85%, 65%)",
}

// NewShape builds a shape of the given kind whose bounding box starts at origin.
func NewShape(kind Kind, origin Point, fill string) (Shape, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Shape{}, err
	}
	s := Shape{
		ID:          uuid.NewString(),
		Kind:        kind,
		Left:        origin.X,
		Top:         origin.Y,
		Fill:        fill,
		Stroke:      DefaultStroke,
		StrokeWidth: DefaultStrokeWidth,
	}
	half := NominalSize / 2
	switch kind {
	case KindCircle:
		s.Radius = half
	case KindRectangle:
		s.Width = NominalSize
		s.Height = NominalSize
	case KindTriangle:
		s.Points = []Point{{X: 0, Y: -half}, {X: half, Y: half}, {X: -half, Y: half}}
	}
	return s, nil
}

// CenteredOrigin places a shape so the centre of its box lands on (x, y).
func CenteredOrigin(x, y float64) Point {
	return Point{X: x - NominalSize/2, Y: y - NominalSize/2}
}

// RandomOrigin picks a uniformly random origin that keeps the whole shape
// inside the canvas with PlacementMargin on every side.
func RandomOrigin(rng *rand.Rand, width, height float64) Point {
	return Point{
		X: PlacementMargin + rng.Float64()*span(width),
		Y: PlacementMargin + rng.Float64()*span(height),
	}
}

func span(extent float64) float64 {
	s := extent - 2*PlacementMargin - NominalSize
	if s < 0 {
		return 0
	}
	return s
}

// PickColor draws a fill uniformly from palette, falling back to
// DefaultPalette when it is empty.
func PickColor(rng *rand.Rand, palette []string) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[rng.IntN(len(palette))]
}
