package state

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SceneFormatVersion is written into every serialized scene.
const SceneFormatVersion = "1"

var ErrInvalidScene = errors.New("invalid scene")

// SceneData is the serialized form of a Scene.
type SceneData struct {
	Version    string  `json:"version"`
	Background string  `json:"background,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Objects    []Shape `json:"objects"`
}

// Encode snapshots the scene.
func (s *Scene) Encode() SceneData {
	return SceneData{
		Version:    SceneFormatVersion,
		Background: s.Background(),
		Width:      s.width,
		Height:     s.height,
		Objects:    s.Shapes(),
	}
}

// Validate checks every object before anything touches a live scene.
func (d SceneData) Validate() error {
	for i, o := range d.Objects {
		if err := validateShape(o); err != nil {
			return fmt.Errorf("%w: object %d: %w", ErrInvalidScene, i, err)
		}
	}
	return nil
}

func validateShape(o Shape) error {
	if _, err := ParseKind(string(o.Kind)); err != nil {
		return err
	}
	switch o.Kind {
	case KindCircle:
		if o.Radius <= 0 {
			return fmt.Errorf("circle radius must be positive, got %v", o.Radius)
		}
	case KindRectangle:
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("rectangle size must be positive, got %vx%v", o.Width, o.Height)
		}
	case KindTriangle:
		if len(o.Points) != 3 {
			return fmt.Errorf("triangle needs 3 points, got %d", len(o.Points))
		}
	}
	if o.StrokeWidth < 0 {
		return fmt.Errorf("negative stroke width %v", o.StrokeWidth)
	}
	return nil
}

// Load validates d and, only if it is valid, replaces the scene with it.
// Objects without an ID get a fresh one. The canvas keeps its own size.
func (s *Scene) Load(d SceneData) error {
	if err := d.Validate(); err != nil {
		return err
	}
	shapes := make([]Shape, len(d.Objects))
	for i, o := range d.Objects {
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		shapes[i] = o
	}
	s.Replace(shapes, d.Background)
	return nil
}
