package state

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags a shape record with its concrete variant.
type Kind string

const (
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
	KindTriangle  Kind = "triangle"
)

// Kinds lists every placeable kind in palette order.
var Kinds = []Kind{KindCircle, KindRectangle, KindTriangle}

var ErrUnknownKind = errors.New("unknown shape kind")

// ParseKind maps a drag payload or a serialized "type" field to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.TrimSpace(s)); k {
	case KindCircle, KindRectangle, KindTriangle:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) Valid() bool {
	_, err := ParseKind(string(k))
	return err == nil
}

// Title is the capitalised kind name used in notifications.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is one object on the canvas. Left/Top is the top-left corner of the
// shape's nominal bounding box; the geometry fields that apply depend on Kind.
type Shape struct {
	ID          string  `json:"id,omitempty"`
	Kind        Kind    `json:"type"`
	Left        float64 `json:"left"`
	Top         float64 `json:"top"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Radius      float64 `json:"radius,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Points      []Point `json:"points,omitempty"`
}

func (s Shape) clone() Shape {
	if s.Points != nil {
		s.Points = append([]Point(nil), s.Points...)
	}
	return s
}

type OpType string

const (
	OpInsertShape OpType = "insert_shape"
	OpDeleteShape OpType = "delete_shape"
	OpReplace     OpType = "replace"
)

// Change describes one committed scene mutation.
type Change struct {
	Op       OpType
	Shape    Shape // zero for OpReplace
	Revision uint64
	Tally    Tally
}
