package ui

import "fyne.io/fyne/v2"

// ShapeTypeKey is the data transfer key a palette drag stores its kind under.
const ShapeTypeKey = "shape-type"

type DropEffect string

const (
	DropEffectNone DropEffect = "none"
	DropEffectCopy DropEffect = "copy"
)

// DataTransfer carries the payload of one drag operation from its source to
// the drop target.
type DataTransfer struct {
	data          map[string]string
	EffectAllowed DropEffect
	DropEffect    DropEffect
}

func NewDataTransfer() *DataTransfer {
	return &DataTransfer{
		data:          make(map[string]string),
		EffectAllowed: DropEffectNone,
		DropEffect:    DropEffectNone,
	}
}

func (d *DataTransfer) SetData(key, value string) { d.data[key] = value }

// GetData returns the value under key, or "" when absent.
func (d *DataTransfer) GetData(key string) string { return d.data[key] }

// DragSession is a finished drag: what was carried and where, in absolute
// window coordinates, it was released.
type DragSession struct {
	Transfer *DataTransfer
	Position fyne.Position
}
