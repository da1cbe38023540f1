package ui

import (
	"image"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/render"
	"PaintBoard/internal/state"
)

// Palette lists one entry per shape kind. Tapping an entry selects its kind;
// dragging it carries the kind to wherever it is released. It holds no state
// of its own.
type Palette struct {
	entries []*PaletteEntry

	OnSelect  func(state.Kind)
	OnDragEnd func(DragSession)
}

func NewPalette() *Palette {
	p := &Palette{}
	for _, k := range state.Kinds {
		p.entries = append(p.entries, newPaletteEntry(k, p))
	}
	return p
}

// Entry returns the entry for kind, or nil.
func (p *Palette) Entry(kind state.Kind) *PaletteEntry {
	for _, e := range p.entries {
		if e.kind == kind {
			return e
		}
	}
	return nil
}

func (p *Palette) Object() fyne.CanvasObject {
	items := []fyne.CanvasObject{
		widget.NewLabelWithStyle("Shapes", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
	}
	for _, e := range p.entries {
		items = append(items, e)
	}
	items = append(items,
		layout.NewSpacer(),
		widget.NewLabelWithStyle("Click to add or drag to canvas", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	)
	return container.NewVBox(items...)
}

// PaletteEntry is one tappable, draggable kind.
type PaletteEntry struct {
	widget.BaseWidget
	kind    state.Kind
	palette *Palette

	drag *DragSession
}

var _ fyne.Tappable = (*PaletteEntry)(nil)
var _ fyne.Draggable = (*PaletteEntry)(nil)

func newPaletteEntry(k state.Kind, p *Palette) *PaletteEntry {
	e := &PaletteEntry{kind: k, palette: p}
	e.ExtendBaseWidget(e)
	return e
}

func (e *PaletteEntry) Kind() state.Kind { return e.kind }

func (e *PaletteEntry) Tapped(_ *fyne.PointEvent) {
	if e.palette.OnSelect != nil {
		e.palette.OnSelect(e.kind)
	}
}

// Dragged starts a drag session on the first movement and tracks the
// pointer afterwards.
func (e *PaletteEntry) Dragged(ev *fyne.DragEvent) {
	if e.drag == nil {
		dt := NewDataTransfer()
		dt.SetData(ShapeTypeKey, string(e.kind))
		dt.EffectAllowed = DropEffectCopy
		e.drag = &DragSession{Transfer: dt}
		slog.Debug("[PALETTE] drag started", "kind", e.kind)
	}
	e.drag.Position = ev.AbsolutePosition
}

func (e *PaletteEntry) DragEnd() {
	sess := e.drag
	e.drag = nil
	if sess != nil && e.palette.OnDragEnd != nil {
		e.palette.OnDragEnd(*sess)
	}
}

func (e *PaletteEntry) CreateRenderer() fyne.WidgetRenderer {
	icon := kindIconObject(e.kind)
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	border.CornerRadius = 8

	row := container.NewHBox(icon, widget.NewLabel(e.kind.Title()))
	return widget.NewSimpleRenderer(container.NewStack(border, container.NewPadded(row)))
}

func kindIconObject(k state.Kind) *canvas.Image {
	icon := canvas.NewImageFromImage(kindIcon(k))
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSize(32, 32))
	return icon
}

// kindIcon draws a single shape of kind the way the canvas would.
func kindIcon(k state.Kind) image.Image {
	const size = 64
	sh, err := state.NewShape(k, state.CenteredOrigin(size/2, size/2), state.DefaultPalette[0])
	if err != nil {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	img, err := render.Image(state.SceneData{
		Background: "transparent",
		Width:      size,
		Height:     size,
		Objects:    []state.Shape{sh},
	}, size, size)
	if err != nil {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return img
}
