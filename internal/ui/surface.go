package ui

import (
	"errors"
	"image"
	"log/slog"
	"math/rand/v2"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/render"
	"PaintBoard/internal/state"
)

var ErrCanvasNotReady = errors.New("canvas is not ready")

// ShapeAdder is the capability the surface hands to its container: the only
// way anything outside the surface puts shapes on the canvas.
type ShapeAdder interface {
	AddShape(kind state.Kind) error
	AddShapeAt(kind state.Kind, x, y float64) error
}

// SurfaceConfig fixes the canvas the surface creates when mounted.
type SurfaceConfig struct {
	Width      float64
	Height     float64
	Background string
	Palette    []string
	ReadOnly   bool
}

// Surface hosts the canvas. It owns the scene for as long as it is mounted
// and builds every shape placed on it.
type Surface struct {
	widget.BaseWidget

	cfg      SurfaceConfig
	notifier Notifier
	rng      *rand.Rand

	scene  *state.Scene
	ready  bool
	unsubs []func()

	// OnChange runs after every committed scene change, after the redraw.
	OnChange func(state.Change)
}

var _ fyne.Widget = (*Surface)(nil)
var _ fyne.DoubleTappable = (*Surface)(nil)
var _ ShapeAdder = (*Surface)(nil)

func NewSurface(cfg SurfaceConfig, n Notifier) *Surface {
	now := uint64(time.Now().UnixNano())
	s := &Surface{
		cfg:      cfg,
		notifier: n,
		rng:      rand.New(rand.NewPCG(now, now>>1|1)),
	}
	s.ExtendBaseWidget(s)
	return s
}

// Mount creates the canvas and starts listening to it.
func (s *Surface) Mount() {
	if s.ready {
		return
	}
	s.scene = state.NewScene(s.cfg.Width, s.cfg.Height, s.cfg.Background)
	s.unsubs = append(s.unsubs, s.scene.Subscribe(s.sceneChanged))
	s.ready = true
	slog.Debug("[SURFACE] mounted", "width", s.cfg.Width, "height", s.cfg.Height)
	s.Refresh()
}

// Unmount removes every listener added at mount and drops the canvas.
func (s *Surface) Unmount() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	s.scene = nil
	s.ready = false
	slog.Debug("[SURFACE] unmounted")
}

func (s *Surface) Ready() bool { return s.ready }

func (s *Surface) sceneChanged(ch state.Change) {
	s.Refresh()
	if s.OnChange != nil {
		s.OnChange(ch)
	}
}

// AddShape places a shape of kind at a random spot on the canvas.
func (s *Surface) AddShape(kind state.Kind) error {
	if !s.ready {
		return s.notReady()
	}
	w, h := s.scene.Size()
	return s.add(kind, state.RandomOrigin(s.rng, w, h))
}

// AddShapeAt places a shape of kind centred on the canvas point (x, y).
func (s *Surface) AddShapeAt(kind state.Kind, x, y float64) error {
	if !s.ready {
		return s.notReady()
	}
	return s.add(kind, state.CenteredOrigin(x, y))
}

func (s *Surface) add(kind state.Kind, origin state.Point) error {
	sh, err := state.NewShape(kind, origin, state.PickColor(s.rng, s.cfg.Palette))
	if err != nil {
		return err
	}
	s.scene.Add(sh)
	s.notifier.Success(kind.Title() + " added!")
	return nil
}

func (s *Surface) notReady() error {
	s.notifier.Error("Canvas is not ready")
	return ErrCanvasNotReady
}

// DoubleTapped removes the topmost shape under the pointer.
func (s *Surface) DoubleTapped(ev *fyne.PointEvent) {
	if !s.ready || s.cfg.ReadOnly {
		return
	}
	if _, ok := s.scene.RemoveAt(s.ScenePoint(ev.Position)); ok {
		s.notifier.Success("Shape removed!")
	}
}

// DragOver accepts any drag as a copy.
func (s *Surface) DragOver(dt *DataTransfer) bool {
	dt.DropEffect = DropEffectCopy
	return !s.cfg.ReadOnly
}

// Drop adds the dragged kind where it was released. abs is in window
// coordinates; payloads that do not name a kind are ignored.
func (s *Surface) Drop(dt *DataTransfer, abs fyne.Position) error {
	kind, err := state.ParseKind(dt.GetData(ShapeTypeKey))
	if err != nil {
		slog.Debug("[SURFACE] ignoring drop", "err", err)
		return nil
	}
	local := abs.Subtract(s.AbsolutePosition())
	p := s.ScenePoint(local)
	return s.AddShapeAt(kind, p.X, p.Y)
}

// AbsolutePosition is the surface's top-left corner in window coordinates.
func (s *Surface) AbsolutePosition() fyne.Position {
	app := fyne.CurrentApp()
	if app == nil {
		return fyne.Position{}
	}
	return app.Driver().AbsolutePositionForObject(s)
}

// ContainsAbsolute reports whether a window position falls on the surface.
func (s *Surface) ContainsAbsolute(abs fyne.Position) bool {
	origin := s.AbsolutePosition()
	size := s.Size()
	return abs.X >= origin.X && abs.X <= origin.X+size.Width &&
		abs.Y >= origin.Y && abs.Y <= origin.Y+size.Height
}

// ScenePoint maps a widget-local position to canvas coordinates, undoing
// any stretch of the canvas to the widget's size.
func (s *Surface) ScenePoint(local fyne.Position) state.Point {
	sx, sy := 1.0, 1.0
	if size := s.Size(); size.Width > 0 && size.Height > 0 {
		sx = s.cfg.Width / float64(size.Width)
		sy = s.cfg.Height / float64(size.Height)
	}
	return state.Point{X: float64(local.X) * sx, Y: float64(local.Y) * sy}
}

// LoadScene replaces the whole canvas with d. An invalid d leaves the
// current scene untouched.
func (s *Surface) LoadScene(d state.SceneData) error {
	if !s.ready {
		return s.notReady()
	}
	if err := s.scene.Load(d); err != nil {
		slog.Warn("[SURFACE] load failed", "err", err)
		s.notifier.Error("Could not load painting")
		return err
	}
	s.notifier.Success("Painting loaded successfully!")
	return nil
}

// ConsumePending loads whatever is waiting in p, emptying it.
func (s *Surface) ConsumePending(p *state.PendingImport) error {
	if !s.ready {
		return s.notReady()
	}
	d, ok := p.Take()
	if !ok {
		return nil
	}
	return s.LoadScene(d)
}

// Snapshot serializes the current scene.
func (s *Surface) Snapshot() (state.SceneData, error) {
	if !s.ready {
		return state.SceneData{}, ErrCanvasNotReady
	}
	return s.scene.Encode(), nil
}

func (s *Surface) Tally() state.Tally {
	if !s.ready {
		return state.Tally{}
	}
	return s.scene.Tally()
}

func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	r := &surfaceRenderer{surface: s}
	r.raster = canvas.NewRaster(r.draw)
	return r
}

type surfaceRenderer struct {
	surface *Surface
	raster  *canvas.Raster
}

func (r *surfaceRenderer) draw(w, h int) image.Image {
	d := state.SceneData{Background: r.surface.cfg.Background}
	if r.surface.ready {
		d = r.surface.scene.Encode()
	}
	img, err := render.Image(d, w, h)
	if err != nil {
		slog.Warn("[SURFACE] render failed", "err", err)
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return img
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.surface.cfg.Width), float32(r.surface.cfg.Height))
}

func (r *surfaceRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *surfaceRenderer) Destroy() {}
