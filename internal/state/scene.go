package state

import (
	"log/slog"
	"sync"
)

// Scene is the ordered set of shapes on one canvas. Later shapes are drawn on
// top of earlier ones. Listeners run after every committed change, outside the lock.
type Scene struct {
	mu         sync.RWMutex
	width      float64
	height     float64
	background string
	shapes     []Shape
	clock      revisionClock

	listeners    map[int]func(Change)
	nextListener int
}

func NewScene(width, height float64, background string) *Scene {
	return &Scene{
		width:      width,
		height:     height,
		background: background,
		shapes:     make([]Shape, 0),
		listeners:  make(map[int]func(Change)),
	}
}

func (s *Scene) Size() (width, height float64) {
	return s.width, s.height
}

func (s *Scene) Background() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

// Shapes returns a copy of the current shapes in z-order.
func (s *Scene) Shapes() []Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Shape, len(s.shapes))
	for i, sh := range s.shapes {
		out[i] = sh.clone()
	}
	return out
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shapes)
}

func (s *Scene) Tally() Tally {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Count(s.shapes)
}

func (s *Scene) Revision() uint64 {
	return s.clock.current()
}

// Add appends a shape on top of the scene.
func (s *Scene) Add(sh Shape) {
	s.mu.Lock()
	sh = sh.clone()
	s.shapes = append(s.shapes, sh)
	ch := s.commitLocked(OpInsertShape, sh)
	s.mu.Unlock()

	slog.Debug("[SCENE] shape added", "id", sh.ID, "kind", sh.Kind, "revision", ch.Revision)
	s.emit(ch)
}

// ShapeAt returns the topmost shape containing p.
func (s *Scene) ShapeAt(p Point) (Shape, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexAtLocked(p); i >= 0 {
		return s.shapes[i].clone(), true
	}
	return Shape{}, false
}

// RemoveAt removes the topmost shape containing p, if any.
func (s *Scene) RemoveAt(p Point) (Shape, bool) {
	s.mu.Lock()
	i := s.indexAtLocked(p)
	if i < 0 {
		s.mu.Unlock()
		return Shape{}, false
	}
	removed := s.removeLocked(i)
	ch := s.commitLocked(OpDeleteShape, removed)
	s.mu.Unlock()

	slog.Debug("[SCENE] shape removed", "id", removed.ID, "kind", removed.Kind, "revision", ch.Revision)
	s.emit(ch)
	return removed, true
}

// Remove deletes the shape with the given ID.
func (s *Scene) Remove(id string) bool {
	s.mu.Lock()
	i := -1
	for j, sh := range s.shapes {
		if sh.ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.removeLocked(i)
	ch := s.commitLocked(OpDeleteShape, removed)
	s.mu.Unlock()

	slog.Debug("[SCENE] shape removed", "id", id, "revision", ch.Revision)
	s.emit(ch)
	return true
}

// Replace swaps the whole scene for shapes. An empty background keeps the
// current one.
func (s *Scene) Replace(shapes []Shape, background string) {
	s.mu.Lock()
	s.shapes = make([]Shape, 0, len(shapes))
	for _, sh := range shapes {
		s.shapes = append(s.shapes, sh.clone())
	}
	if background != "" {
		s.background = background
	}
	ch := s.commitLocked(OpReplace, Shape{})
	s.mu.Unlock()

	slog.Debug("[SCENE] scene replaced", "shapes", len(shapes), "revision", ch.Revision)
	s.emit(ch)
}

// Subscribe registers fn for every future change and returns the function
// that removes it again.
func (s *Scene) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Scene) ListenerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}

func (s *Scene) indexAtLocked(p Point) int {
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].Contains(p) {
			return i
		}
	}
	return -1
}

func (s *Scene) removeLocked(i int) Shape {
	removed := s.shapes[i]
	s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
	return removed
}

func (s *Scene) commitLocked(op OpType, sh Shape) Change {
	return Change{
		Op:       op,
		Shape:    sh,
		Revision: s.clock.next(),
		Tally:    Count(s.shapes),
	}
}

func (s *Scene) emit(ch Change) {
	s.mu.RLock()
	fns := make([]func(Change), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(ch)
	}
}
