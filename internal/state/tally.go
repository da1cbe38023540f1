package state

// Tally is the per-kind shape count. It is always derived from the scene.
type Tally struct {
	Circle    int `json:"circle"`
	Rectangle int `json:"rectangle"`
	Triangle  int `json:"triangle"`
}

// Count classifies every shape by its Kind tag. Records with a kind it does
// not recognise are skipped.
func Count(shapes []Shape) Tally {
	var t Tally
	for _, s := range shapes {
		switch s.Kind {
		case KindCircle:
			t.Circle++
		case KindRectangle:
			t.Rectangle++
		case KindTriangle:
			t.Triangle++
		}
	}
	return t
}

func (t Tally) Get(k Kind) int {
	switch k {
	case KindCircle:
		return t.Circle
	case KindRectangle:
		return t.Rectangle
	case KindTriangle:
		return t.Triangle
	}
	return 0
}

func (t Tally) Total() int {
	return t.Circle + t.Rectangle + t.Triangle
}
