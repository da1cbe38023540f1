package state

// Phase is where a painting is in its lifecycle.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhasePopulated
	PhaseExported
	PhaseImported
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhasePopulated:
		return "populated"
	case PhaseExported:
		return "exported"
	case PhaseImported:
		return "imported"
	}
	return "unknown"
}

type Event int

const (
	EventShapeAdded Event = iota
	EventShapeRemoved
	EventExported
	EventImported
)

// Next returns the phase after ev. remaining is the shape count once the
// event has been applied.
func (p Phase) Next(ev Event, remaining int) Phase {
	switch ev {
	case EventShapeAdded:
		return PhasePopulated
	case EventShapeRemoved:
		if remaining == 0 {
			return PhaseEmpty
		}
		return PhasePopulated
	case EventExported:
		return PhaseExported
	case EventImported:
		return PhaseImported
	}
	return p
}
