package judgeline

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default note and skin tint.
var ColorWhite = Color{1, 1, 1, 1}

// lerpColor interpolates each component independently.
func lerpColor(a, b Color, p float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*p,
		G: a.G + (b.G-a.G)*p,
		B: a.B + (b.B-a.B)*p,
		A: a.A + (b.A-a.A)*p,
	}
}

// Vec2 is a 2D vector used for positions, offsets and scales.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Side selects which face of a judge line a note falls towards.
type Side uint8

const (
	SideAbove Side = iota // notes approach from the line's positive Y
	SideBelow             // notes approach from the mirrored side
)

func (s Side) String() string {
	if s == SideBelow {
		return "below"
	}
	return "above"
}

// NoParent marks a top-level judge line.
const NoParent = -1

// EventType identifies a kind of scheduling event.
type EventType uint8

const (
	EventNoteRetired  EventType = iota // a note left the per-frame update set
	EventRunExhausted                  // every note of a run was judged; the run left the cache
)

// Event carries scheduling changes to an EventSink. Note is the note index
// for EventNoteRetired and the run's last cursor position for
// EventRunExhausted.
type Event struct {
	Type EventType
	Line int
	Note int
	Side Side
}

// EventSink is the interface for optional integration with a host's event
// system. When set on a Chart, scheduling changes are forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}
