package judgeline

// NoteType distinguishes the kinds of note.
type NoteType uint8

const (
	NoteClick NoteType = iota // tap on the line
	NoteDrag                  // pass over the line while touching
	NoteFlick                 // swipe on the line
	NoteHold                  // press at the head, keep pressed until EndTime
)

func (t NoteType) String() string {
	switch t {
	case NoteClick:
		return "click"
	case NoteDrag:
		return "drag"
	case NoteFlick:
		return "flick"
	case NoteHold:
		return "hold"
	}
	return "unknown"
}

// NoteKind is the note's kind. EndTime and EndHeight are only meaningful
// for NoteHold: the time the hold releases and the line's floor position at
// that time.
type NoteKind struct {
	Type      NoteType
	EndTime   float64
	EndHeight float64
}

// IsHold reports whether the kind is a hold.
func (k NoteKind) IsHold() bool { return k.Type == NoteHold }

// Hold builds a hold kind.
func Hold(endTime, endHeight float64) NoteKind {
	return NoteKind{Type: NoteHold, EndTime: endTime, EndHeight: endHeight}
}

// JudgeStatus is the judgement state of a note. It only ever moves from
// Pending to Judged.
type JudgeStatus uint8

const (
	JudgePending JudgeStatus = iota // not judged yet
	JudgeJudged                     // judged; irreversible
)

func (s JudgeStatus) String() string {
	if s == JudgeJudged {
		return "judged"
	}
	return "pending"
}

// Note is a single timed event bound to a judge line.
type Note struct {
	Kind NoteKind
	// HitTime is the time in seconds the note reaches the line.
	HitTime float64
	// ScrollSpeed scales the note's distance from the line.
	ScrollSpeed float64
	// FloorPosition is the speed-integrated coordinate along the fall axis.
	FloorPosition float64
	Side          Side
	// Transform is local to the line: X places the note along the line,
	// Y offsets it along the fall axis.
	Transform    Transform
	MultipleHint bool
	// Fake notes are drawn but never judged.
	Fake bool

	judge JudgeStatus
	plain bool
}

// Status returns the note's judge status.
func (n *Note) Status() JudgeStatus {
	return n.judge
}

// Judge marks the note as judged. It is the judgement subsystem's handle;
// the playback core only reads the status.
func (n *Note) Judge() {
	n.judge = JudgeJudged
}

// Judged reports whether the note has been judged.
func (n *Note) Judged() bool {
	return n.judge == JudgeJudged
}

// Plain reports whether the note belongs to the line's always-rendered
// subset rather than a run.
func (n *Note) Plain() bool {
	return n.plain
}

// Live reports whether the note still needs per-frame updates at time t:
// while pending, or while a hold has not yet released.
func (n *Note) Live(t float64) bool {
	if n.judge == JudgePending {
		return true
	}
	return n.Kind.IsHold() && t < n.Kind.EndTime
}

// update advances the note's local transform to t and reports liveness.
func (n *Note) update(t float64) bool {
	n.Transform.SetTime(t)
	return n.Live(t)
}

// offset returns the note's projected distance from the line along the fall
// axis, in the line's local units.
func (n *Note) offset(lineHeight float64) float64 {
	return (n.FloorPosition-lineHeight)*n.ScrollSpeed + n.Transform.Translation.Y.Now()
}

// sortHeight is the floor coordinate used to order notes inside a run.
func (n *Note) sortHeight() float64 {
	return n.FloorPosition + n.Transform.Translation.Y.Now()
}

// PlainFunc decides which notes bypass run grouping and are always
// considered for rendering.
type PlainFunc func(n *Note) bool

// DefaultPlain keeps notes out of runs when their position along the run
// would not grow with floor position or when they must stay visible after
// being judged: holds, fake notes, multiple-hint notes, notes with a
// non-positive scroll speed and notes with any Y offset or animation.
func DefaultPlain(n *Note) bool {
	if n.Kind.IsHold() || n.Fake || n.MultipleHint || n.ScrollSpeed <= 0 {
		return true
	}
	if n.Transform.animated() {
		return true
	}
	y, _ := n.Transform.Translation.Y.NowOpt()
	return y != 0
}
