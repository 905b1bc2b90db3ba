package judgeline

// Renderer receives the per-frame draw directives. DrawLine is called once
// per drawn line in ZIndex order; the command and its Notes slice are reused
// by the next call and must not be retained.
type Renderer interface {
	DrawLine(cmd *LineCommand)
}

// LineCommand is the draw directive for one judge line.
type LineCommand struct {
	// Index is the line's position in Chart.Lines.
	Index int
	// Transform places the line itself, scale included.
	Transform Affine
	Color     Color
	Skin      Skin
	// Text is the current string of a TextSkin.
	Text string
	// Length is the half length of a NormalSkin line.
	Length float64
	// InclineSin is the sine of the line's current incline.
	InclineSin float64
	Notes      []NoteCommand
}

// NoteCommand is the draw directive for one visible note, in draw order.
type NoteCommand struct {
	// Index is the note's position in the line's sorted Notes.
	Index int
	Kind  NoteKind
	Side  Side
	// Transform places the note head in world space. It includes the
	// line's rotation and translation but not the line's scale; below-side
	// notes are mirrored.
	Transform Affine
	Color     Color
	// HeadOffset and TailOffset are distances from the line along the fall
	// axis. TailOffset differs from HeadOffset only for holds.
	HeadOffset   float64
	TailOffset   float64
	Judged       bool
	MultipleHint bool
}

// noteRenderState carries the per-line values the visibility predicate needs.
type noteRenderState struct {
	time         float64
	lineHeight   float64
	appearBefore float64
	drawBelow    bool
	extent       float64
	margin       float64
	alpha        float64
	scanned      int
}

// visibleNote decides whether a note is drawn and, if so, fills cmd. The
// same predicate runs in both culling modes.
func visibleNote(n *Note, st *noteRenderState, cmd *NoteCommand) bool {
	hold := n.Kind.IsHold()
	if n.Judged() && !hold {
		return false
	}
	if hold && st.time >= n.Kind.EndTime {
		return false
	}
	if n.Fake && !hold && st.time >= n.HitTime {
		return false
	}
	if st.time < n.HitTime-st.appearBefore {
		return false
	}
	head := n.offset(st.lineHeight)
	holding := hold && st.time >= n.HitTime
	if !st.drawBelow && head < -1e-5 && !holding {
		return false
	}
	if head-st.margin > st.extent {
		return false
	}

	tail := head
	if hold {
		tail = (n.Kind.EndHeight-st.lineHeight)*n.ScrollSpeed + n.Transform.Translation.Y.Now()
		if holding && head < 0 {
			head = 0
		}
	}

	color := ColorWhite
	color.A = n.Transform.NowAlpha() * st.alpha
	*cmd = NoteCommand{
		Kind:         n.Kind,
		Side:         n.Side,
		Color:        color,
		HeadOffset:   head,
		TailOffset:   tail,
		Judged:       n.Judged(),
		MultipleHint: n.MultipleHint,
	}
	return true
}
