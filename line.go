package judgeline

import (
	"math"
	"sort"
)

// Skin selects how a judge line itself is drawn. The set of skins is closed:
// NormalSkin, TextureSkin and TextSkin.
type Skin interface {
	isSkin()
}

// NormalSkin draws the line as a plain segment.
type NormalSkin struct{}

// TextureSkin draws a named texture centered on the line.
type TextureSkin struct {
	Name          string
	Width, Height float64
}

// TextSkin draws an animated string centered on the line. The string holds
// each keyframe's value until the next one.
type TextSkin struct {
	Text *Timeline[string]
}

func (NormalSkin) isSkin()  {}
func (TextureSkin) isSkin() {}
func (TextSkin) isSkin()    {}

// JudgeLine is a moving reference line owning its notes.
type JudgeLine struct {
	Transform Transform
	Skin      Skin
	// Height is the line's current floor position.
	Height *Timeline[float64]
	// Incline tilts the fall plane, in degrees.
	Incline *Timeline[float64]
	// Color overrides the configured line color when set.
	Color *Timeline[Color]
	// Notes are sorted once when the chart is built and never re-sorted.
	Notes []Note
	// Parent is the index of the parent line in Chart.Lines, or NoParent.
	Parent    int
	ZIndex    int
	ShowBelow bool

	cache     NoteSchedulingCache
	cullSafe  bool
	plainEnds int
}

// NewJudgeLine creates a top-level line with a normal skin that shows notes
// below it.
func NewJudgeLine() JudgeLine {
	return JudgeLine{
		Skin:      NormalSkin{},
		Height:    FixedFloat(0),
		Parent:    NoParent,
		ShowBelow: true,
	}
}

// Cache returns the line's scheduling cache.
func (l *JudgeLine) Cache() *NoteSchedulingCache {
	return &l.cache
}

// prepare classifies and sorts the notes and builds the scheduling cache.
// Only called once, while the chart is built.
func (l *JudgeLine) prepare(plain PlainFunc) {
	for i := range l.Notes {
		l.Notes[i].Transform.SetTime(0)
		l.Notes[i].plain = plain(&l.Notes[i])
	}
	sort.SliceStable(l.Notes, func(i, j int) bool {
		a, b := &l.Notes[i], &l.Notes[j]
		if a.plain != b.plain {
			return a.plain
		}
		if a.Side != b.Side {
			return a.Side < b.Side
		}
		if a.ScrollSpeed != b.ScrollSpeed {
			return a.ScrollSpeed < b.ScrollSpeed
		}
		return a.sortHeight() < b.sortHeight()
	})
	l.plainEnds = firstRunIndex(l.Notes)
	l.cache = newNoteCache(l.Notes)
	l.cullSafe = runsMonotonic(l.Notes[l.plainEnds:])
}

// runsMonotonic reports whether projected offsets grow along every run, the
// precondition for stopping a run scan at the first off-screen note.
func runsMonotonic(notes []Note) bool {
	for i := range notes {
		n := &notes[i]
		if n.ScrollSpeed <= 0 || n.Transform.Translation.Y.Len() > 1 {
			return false
		}
		if y, _ := n.Transform.Translation.Y.NowOpt(); y != 0 {
			return false
		}
	}
	return true
}

// setTime advances the line's own transform.
func (l *JudgeLine) setTime(t float64) {
	l.Transform.SetTime(t)
}

// update re-evaluates the line's timelines, advances pending notes and moves
// run cursors past judged notes.
func (l *JudgeLine) update(t float64, index int, sink EventSink) {
	l.Height.SetTime(t)
	l.Incline.SetTime(t)
	l.Color.SetTime(t)
	if text, ok := l.Skin.(TextSkin); ok {
		text.Text.SetTime(t)
	}

	var retired func(int)
	var exhausted func(Side, int)
	if sink != nil {
		retired = func(note int) {
			sink.EmitEvent(Event{Type: EventNoteRetired, Line: index, Note: note, Side: l.Notes[note].Side})
		}
		exhausted = func(side Side, note int) {
			sink.EmitEvent(Event{Type: EventRunExhausted, Line: index, Note: note, Side: side})
		}
	}
	l.cache.updatePending(l.Notes, t, retired)
	l.cache.advanceRuns(l.Notes, exhausted)
}

// rigidTransform returns the line's world transform without its scale. A
// child's translation is rotated by the parent's rotation and offset by the
// parent's translation; the child keeps its own rotation.
func (l *JudgeLine) rigidTransform(lines []JudgeLine) Affine {
	if l.Parent == NoParent {
		return l.Transform.nowRigid()
	}
	parent := &lines[l.Parent].Transform
	t := rotateVec(parent.NowRotation(), l.Transform.NowTranslation())
	pt := parent.NowTranslation()
	t.X += pt.X
	t.Y += pt.Y
	return composeRigid(t, l.Transform.NowRotation())
}

// WorldTransform returns the line's full world transform, scale included.
func (l *JudgeLine) WorldTransform(lines []JudgeLine) Affine {
	return multiplyAffine(l.rigidTransform(lines), l.Transform.nowScaleAffine())
}

// lineRenderer carries the chart-wide values a line render needs.
type lineRenderer struct {
	cfg   *Config
	cam   *Camera
	time  float64
	cmd   LineCommand
	lines []JudgeLine
	// scanned counts notes tested for visibility this frame.
	scanned int
}

// render fills lr.cmd for the line. It returns false when the line is
// hidden by an alpha control code.
func (l *JudgeLine) render(lr *lineRenderer, index int) bool {
	cfg := lr.cfg
	la := DecodeLineAlpha(l.Transform.NowAlpha(), cfg.AlphaExtension)
	if la.Mode == AlphaHidden {
		return false
	}

	rigid := l.rigidTransform(lr.lines)
	cmd := &lr.cmd
	notes := cmd.Notes[:0]
	*cmd = LineCommand{
		Index:     index,
		Transform: multiplyAffine(rigid, l.Transform.nowScaleAffine()),
		Skin:      l.Skin,
		Length:    cfg.LineLength,
	}
	if inc, ok := l.Incline.NowOpt(); ok {
		cmd.InclineSin = math.Sin(inc * math.Pi / 180)
	}
	color, ok := l.Color.NowOpt()
	switch {
	case ok:
	case isNormalSkin(l.Skin):
		color = cfg.LineColor
	default:
		color = ColorWhite
	}
	color.A = la.Alpha * cfg.ChartAlpha
	cmd.Color = color
	if text, ok := l.Skin.(TextSkin); ok {
		cmd.Text = text.Text.Now()
	}

	st := noteRenderState{
		time:         lr.time,
		lineHeight:   l.Height.Now(),
		appearBefore: math.Inf(1),
		drawBelow:    l.ShowBelow,
		margin:       cfg.NoteMargin,
		alpha:        cfg.ChartAlpha,
	}
	switch la.Mode {
	case AlphaSuppressBelow:
		st.drawBelow = false
	case AlphaAppearBefore:
		st.appearBefore = la.AppearBefore
	}

	above, below := math.Inf(1), math.Inf(1)
	if lr.cam != nil {
		above, below = lr.cam.lineExtents(rigid)
	}
	aggressive := cfg.Aggressive && l.cullSafe && lr.cam != nil

	st.extent = above
	notes = l.appendSide(notes, SideAbove, rigid, &st, aggressive)
	st.extent = below
	notes = l.appendSide(notes, SideBelow, multiplyAffine(rigid, flipY), &st, aggressive)
	cmd.Notes = notes
	lr.scanned += st.scanned
	return true
}

// appendSide emits one side's visible notes: the plain subset first, then
// every surviving run from its cursor.
func (l *JudgeLine) appendSide(dst []NoteCommand, side Side, frame Affine, st *noteRenderState, aggressive bool) []NoteCommand {
	var nc NoteCommand
	emit := func(i int) {
		st.scanned++
		n := &l.Notes[i]
		if !visibleNote(n, st, &nc) {
			return
		}
		nc.Index = i
		nc.Transform = multiplyAffine(frame, noteLocal(n, nc.HeadOffset))
		dst = append(dst, nc)
	}

	for i := 0; i < l.plainEnds; i++ {
		if l.Notes[i].Side == side {
			emit(i)
		}
	}
	for _, start := range l.cache.Runs(side) {
		first := &l.Notes[start]
		for i := start; i < len(l.Notes) && sameRun(first, &l.Notes[i]); i++ {
			if aggressive && l.Notes[i].offset(st.lineHeight)-st.margin > st.extent {
				break
			}
			emit(i)
		}
	}
	return dst
}

// noteLocal places a note in its line's frame at the given offset, applying
// the note's own rotation and scale.
func noteLocal(n *Note, offset float64) Affine {
	x := n.Transform.Translation.X.Now()
	m := composeRigid(Vec2{X: x, Y: offset}, n.Transform.NowRotation())
	return multiplyAffine(m, n.Transform.nowScaleAffine())
}

func isNormalSkin(s Skin) bool {
	switch s.(type) {
	case nil, NormalSkin:
		return true
	}
	return false
}
