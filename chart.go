package judgeline

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// Errors returned by NewChart.
var (
	ErrParentMissing = errors.New("parent line does not exist")
	ErrParentSelf    = errors.New("line is its own parent")
	ErrParentNested  = errors.New("parent line has a parent of its own")
)

// Chart owns the judge lines and drives the per-frame update and render
// passes. It is single-threaded: call Update then Render once per frame.
type Chart struct {
	// Offset is subtracted from the time passed to Update.
	Offset float64
	// Lines must not be added or removed after NewChart.
	Lines []JudgeLine

	cfg   Config
	sink  EventSink
	plain PlainFunc

	time    float64
	started bool

	order       []int
	orderSorted bool
	lr          lineRenderer

	debug bool
	stats FrameStats
}

// ChartOption configures NewChart.
type ChartOption func(*Chart)

// WithConfig sets the render settings.
func WithConfig(cfg Config) ChartOption {
	return func(c *Chart) { c.cfg = cfg }
}

// WithPlainFunc replaces DefaultPlain as the predicate selecting the notes
// that bypass run grouping.
func WithPlainFunc(fn PlainFunc) ChartOption {
	return func(c *Chart) { c.plain = fn }
}

// WithEventSink forwards scheduling events to sink.
func WithEventSink(sink EventSink) ChartOption {
	return func(c *Chart) { c.sink = sink }
}

// NewChart validates parent references, sorts every line's notes and builds
// the scheduling caches. On error no chart is returned.
func NewChart(offset float64, lines []JudgeLine, opts ...ChartOption) (*Chart, error) {
	c := &Chart{
		Offset: offset,
		Lines:  lines,
		cfg:    DefaultConfig(),
		plain:  DefaultPlain,
	}
	for _, opt := range opts {
		opt(c)
	}

	for i := range lines {
		if err := validateParent(lines, i); err != nil {
			return nil, fmt.Errorf("judgeline: judge line #%d: %w", i, err)
		}
	}
	for i := range lines {
		l := &lines[i]
		if l.Skin == nil {
			l.Skin = NormalSkin{}
		}
		l.prepare(c.plain)
		if c.cfg.Aggressive && !l.cullSafe {
			log.Printf("judgeline: judge line #%d: runs are not monotonic, aggressive culling disabled", i)
		}
	}

	c.order = make([]int, len(lines))
	for i := range c.order {
		c.order[i] = i
	}
	return c, nil
}

func validateParent(lines []JudgeLine, i int) error {
	p := lines[i].Parent
	switch {
	case p == NoParent:
		return nil
	case p < 0 || p >= len(lines):
		return fmt.Errorf("%w: #%d", ErrParentMissing, p)
	case p == i:
		return ErrParentSelf
	case lines[p].Parent != NoParent:
		return fmt.Errorf("%w: #%d", ErrParentNested, p)
	}
	return nil
}

// Config returns the chart's render settings.
func (c *Chart) Config() Config {
	return c.cfg
}

// SetConfig replaces the render settings.
func (c *Chart) SetConfig(cfg Config) {
	c.cfg = cfg
}

// SetEventSink sets or clears the event sink.
func (c *Chart) SetEventSink(sink EventSink) {
	c.sink = sink
}

// Time returns the chart time of the last Update.
func (c *Chart) Time() float64 {
	return c.time
}

// Note returns a handle to a note for the judgement subsystem.
func (c *Chart) Note(line, index int) *Note {
	return &c.Lines[line].Notes[index]
}

// NoteCount returns the number of notes that can be judged.
func (c *Chart) NoteCount() int {
	count := 0
	for i := range c.Lines {
		for j := range c.Lines[i].Notes {
			if !c.Lines[i].Notes[j].Fake {
				count++
			}
		}
	}
	return count
}

// Update advances the chart to time t (music time; Offset is subtracted).
// A time earlier than the previous update rebuilds every scheduling cache.
func (c *Chart) Update(t float64) {
	var start time.Time
	if c.debug {
		start = time.Now()
	}
	t -= c.Offset
	if c.started && t < c.time {
		c.reset()
	}
	c.started = true
	c.time = t

	// Every line's transform must be current before any child resolves
	// its parent.
	for i := range c.Lines {
		c.Lines[i].setTime(t)
	}
	for i := range c.Lines {
		c.Lines[i].update(t, i, c.sink)
	}
	if c.debug {
		c.stats.UpdateTime = time.Since(start)
	}
}

// Seek rewinds or fast-forwards to music time t, rebuilding the scheduling
// caches from the fixed note order. Notes judged so far stay judged.
func (c *Chart) Seek(t float64) {
	c.reset()
	c.started = false
	c.Update(t)
}

func (c *Chart) reset() {
	for i := range c.Lines {
		l := &c.Lines[i]
		l.cache.reset(l.Notes)
	}
}

// Render emits one LineCommand per drawn line, in ZIndex order (ties keep
// chart order). cam supplies the viewport for culling; a nil camera
// disables culling.
func (c *Chart) Render(r Renderer, cam *Camera) {
	var start time.Time
	if c.debug {
		start = time.Now()
	}
	if !c.orderSorted {
		c.sortOrder()
	}
	lr := &c.lr
	lr.cfg = &c.cfg
	lr.cam = cam
	lr.time = c.time
	lr.lines = c.Lines
	lr.scanned = 0
	lines, drawn := 0, 0
	for _, i := range c.order {
		if c.Lines[i].render(lr, i) {
			lines++
			drawn += len(lr.cmd.Notes)
			r.DrawLine(&lr.cmd)
		}
	}
	c.stats.Lines = lines
	c.stats.NotesScanned = lr.scanned
	c.stats.NotesDrawn = drawn
	if c.debug {
		c.stats.RenderTime = time.Since(start)
		c.debugLog()
	}
}

// MarkOrderDirty re-sorts the draw order on the next Render. Call it after
// changing a line's ZIndex.
func (c *Chart) MarkOrderDirty() {
	c.orderSorted = false
}

// sortOrder rebuilds the ZIndex draw order with a stable insertion sort;
// charts are usually already in order.
func (c *Chart) sortOrder() {
	for i := range c.order {
		c.order[i] = i
	}
	for i := 1; i < len(c.order); i++ {
		key := c.order[i]
		j := i - 1
		for j >= 0 && c.Lines[c.order[j]].ZIndex > c.Lines[key].ZIndex {
			c.order[j+1] = c.order[j]
			j--
		}
		c.order[j+1] = key
	}
	c.orderSorted = true
}
