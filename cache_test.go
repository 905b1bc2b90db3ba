package judgeline

import (
	"reflect"
	"testing"
)

type recordSink struct {
	events []Event
}

func (s *recordSink) EmitEvent(e Event) {
	s.events = append(s.events, e)
}

func click(hit, floor, speed float64, side Side) Note {
	return Note{
		Kind:          NoteKind{Type: NoteClick},
		HitTime:       hit,
		FloorPosition: floor,
		ScrollSpeed:   speed,
		Side:          side,
	}
}

func hold(hit, end, floor, endFloor, speed float64, side Side) Note {
	return Note{
		Kind:          Hold(end, endFloor),
		HitTime:       hit,
		FloorPosition: floor,
		ScrollSpeed:   speed,
		Side:          side,
	}
}

// newRunChart builds a one-line chart whose sorted notes are:
//
//	0     hold (plain)
//	1..3  above, speed 1
//	4..5  above, speed 2
//	6     below, speed 1
func newRunChart(t *testing.T, opts ...ChartOption) *Chart {
	t.Helper()
	line := NewJudgeLine()
	line.Notes = []Note{
		click(3, 3, 1, SideAbove),
		click(6, 6, 1, SideBelow),
		click(2, 2, 2, SideAbove),
		hold(0.5, 1.5, 0.5, 1.5, 1, SideAbove),
		click(1, 1, 1, SideAbove),
		click(1.5, 1.5, 2, SideAbove),
		click(2, 2, 1, SideAbove),
	}
	chart, err := NewChart(0, []JudgeLine{line}, opts...)
	if err != nil {
		t.Fatalf("NewChart: %v", err)
	}
	return chart
}

func TestNoteSortOrder(t *testing.T) {
	chart := newRunChart(t)
	notes := chart.Lines[0].Notes
	want := []struct {
		side  Side
		speed float64
		floor float64
	}{
		{SideAbove, 1, 0.5},
		{SideAbove, 1, 1}, {SideAbove, 1, 2}, {SideAbove, 1, 3},
		{SideAbove, 2, 1.5}, {SideAbove, 2, 2},
		{SideBelow, 1, 6},
	}
	if len(notes) != len(want) {
		t.Fatalf("got %d notes, want %d", len(notes), len(want))
	}
	if !notes[0].Plain() || !notes[0].Kind.IsHold() {
		t.Error("hold should sort first as a plain note")
	}
	for i, w := range want {
		n := notes[i]
		if n.Side != w.side || n.ScrollSpeed != w.speed || n.FloorPosition != w.floor {
			t.Errorf("note %d = (%v, %v, %v), want (%v, %v, %v)",
				i, n.Side, n.ScrollSpeed, n.FloorPosition, w.side, w.speed, w.floor)
		}
	}
}

func TestRunCursorsInitial(t *testing.T) {
	c := newRunChart(t).Lines[0].Cache()
	if got := c.Runs(SideAbove); !reflect.DeepEqual(got, []int{1, 4}) {
		t.Errorf("above runs = %v, want [1 4]", got)
	}
	if got := c.Runs(SideBelow); !reflect.DeepEqual(got, []int{6}) {
		t.Errorf("below runs = %v, want [6]", got)
	}
	if got := len(c.Pending()); got != 7 {
		t.Errorf("pending = %d, want 7", got)
	}
}

// checkRunInvariant verifies every cursor points at an unjudged note and
// every earlier member of its run is judged.
func checkRunInvariant(t *testing.T, l *JudgeLine) {
	t.Helper()
	for _, side := range []Side{SideAbove, SideBelow} {
		for _, cur := range l.Cache().Runs(side) {
			if l.Notes[cur].Judged() {
				t.Errorf("%v cursor %d points at a judged note", side, cur)
			}
			for i := cur - 1; i >= l.plainEnds && sameRun(&l.Notes[i], &l.Notes[cur]); i-- {
				if !l.Notes[i].Judged() {
					t.Errorf("%v cursor %d skips unjudged note %d", side, cur, i)
				}
			}
		}
	}
}

func TestRunCursorAdvancesPastJudged(t *testing.T) {
	chart := newRunChart(t)
	chart.Note(0, 1).Judge()
	chart.Note(0, 2).Judge()
	chart.Update(0)
	l := &chart.Lines[0]
	if got := l.Cache().Runs(SideAbove); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("above runs = %v, want [3 4]", got)
	}
	checkRunInvariant(t, l)
}

func TestRunDroppedWhenFullyJudged(t *testing.T) {
	sink := &recordSink{}
	chart := newRunChart(t, WithEventSink(sink))
	chart.Note(0, 4).Judge()
	chart.Note(0, 5).Judge()
	chart.Update(0)
	l := &chart.Lines[0]
	if got := l.Cache().Runs(SideAbove); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("above runs = %v, want [1]", got)
	}
	checkRunInvariant(t, l)

	var exhausted []Event
	for _, e := range sink.events {
		if e.Type == EventRunExhausted {
			exhausted = append(exhausted, e)
		}
	}
	want := []Event{{Type: EventRunExhausted, Line: 0, Note: 5, Side: SideAbove}}
	if !reflect.DeepEqual(exhausted, want) {
		t.Errorf("exhausted events = %+v, want %+v", exhausted, want)
	}
}

func TestRunCursorSkipsOutOfOrderJudgement(t *testing.T) {
	chart := newRunChart(t)
	// Judging a later member first leaves the cursor on the earlier one.
	chart.Note(0, 2).Judge()
	chart.Update(0)
	l := &chart.Lines[0]
	if got := l.Cache().Runs(SideAbove)[0]; got != 1 {
		t.Fatalf("cursor = %d, want 1", got)
	}
	chart.Note(0, 1).Judge()
	chart.Update(0.1)
	if got := l.Cache().Runs(SideAbove)[0]; got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}
	checkRunInvariant(t, l)
}

func TestPendingPruning(t *testing.T) {
	sink := &recordSink{}
	chart := newRunChart(t, WithEventSink(sink))
	chart.Note(0, 6).Judge()
	chart.Update(0)
	l := &chart.Lines[0]
	if got := l.Cache().Pending(); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("pending = %v, want [0 1 2 3 4 5]", got)
	}
	if len(l.Cache().Runs(SideBelow)) != 0 {
		t.Error("below run should be dropped")
	}
	retired := sink.events[0]
	if retired.Type != EventNoteRetired || retired.Note != 6 || retired.Side != SideBelow {
		t.Errorf("first event = %+v, want note 6 retired", retired)
	}
}

func TestHoldStaysLiveUntilRelease(t *testing.T) {
	chart := newRunChart(t)
	chart.Note(0, 0).Judge()

	chart.Update(1)
	if got := chart.Lines[0].Cache().Pending()[0]; got != 0 {
		t.Fatalf("judged hold left pending before release")
	}
	chart.Update(1.5)
	if got := chart.Lines[0].Cache().Pending()[0]; got == 0 {
		t.Error("hold should retire at its end time")
	}
}

func TestNoteLive(t *testing.T) {
	n := hold(1, 2, 1, 2, 1, SideAbove)
	if !n.Live(5) {
		t.Error("pending note should be live")
	}
	n.Judge()
	if !n.Live(1.9) {
		t.Error("judged hold should be live before its end")
	}
	if n.Live(2) {
		t.Error("judged hold should not be live at its end")
	}
	c := click(1, 1, 1, SideAbove)
	c.Judge()
	if c.Live(0) {
		t.Error("judged click should not be live")
	}
}

func TestDefaultPlain(t *testing.T) {
	tests := []struct {
		name string
		note Note
		want bool
	}{
		{"click", click(1, 1, 1, SideAbove), false},
		{"hold", hold(1, 2, 1, 2, 1, SideAbove), true},
		{"fake", Note{Fake: true, ScrollSpeed: 1}, true},
		{"multiple hint", Note{MultipleHint: true, ScrollSpeed: 1}, true},
		{"zero speed", Note{}, true},
		{"negative speed", Note{ScrollSpeed: -1}, true},
		{"y offset", Note{ScrollSpeed: 1, Transform: Transform{Translation: FixedVec2(0, 0.2)}}, true},
		{"x only", Note{ScrollSpeed: 1, Transform: Transform{Translation: FixedVec2(0.3, 0)}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultPlain(&tt.note); got != tt.want {
				t.Errorf("DefaultPlain = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetainKeepsOrder(t *testing.T) {
	s := []int{1, 2, 3, 4, 5, 6}
	got := retain(s, func(v *int) bool { return *v%2 == 0 })
	if !reflect.DeepEqual(got, []int{2, 4, 6}) {
		t.Errorf("retain = %v, want [2 4 6]", got)
	}
}
