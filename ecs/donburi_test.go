package ecs

import (
	"testing"

	"github.com/phanxgames/judgeline"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []judgeline.Event
	ScheduleEventType.Subscribe(world, func(w donburi.World, e judgeline.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(judgeline.Event{Type: judgeline.EventNoteRetired, Line: 2, Note: 7})
	sink.EmitEvent(judgeline.Event{Type: judgeline.EventRunExhausted, Line: 2, Note: 9, Side: judgeline.SideBelow})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	ScheduleEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != judgeline.EventNoteRetired || e.Line != 2 || e.Note != 7 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != judgeline.EventRunExhausted || e.Side != judgeline.SideBelow {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_FromChart(t *testing.T) {
	world := donburi.NewWorld()

	line := judgeline.NewJudgeLine()
	line.Notes = []judgeline.Note{{
		Kind:          judgeline.NoteKind{Type: judgeline.NoteClick},
		HitTime:       1,
		FloorPosition: 1,
		ScrollSpeed:   1,
	}}
	chart, err := judgeline.NewChart(0, []judgeline.JudgeLine{line},
		judgeline.WithEventSink(NewDonburiSink(world)))
	if err != nil {
		t.Fatalf("NewChart: %v", err)
	}

	var retired, exhausted int
	ScheduleEventType.Subscribe(world, func(w donburi.World, e judgeline.Event) {
		switch e.Type {
		case judgeline.EventNoteRetired:
			retired++
		case judgeline.EventRunExhausted:
			exhausted++
		}
	})

	chart.Note(0, 0).Judge()
	chart.Update(1)
	ScheduleEventType.ProcessEvents(world)

	if retired != 1 || exhausted != 1 {
		t.Errorf("retired = %d, exhausted = %d, want 1 and 1", retired, exhausted)
	}
}
