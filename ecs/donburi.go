package ecs

import (
	"github.com/phanxgames/judgeline"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ScheduleEventType is the Donburi event type for judgeline scheduling events.
var ScheduleEventType = events.NewEventType[judgeline.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on ScheduleEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) judgeline.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event judgeline.Event) {
	ScheduleEventType.Publish(s.world, event)
}
