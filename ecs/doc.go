// Package ecs provides ECS adapters for judgeline's scheduling events.
//
// The primary adapter is [NewDonburiSink], which forwards judgeline events
// (note retirements, exhausted runs) into a [Donburi] world as typed events.
// Subscribe to [ScheduleEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	chart.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
