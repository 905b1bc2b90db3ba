package pgr

import (
	"fmt"
	"math"

	"github.com/phanxgames/judgeline"
)

// span is the time range shared by both event shapes.
type span struct{ start, end float64 }

// validateSpans checks that an event list is non-empty, has no inverted
// range, is contiguous and reaches far enough into the future.
func validateSpans(spans []span) error {
	if len(spans) == 0 {
		return ErrNoEvents
	}
	for i, s := range spans {
		if s.start > s.end {
			return fmt.Errorf("%w: event %d spans %v..%v", ErrInvertedRange, i, s.start, s.end)
		}
	}
	for i := 0; i+1 < len(spans); i++ {
		if spans[i].end != spans[i+1].start {
			return fmt.Errorf("%w: event %d ends at %v, event %d starts at %v",
				ErrNotContiguous, i, spans[i].end, i+1, spans[i+1].start)
		}
	}
	if last := spans[len(spans)-1].end; last <= minTailTicks {
		return fmt.Errorf("%w: %v", ErrShortTail, last)
	}
	return nil
}

func eventSpans(events []pgrEvent) []span {
	spans := make([]span, len(events))
	for i, e := range events {
		spans[i] = span{e.StartTime, e.EndTime}
	}
	return spans
}

// convertSpeedEvents turns scroll-speed rates into a floor-position
// timeline: a linear keyframe at the start of every event, plus one held
// keyframe at maxTime extrapolating the last rate.
func convertSpeedEvents(r float64, events []pgrSpeedEvent, maxTime float64) (*judgeline.Timeline[float64], error) {
	spans := make([]span, len(events))
	for i, e := range events {
		spans[i] = span{e.StartTime, e.EndTime}
	}
	if err := validateSpans(spans); err != nil {
		return nil, err
	}
	if events[0].StartTime != 0 {
		return nil, fmt.Errorf("%w: first event starts at %v", ErrSpeedStart, events[0].StartTime)
	}

	kfs := make([]judgeline.Keyframe[float64], 0, len(events)+1)
	for _, e := range events {
		kfs = append(kfs, judgeline.NewKeyframe(e.StartTime*r, e.FloorPosition/HeightRatio, judgeline.TweenLinear))
	}
	last := events[len(events)-1]
	lastStart := last.StartTime * r
	end := math.Max(maxTime, lastStart)
	floor := last.FloorPosition + (end-lastStart)*last.Value
	kfs = append(kfs, judgeline.NewKeyframe(end, floor/HeightRatio, judgeline.TweenHold))
	return judgeline.NewFloatTimeline(kfs...), nil
}

// convertFloatEvents turns contiguous value ramps into a timeline. A start
// keyframe is only emitted when its value differs from the previous event's
// end, and the final end keyframe is dropped: the last event never finishes.
func convertFloatEvents(r float64, events []pgrEvent) (*judgeline.Timeline[float64], error) {
	if err := validateSpans(eventSpans(events)); err != nil {
		return nil, err
	}
	return judgeline.NewFloatTimeline(rampKeyframes(r, events, func(e *pgrEvent) (float64, float64) {
		return e.Start, e.End
	})...), nil
}

// convertMoveEvents converts line positions, remapping both axes from
// [0, 1] to [-1, 1]. Each axis is coalesced independently.
func convertMoveEvents(r float64, events []pgrEvent) (judgeline.Vec2Timeline, error) {
	if err := validateSpans(eventSpans(events)); err != nil {
		return judgeline.Vec2Timeline{}, err
	}
	x := rampKeyframes(r, events, func(e *pgrEvent) (float64, float64) {
		return e.Start, e.End
	})
	y := rampKeyframes(r, events, func(e *pgrEvent) (float64, float64) {
		return e.Start2, e.End2
	})
	for _, kfs := range [][]judgeline.Keyframe[float64]{x, y} {
		for i := range kfs {
			kfs[i].Value = -1 + kfs[i].Value*2
		}
	}
	return judgeline.Vec2Timeline{
		X: judgeline.NewFloatTimeline(x...),
		Y: judgeline.NewFloatTimeline(y...),
	}, nil
}

func rampKeyframes(r float64, events []pgrEvent, values func(*pgrEvent) (start, end float64)) []judgeline.Keyframe[float64] {
	kfs := make([]judgeline.Keyframe[float64], 0, len(events)*2)
	for i := range events {
		e := &events[i]
		start, end := values(e)
		if len(kfs) == 0 || kfs[len(kfs)-1].Value != start {
			kfs = append(kfs, judgeline.NewKeyframe(math.Max(e.StartTime*r, 0), start, judgeline.TweenLinear))
		}
		kfs = append(kfs, judgeline.NewKeyframe(e.EndTime*r, end, judgeline.TweenLinear))
	}
	return kfs[:len(kfs)-1]
}
