package judgeline

import (
	"github.com/tanema/gween/ease"
)

// TweenKind selects how a keyframe interpolates towards the next one.
type TweenKind uint8

const (
	TweenHold   TweenKind = iota // keep this keyframe's value until the next one
	TweenLinear                  // straight interpolation to the next keyframe
	TweenInSine
	TweenOutSine
	TweenInOutSine
	TweenInQuad
	TweenOutQuad
	TweenInOutQuad
	TweenInCubic
	TweenOutCubic
	TweenInOutCubic
	TweenInQuart
	TweenOutQuart
	TweenInOutQuart
	TweenInExpo
	TweenOutExpo
	TweenInCirc
	TweenOutCirc
	TweenOutBack
	TweenOutElastic
	TweenOutBounce
)

// easings maps the eased kinds onto gween's easing curves. Hold and Linear
// are evaluated directly in float64.
var easings = map[TweenKind]ease.TweenFunc{
	TweenInSine:     ease.InSine,
	TweenOutSine:    ease.OutSine,
	TweenInOutSine:  ease.InOutSine,
	TweenInQuad:     ease.InQuad,
	TweenOutQuad:    ease.OutQuad,
	TweenInOutQuad:  ease.InOutQuad,
	TweenInCubic:    ease.InCubic,
	TweenOutCubic:   ease.OutCubic,
	TweenInOutCubic: ease.InOutCubic,
	TweenInQuart:    ease.InQuart,
	TweenOutQuart:   ease.OutQuart,
	TweenInOutQuart: ease.InOutQuart,
	TweenInExpo:     ease.InExpo,
	TweenOutExpo:    ease.OutExpo,
	TweenInCirc:     ease.InCirc,
	TweenOutCirc:    ease.OutCirc,
	TweenOutBack:    ease.OutBack,
	TweenOutElastic: ease.OutElastic,
	TweenOutBounce:  ease.OutBounce,
}

// progress remaps a linear progress p in [0, 1] through the kind's curve.
func (k TweenKind) progress(p float64) float64 {
	switch k {
	case TweenHold:
		return 0
	case TweenLinear:
		return p
	}
	fn, ok := easings[k]
	if !ok {
		return p
	}
	return float64(fn(float32(p), 0, 1, 1))
}

// Keyframe is a single (time, value, tween) breakpoint of a Timeline.
type Keyframe[T any] struct {
	Time  float64
	Value T
	Tween TweenKind
}

// NewKeyframe is a convenience constructor for Keyframe.
func NewKeyframe[T any](time float64, value T, tween TweenKind) Keyframe[T] {
	return Keyframe[T]{Time: time, Value: value, Tween: tween}
}

// LerpFunc interpolates between a and b at progress p in [0, 1].
type LerpFunc[T any] func(a, b T, p float64) T

// Timeline evaluates a piecewise keyframe-defined value at a query time.
//
// Lookups reuse the segment found by the previous query, so sequences of
// non-decreasing query times cost amortized O(1). A query earlier than the
// previous one rescans from the first keyframe.
type Timeline[T any] struct {
	keyframes []Keyframe[T]
	lerp      LerpFunc[T]
	cursor    int
	time      float64
}

// NewTimeline creates a timeline over keyframes sorted by non-decreasing
// time. A nil lerp makes every segment behave as Hold.
func NewTimeline[T any](lerp LerpFunc[T], keyframes ...Keyframe[T]) *Timeline[T] {
	return &Timeline[T]{keyframes: keyframes, lerp: lerp}
}

func lerpFloat(a, b, p float64) float64 { return a + (b-a)*p }

// NewFloatTimeline creates a scalar timeline.
func NewFloatTimeline(keyframes ...Keyframe[float64]) *Timeline[float64] {
	return NewTimeline(lerpFloat, keyframes...)
}

// NewColorTimeline creates a componentwise color timeline.
func NewColorTimeline(keyframes ...Keyframe[Color]) *Timeline[Color] {
	return NewTimeline(lerpColor, keyframes...)
}

// NewStringTimeline creates a discrete timeline. Strings never interpolate,
// so every segment holds its value regardless of the keyframe's tween.
func NewStringTimeline(keyframes ...Keyframe[string]) *Timeline[string] {
	return NewTimeline[string](nil, keyframes...)
}

// FixedFloat creates a timeline with one keyframe that always yields v.
func FixedFloat(v float64) *Timeline[float64] {
	return NewFloatTimeline(Keyframe[float64]{Value: v})
}

// Len returns the number of keyframes.
func (tl *Timeline[T]) Len() int {
	if tl == nil {
		return 0
	}
	return len(tl.keyframes)
}

// Keyframes returns the timeline's keyframes. The slice must not be modified.
func (tl *Timeline[T]) Keyframes() []Keyframe[T] {
	if tl == nil {
		return nil
	}
	return tl.keyframes
}

// Time returns the last time passed to SetTime.
func (tl *Timeline[T]) Time() float64 {
	if tl == nil {
		return 0
	}
	return tl.time
}

// SetTime moves the query time and advances the cursor to the segment
// containing t.
func (tl *Timeline[T]) SetTime(t float64) {
	if tl == nil {
		return
	}
	if t < tl.time {
		tl.cursor = 0
	}
	tl.time = t
	kfs := tl.keyframes
	for tl.cursor+1 < len(kfs) && kfs[tl.cursor+1].Time <= t {
		tl.cursor++
	}
}

// Now evaluates the timeline at the current time. An empty timeline yields
// the zero value of T.
func (tl *Timeline[T]) Now() T {
	v, _ := tl.NowOpt()
	return v
}

// NowOpt evaluates the timeline at the current time, reporting false for an
// empty timeline so callers can fall back to their own default.
func (tl *Timeline[T]) NowOpt() (T, bool) {
	var zero T
	if tl == nil || len(tl.keyframes) == 0 {
		return zero, false
	}
	kfs := tl.keyframes
	cur := kfs[tl.cursor]
	if tl.cursor == len(kfs)-1 || tl.time < cur.Time {
		// Past the last keyframe, or before the first one.
		return cur.Value, true
	}
	if cur.Tween == TweenHold || tl.lerp == nil {
		return cur.Value, true
	}
	next := kfs[tl.cursor+1]
	span := next.Time - cur.Time
	if span <= 0 {
		return next.Value, true
	}
	p := (tl.time - cur.Time) / span
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return tl.lerp(cur.Value, next.Value, cur.Tween.progress(p)), true
}

// Vec2Timeline evaluates a 2D vector as two independent scalar timelines,
// interpolated componentwise.
type Vec2Timeline struct {
	X, Y *Timeline[float64]
}

// FixedVec2 creates a vector timeline that always yields (x, y).
func FixedVec2(x, y float64) Vec2Timeline {
	return Vec2Timeline{X: FixedFloat(x), Y: FixedFloat(y)}
}

// SetTime sets the query time of both components.
func (v *Vec2Timeline) SetTime(t float64) {
	v.X.SetTime(t)
	v.Y.SetTime(t)
}

// NowOr evaluates both components, substituting def's component for an
// empty axis.
func (v *Vec2Timeline) NowOr(def Vec2) Vec2 {
	x, ok := v.X.NowOpt()
	if !ok {
		x = def.X
	}
	y, ok := v.Y.NowOpt()
	if !ok {
		y = def.Y
	}
	return Vec2{X: x, Y: y}
}

// Now evaluates both components, using 0 for an empty axis.
func (v *Vec2Timeline) Now() Vec2 {
	return v.NowOr(Vec2{})
}

// static reports whether the timeline holds at most one keyframe per axis.
func (v *Vec2Timeline) static() bool {
	return v.X.Len() <= 1 && v.Y.Len() <= 1
}
