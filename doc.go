// Package judgeline is the playback core of a rhythm-game chart engine.
//
// A [Chart] owns judge lines. Each [JudgeLine] carries animated parameters
// ([Timeline] values for translation, rotation, scale, alpha, floor height,
// incline and color) and an ordered set of [Note] values. Every frame the
// host calls [Chart.Update] with the current music time and then
// [Chart.Render] with a [Renderer]; the core resolves transforms, prunes
// judged notes and hands over what to draw, in order.
//
//	chart, err := pgr.ParseFile("chart.json")
//	// ...
//	func (g *Game) Update() error {
//		g.chart.Update(g.musicTime())
//		return nil
//	}
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.renderer.Begin(screen)
//		g.chart.Render(g.renderer, g.camera)
//	}
//
// # Timelines
//
// A [Timeline] is a piecewise function of time defined by [Keyframe] values.
// Each keyframe either holds its value until the next one or interpolates
// towards it, linearly or through one of the eased curves from [gween].
// Timelines remember the last segment they resolved, so querying with
// non-decreasing times is amortized O(1); querying an earlier time rescans.
//
// # Scheduling
//
// Notes are sorted once when the chart is built. Each line keeps a
// [NoteSchedulingCache]: the notes still updated every frame, and per side
// one cursor per run (contiguous notes sharing side and scroll speed) that
// points at the run's first unjudged note. Judged notes are never scanned
// again. The judgement subsystem marks notes through [Note.Judge].
//
// # Parents
//
// A line may follow one parent line. Only one level of nesting is allowed;
// [NewChart] rejects deeper chains.
//
// [gween]: https://github.com/tanema/gween
package judgeline
