package judgeline

import (
	"fmt"
	"os"
	"time"
)

// FrameStats holds the counters of the last Update and Render. Timings are
// only measured while debug output is enabled.
type FrameStats struct {
	UpdateTime time.Duration
	RenderTime time.Duration
	// Lines is the number of lines handed to the renderer.
	Lines int
	// NotesScanned counts notes tested for visibility; with aggressive
	// culling it stays close to NotesDrawn.
	NotesScanned int
	NotesDrawn   int
}

// SetDebug enables per-frame timing and stats output on stderr.
func (c *Chart) SetDebug(enabled bool) {
	c.debug = enabled
}

// Stats returns the counters of the last frame.
func (c *Chart) Stats() FrameStats {
	return c.stats
}

// debugLog prints timing and scan stats to stderr.
func (c *Chart) debugLog() {
	s := c.stats
	_, _ = fmt.Fprintf(os.Stderr,
		"[judgeline] update: %v | render: %v | total: %v\n",
		s.UpdateTime, s.RenderTime, s.UpdateTime+s.RenderTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[judgeline] lines: %d | notes scanned: %d | notes drawn: %d\n",
		s.Lines, s.NotesScanned, s.NotesDrawn)
}
