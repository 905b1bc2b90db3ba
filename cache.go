package judgeline

// NoteSchedulingCache tracks which notes of a line still need per-frame
// updates and, per side, one cursor per run of notes that still has
// unjudged members.
//
// A run is a maximal contiguous group of non-plain notes sharing side and
// scroll speed in the line's fixed sort order. Each cursor points at the
// first unjudged member of its run. Cursors only move forward; the whole
// cache is rebuilt by reset when time is rewound.
type NoteSchedulingCache struct {
	pending []int
	above   []int
	below   []int
}

// newNoteCache builds a cache over notes already sorted plain-first, then
// by side, scroll speed and floor position.
func newNoteCache(notes []Note) NoteSchedulingCache {
	var c NoteSchedulingCache
	c.reset(notes)
	return c
}

// reset rebuilds the cache from the fixed note sequence.
func (c *NoteSchedulingCache) reset(notes []Note) {
	if cap(c.pending) < len(notes) {
		c.pending = make([]int, len(notes))
	}
	c.pending = c.pending[:len(notes)]
	for i := range c.pending {
		c.pending[i] = i
	}
	c.above = c.above[:0]
	c.below = c.below[:0]

	index := firstRunIndex(notes)
	for index < len(notes) && notes[index].Side == SideAbove {
		c.above = append(c.above, index)
		index = runEnd(notes, index)
	}
	for index < len(notes) {
		c.below = append(c.below, index)
		index = runEnd(notes, index)
	}
}

// firstRunIndex returns the index of the first non-plain note.
func firstRunIndex(notes []Note) int {
	for i := range notes {
		if !notes[i].plain {
			return i
		}
	}
	return len(notes)
}

// runEnd returns the index one past the run starting at start.
func runEnd(notes []Note, start int) int {
	i := start + 1
	for i < len(notes) && sameRun(&notes[start], &notes[i]) {
		i++
	}
	return i
}

// sameRun reports whether two non-plain notes belong to the same run.
func sameRun(a, b *Note) bool {
	return a.Side == b.Side && a.ScrollSpeed == b.ScrollSpeed
}

// Pending returns the indices of notes still updated every frame. The slice
// must not be modified.
func (c *NoteSchedulingCache) Pending() []int {
	return c.pending
}

// Runs returns the live run cursors for a side. The slice must not be
// modified.
func (c *NoteSchedulingCache) Runs(side Side) []int {
	if side == SideBelow {
		return c.below
	}
	return c.above
}

// updatePending advances every pending note to t and drops the ones that are
// no longer live. Relative order of the survivors is preserved.
func (c *NoteSchedulingCache) updatePending(notes []Note, t float64, retired func(index int)) {
	c.pending = retain(c.pending, func(index *int) bool {
		if notes[*index].update(t) {
			return true
		}
		if retired != nil {
			retired(*index)
		}
		return false
	})
}

// advanceRuns moves each run cursor past judged notes, dropping runs whose
// members are all judged.
func (c *NoteSchedulingCache) advanceRuns(notes []Note, exhausted func(side Side, index int)) {
	c.above = advanceCursors(notes, c.above, SideAbove, exhausted)
	c.below = advanceCursors(notes, c.below, SideBelow, exhausted)
}

func advanceCursors(notes []Note, cursors []int, side Side, exhausted func(side Side, index int)) []int {
	return retain(cursors, func(index *int) bool {
		for notes[*index].Judged() {
			next := *index + 1
			if next >= len(notes) || !sameRun(&notes[*index], &notes[next]) {
				if exhausted != nil {
					exhausted(side, *index)
				}
				return false
			}
			*index = next
		}
		return true
	})
}

// retain keeps the elements for which keep returns true, in order, reusing
// the backing array. keep may modify the element in place.
func retain[T any](s []T, keep func(*T) bool) []T {
	n := 0
	for i := range s {
		if keep(&s[i]) {
			s[n] = s[i]
			n++
		}
	}
	return s[:n]
}
