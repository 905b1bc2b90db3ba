// Package pgr converts charts in the Phigros JSON format into judgeline
// charts.
//
// Times in the format are ticks; each judge line converts them to seconds
// with its own ratio r = 60 / bpm / 32. Line positions are normalized to
// [0, 1] and remapped to [-1, 1]. Floor positions are divided by
// HeightRatio. Any invalid line aborts the whole chart.
package pgr

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/phanxgames/judgeline"
	"github.com/tidwall/gjson"
)

const (
	// HeightRatio converts format floor positions into world units.
	HeightRatio = 0.83175
	// NoteWidthRatio converts a note's positionX into world units.
	NoteWidthRatio = 0.13175016
	// minTailTicks is how far the last event of every list must reach.
	minTailTicks = 900000000.0
)

// Errors reported while converting a chart. They are wrapped with the judge
// line index and the event list involved.
var (
	ErrInvalidJSON     = errors.New("invalid JSON")
	ErrInvalidBPM      = errors.New("bpm must be positive")
	ErrFormatVersion   = errors.New("unsupported format version")
	ErrNoEvents        = errors.New("no events")
	ErrInvertedRange   = errors.New("event ends before it starts")
	ErrNotContiguous   = errors.New("events are not contiguous")
	ErrShortTail       = errors.New("last event does not end late enough")
	ErrSpeedStart      = errors.New("speed events do not start at 0")
	ErrUnsortedNotes   = errors.New("notes are not sorted")
	ErrUnknownNoteKind = errors.New("unknown note kind")
)

type pgrEvent struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Start2    float64 `json:"start2"`
	End2      float64 `json:"end2"`
}

type pgrSpeedEvent struct {
	StartTime     float64 `json:"startTime"`
	EndTime       float64 `json:"endTime"`
	Value         float64 `json:"value"`
	FloorPosition float64 `json:"floorPosition"`
}

type pgrNote struct {
	Kind          int     `json:"type"`
	Time          float64 `json:"time"`
	PositionX     float64 `json:"positionX"`
	HoldTime      float64 `json:"holdTime"`
	Speed         float64 `json:"speed"`
	FloorPosition float64 `json:"floorPosition"`
}

type pgrJudgeLine struct {
	BPM          float64         `json:"bpm"`
	AlphaEvents  []pgrEvent      `json:"judgeLineDisappearEvents"`
	RotateEvents []pgrEvent      `json:"judgeLineRotateEvents"`
	MoveEvents   []pgrEvent      `json:"judgeLineMoveEvents"`
	SpeedEvents  []pgrSpeedEvent `json:"speedEvents"`
	NotesAbove   []pgrNote       `json:"notesAbove"`
	NotesBelow   []pgrNote       `json:"notesBelow"`
}

type pgrChart struct {
	FormatVersion int            `json:"formatVersion"`
	Offset        float64        `json:"offset"`
	JudgeLines    []pgrJudgeLine `json:"judgeLineList"`
}

// ParseFile reads and converts a chart file.
func ParseFile(path string, opts ...judgeline.ChartOption) (*judgeline.Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pgr: read %s: %w", path, err)
	}
	return Parse(data, opts...)
}

// Parse converts a chart. opts are passed on to judgeline.NewChart.
func Parse(data []byte, opts ...judgeline.ChartOption) (*judgeline.Chart, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("pgr: %w", ErrInvalidJSON)
	}
	version := gjson.GetBytes(data, "formatVersion")
	if version.Exists() && version.Int() != 1 && version.Int() != 3 {
		return nil, fmt.Errorf("pgr: %w: %d", ErrFormatVersion, version.Int())
	}

	var chart pgrChart
	if err := json.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("pgr: decode chart: %w", err)
	}
	if chart.FormatVersion == 1 {
		for i := range chart.JudgeLines {
			upgradeV1(&chart.JudgeLines[i])
		}
	}

	maxTime := chartMaxTime(chart.JudgeLines)
	lines := make([]judgeline.JudgeLine, len(chart.JudgeLines))
	for i := range chart.JudgeLines {
		line, err := convertLine(&chart.JudgeLines[i], maxTime)
		if err != nil {
			return nil, fmt.Errorf("pgr: judge line #%d: %w", i, err)
		}
		lines[i] = line
	}
	markMultipleHints(lines)
	return judgeline.NewChart(chart.Offset, lines, opts...)
}

// upgradeV1 unpacks version 1 move events, whose coordinates are packed as
// x*1000 + y with x in [0, 880] and y in [0, 520], and integrates the floor
// positions version 1 leaves out.
func upgradeV1(line *pgrJudgeLine) {
	for i := range line.MoveEvents {
		e := &line.MoveEvents[i]
		e.Start2 = math.Mod(e.Start, 1000) / 520
		e.End2 = math.Mod(e.End, 1000) / 520
		e.Start = math.Floor(e.Start/1000) / 880
		e.End = math.Floor(e.End/1000) / 880
	}
	r := tickRatio(line.BPM)
	floor := 0.0
	for i := range line.SpeedEvents {
		e := &line.SpeedEvents[i]
		e.FloorPosition = floor
		floor += (e.EndTime - e.StartTime) * r * e.Value
	}
}

// tickRatio converts a line's ticks into seconds.
func tickRatio(bpm float64) float64 {
	return 60 / bpm / 32
}

// chartMaxTime is one second past the last note of the chart.
func chartMaxTime(lines []pgrJudgeLine) float64 {
	maxTime := 0.0
	for i := range lines {
		if lines[i].BPM <= 0 {
			continue
		}
		r := tickRatio(lines[i].BPM)
		for _, notes := range [][]pgrNote{lines[i].NotesAbove, lines[i].NotesBelow} {
			for _, n := range notes {
				maxTime = math.Max(maxTime, n.Time*r)
			}
		}
	}
	return maxTime + 1
}

func convertLine(pl *pgrJudgeLine, maxTime float64) (judgeline.JudgeLine, error) {
	line := judgeline.NewJudgeLine()
	if pl.BPM <= 0 {
		return line, fmt.Errorf("%w: %v", ErrInvalidBPM, pl.BPM)
	}
	r := tickRatio(pl.BPM)

	height, err := convertSpeedEvents(r, pl.SpeedEvents, maxTime)
	if err != nil {
		return line, fmt.Errorf("speed events: %w", err)
	}
	line.Height = height

	above, err := convertNotes(r, pl.NotesAbove, judgeline.SideAbove, height)
	if err != nil {
		return line, fmt.Errorf("notes above: %w", err)
	}
	below, err := convertNotes(r, pl.NotesBelow, judgeline.SideBelow, height)
	if err != nil {
		return line, fmt.Errorf("notes below: %w", err)
	}
	line.Notes = append(above, below...)

	if line.Transform.Alpha, err = convertFloatEvents(r, pl.AlphaEvents); err != nil {
		return line, fmt.Errorf("alpha events: %w", err)
	}
	if line.Transform.Rotation, err = convertFloatEvents(r, pl.RotateEvents); err != nil {
		return line, fmt.Errorf("rotate events: %w", err)
	}
	if line.Transform.Translation, err = convertMoveEvents(r, pl.MoveEvents); err != nil {
		return line, fmt.Errorf("move events: %w", err)
	}
	return line, nil
}

func convertNotes(r float64, notes []pgrNote, side judgeline.Side, height *judgeline.Timeline[float64]) ([]judgeline.Note, error) {
	for i := 1; i < len(notes); i++ {
		if notes[i-1].Time > notes[i].Time {
			return nil, fmt.Errorf("%w: note %d at %v after %v", ErrUnsortedNotes, i, notes[i].Time, notes[i-1].Time)
		}
	}
	out := make([]judgeline.Note, 0, len(notes))
	for i, pn := range notes {
		n := judgeline.Note{
			HitTime:       pn.Time * r,
			ScrollSpeed:   pn.Speed,
			FloorPosition: pn.FloorPosition / HeightRatio,
			Side:          side,
		}
		n.Transform.Translation.X = judgeline.FixedFloat(pn.PositionX * NoteWidthRatio)
		switch pn.Kind {
		case 1:
			n.Kind = judgeline.NoteKind{Type: judgeline.NoteClick}
		case 2:
			n.Kind = judgeline.NoteKind{Type: judgeline.NoteDrag}
		case 3:
			end := (pn.Time + pn.HoldTime) * r
			height.SetTime(end)
			n.Kind = judgeline.Hold(end, height.Now())
		case 4:
			n.Kind = judgeline.NoteKind{Type: judgeline.NoteFlick}
		default:
			return nil, fmt.Errorf("%w: %d (note %d)", ErrUnknownNoteKind, pn.Kind, i)
		}
		out = append(out, n)
	}
	height.SetTime(0)
	return out, nil
}

// markMultipleHints flags notes sharing a hit time with another note,
// across every line.
func markMultipleHints(lines []judgeline.JudgeLine) {
	counts := make(map[float64]int)
	for i := range lines {
		for j := range lines[i].Notes {
			if n := &lines[i].Notes[j]; !n.Fake {
				counts[n.HitTime]++
			}
		}
	}
	for i := range lines {
		for j := range lines[i].Notes {
			if n := &lines[i].Notes[j]; !n.Fake && counts[n.HitTime] > 1 {
				n.MultipleHint = true
			}
		}
	}
}
