package judgeline

import (
	"math"
)

// AlphaMode is the decoded meaning of a line's alpha value.
type AlphaMode uint8

const (
	AlphaNormal        AlphaMode = iota // draw with Alpha
	AlphaHidden                         // draw neither the line nor its notes
	AlphaSuppressBelow                  // never draw notes below the line
	AlphaAppearBefore                   // notes appear AppearBefore seconds ahead of their hit time
)

// LineAlpha is a line alpha with negative control codes decoded.
type LineAlpha struct {
	Mode AlphaMode
	// Alpha is the opacity used for the line itself, never negative.
	Alpha float64
	// AppearBefore is only set for AlphaAppearBefore.
	AppearBefore float64
}

// DecodeLineAlpha decodes a line alpha. Non-negative values are plain
// opacities. Negative values are control codes when extension is true,
// keyed by w = floor(-alpha):
//
//	1          hide the line's notes
//	2          suppress notes below the line
//	100..999   notes appear (w-100)/10 seconds before their hit time
//	1000..1999 reserved, renders normally
//
// Any other code renders normally. Without the extension a negative alpha
// hides the notes.
func DecodeLineAlpha(alpha float64, extension bool) LineAlpha {
	if alpha >= 0 {
		return LineAlpha{Mode: AlphaNormal, Alpha: alpha}
	}
	if !extension {
		return LineAlpha{Mode: AlphaHidden}
	}
	w := math.Floor(-alpha)
	switch {
	case w == 1:
		return LineAlpha{Mode: AlphaHidden}
	case w == 2:
		return LineAlpha{Mode: AlphaSuppressBelow}
	case w >= 100 && w < 1000:
		return LineAlpha{Mode: AlphaAppearBefore, AppearBefore: (w - 100) / 10}
	}
	// 1000..1999 has no defined behavior yet.
	return LineAlpha{Mode: AlphaNormal}
}
