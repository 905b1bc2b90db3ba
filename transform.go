package judgeline

import "math"

// Affine is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine = [6]float64

// identityTransform is the identity affine matrix.
var identityTransform = Affine{1, 0, 0, 1, 0, 0}

// translateAffine returns a pure translation.
func translateAffine(x, y float64) Affine {
	return Affine{1, 0, 0, 1, x, y}
}

// rotateAffine returns a rotation by deg degrees (counter-clockwise with Y up).
func rotateAffine(deg float64) Affine {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// scaleAffine returns a non-uniform scale.
func scaleAffine(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// flipY mirrors the Y axis; below-side notes are emitted in this frame.
var flipY = scaleAffine(1, -1)

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m Affine) Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m Affine, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// rotateVec rotates v by deg degrees.
func rotateVec(deg float64, v Vec2) Vec2 {
	x, y := transformPoint(rotateAffine(deg), v.X, v.Y)
	return Vec2{X: x, Y: y}
}

// Transform is a bundle of timelines producing one 2D affine transform.
// Every component is evaluated at the same time. Empty components fall back
// to translation (0, 0), rotation 0, scale (1, 1) and alpha 1.
type Transform struct {
	Translation Vec2Timeline
	// Rotation is in degrees. It interpolates linearly in degrees with no
	// shortest-arc wrapping.
	Rotation *Timeline[float64]
	Scale    Vec2Timeline
	Alpha    *Timeline[float64]
}

// SetTime sets the query time of every component.
func (tr *Transform) SetTime(t float64) {
	tr.Translation.SetTime(t)
	tr.Rotation.SetTime(t)
	tr.Scale.SetTime(t)
	tr.Alpha.SetTime(t)
}

// NowTranslation returns the current translation.
func (tr *Transform) NowTranslation() Vec2 {
	return tr.Translation.Now()
}

// NowRotation returns the current rotation in degrees.
func (tr *Transform) NowRotation() float64 {
	return tr.Rotation.Now()
}

// NowScale returns the current scale.
func (tr *Transform) NowScale() Vec2 {
	return tr.Scale.NowOr(Vec2{X: 1, Y: 1})
}

// NowAlpha returns the current alpha, 1 when no alpha is animated.
func (tr *Transform) NowAlpha() float64 {
	if a, ok := tr.Alpha.NowOpt(); ok {
		return a
	}
	return 1
}

// Now composes the current transform: scale is applied first in the local
// frame, then rotation, then translation.
//
//	Translate(T) -> Rotate(R) -> Scale(S), i.e. M = T * R * S
func (tr *Transform) Now() Affine {
	return multiplyAffine(tr.nowRigid(), tr.nowScaleAffine())
}

// nowRigid returns Translate * Rotate without the scale.
func (tr *Transform) nowRigid() Affine {
	t := tr.NowTranslation()
	return composeRigid(t, tr.NowRotation())
}

func (tr *Transform) nowScaleAffine() Affine {
	s := tr.NowScale()
	return scaleAffine(s.X, s.Y)
}

// composeRigid builds Translate(t) * Rotate(deg).
func composeRigid(t Vec2, deg float64) Affine {
	m := rotateAffine(deg)
	m[4], m[5] = t.X, t.Y
	return m
}

// animated reports whether any component holds more than one keyframe.
func (tr *Transform) animated() bool {
	return !tr.Translation.static() || !tr.Scale.static() ||
		tr.Rotation.Len() > 1 || tr.Alpha.Len() > 1
}
