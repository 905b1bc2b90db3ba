package judgeline

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera maps chart world space onto the screen. World space has its origin
// at the screen center of an unzoomed camera, X to the right and Y up; a
// judge line at x = ±1 touches the viewport's vertical edges when the
// viewport is square.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the number of screen pixels per world unit.
	Zoom float64
	// Rotation is the camera rotation in degrees.
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	zoomTween *gween.Tween

	viewMatrix    Affine
	invViewMatrix Affine
	dirty         bool
}

// NewCamera creates a camera filling viewport, zoomed so that world Y in
// [-1, 1] spans the viewport height.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     viewport.Height / 2,
		Viewport: viewport,
		dirty:    true,
	}
}

// ZoomTo animates the zoom to the given value over duration seconds.
func (c *Camera) ZoomTo(zoom float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = gween.New(float32(c.Zoom), float32(zoom), duration, easeFn)
}

// Update advances the zoom animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	val, done := c.zoomTween.Update(dt)
	c.Zoom = float64(val)
	c.dirty = true
	if done {
		c.zoomTween = nil
	}
}

// MarkDirty forces a recomputation of the view matrix. Call it after
// modifying the exported fields directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom, -zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() Affine {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	m := translateAffine(-c.X, -c.Y)
	m = multiplyAffine(rotateAffine(-c.Rotation), m)
	m = multiplyAffine(scaleAffine(c.Zoom, -c.Zoom), m)
	m = multiplyAffine(translateAffine(cx, cy), m)

	c.viewMatrix = m
	c.invViewMatrix = invertAffine(m)
	return c.viewMatrix
}

// ViewMatrix returns the world-to-screen matrix.
func (c *Camera) ViewMatrix() Affine {
	return c.computeViewMatrix()
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// Corners returns the four viewport corners in world space.
func (c *Camera) Corners() [4]Vec2 {
	c.computeViewMatrix()
	inv := c.invViewMatrix

	vx := c.Viewport.X
	vy := c.Viewport.Y
	vr := vx + c.Viewport.Width
	vb := vy + c.Viewport.Height

	var p [4]Vec2
	p[0].X, p[0].Y = transformPoint(inv, vx, vy)
	p[1].X, p[1].Y = transformPoint(inv, vr, vy)
	p[2].X, p[2].Y = transformPoint(inv, vr, vb)
	p[3].X, p[3].Y = transformPoint(inv, vx, vb)
	return p
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's
// visible area in world space.
func (c *Camera) VisibleBounds() Rect {
	p := c.Corners()
	minX := math.Min(math.Min(p[0].X, p[1].X), math.Min(p[2].X, p[3].X))
	minY := math.Min(math.Min(p[0].Y, p[1].Y), math.Min(p[2].Y, p[3].Y))
	maxX := math.Max(math.Max(p[0].X, p[1].X), math.Max(p[2].X, p[3].X))
	maxY := math.Max(math.Max(p[0].Y, p[1].Y), math.Max(p[2].Y, p[3].Y))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// lineExtents returns how far the viewport reaches above and below a line
// whose rigid world transform is lineRigid, measured along the line's local
// Y axis.
func (c *Camera) lineExtents(lineRigid Affine) (above, below float64) {
	inv := invertAffine(lineRigid)
	above, below = math.Inf(-1), math.Inf(-1)
	for _, p := range c.Corners() {
		_, y := transformPoint(inv, p.X, p.Y)
		above = math.Max(above, y)
		below = math.Max(below, -y)
	}
	return above, below
}
