// Package ebitendraw draws judgeline render directives onto an ebiten image.
package ebitendraw

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/judgeline"
)

// Per-kind note tints.
var (
	ClickColor = colornames.Deepskyblue
	DragColor  = colornames.Gold
	FlickColor = colornames.Crimson
	HoldColor  = colornames.Lightskyblue
	// HintColor replaces the kind tint of notes sharing their hit time.
	HintColor = colornames.Orange
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// Renderer implements judgeline.Renderer on top of ebiten. Call Begin with
// the frame's target before Chart.Render.
type Renderer struct {
	Camera *judgeline.Camera
	// Textures resolves TextureSkin names.
	Textures map[string]*ebiten.Image
	// NoteWidth and NoteHeight are the size of a note head in world units.
	NoteWidth  float64
	NoteHeight float64
	// LineWidth is the stroke width of a normal line, in pixels.
	LineWidth float32

	target  *ebiten.Image
	view    ebiten.GeoM
	missing map[string]bool
	op      ebiten.DrawImageOptions
}

// NewRenderer creates a renderer drawing through cam.
func NewRenderer(cam *judgeline.Camera) *Renderer {
	return &Renderer{
		Camera:     cam,
		Textures:   map[string]*ebiten.Image{},
		NoteWidth:  0.22,
		NoteHeight: 0.04,
		LineWidth:  3,
		missing:    map[string]bool{},
	}
}

// Begin sets the image the next DrawLine calls draw into.
func (r *Renderer) Begin(target *ebiten.Image) {
	r.target = target
	r.view = affineGeoM(r.Camera.ViewMatrix())
}

// DrawLine draws a line and its notes.
func (r *Renderer) DrawLine(cmd *judgeline.LineCommand) {
	if r.target == nil {
		return
	}
	line := affineGeoM(cmd.Transform)
	line.Concat(r.view)

	switch skin := cmd.Skin.(type) {
	case judgeline.TextureSkin:
		r.drawTexture(skin, line, cmd.Color)
	case judgeline.TextSkin:
		x, y := line.Apply(0, 0)
		ebitenutil.DebugPrintAt(r.target, cmd.Text, int(x), int(y))
	default:
		x0, y0 := line.Apply(-cmd.Length, 0)
		x1, y1 := line.Apply(cmd.Length, 0)
		vector.StrokeLine(r.target, float32(x0), float32(y0), float32(x1), float32(y1),
			r.LineWidth, toNRGBA(cmd.Color), true)
	}

	for i := range cmd.Notes {
		r.drawNote(&cmd.Notes[i])
	}
}

func (r *Renderer) drawTexture(skin judgeline.TextureSkin, line ebiten.GeoM, c judgeline.Color) {
	img, ok := r.Textures[skin.Name]
	if !ok {
		if !r.missing[skin.Name] {
			r.missing[skin.Name] = true
			log.Printf("ebitendraw: texture %q not found, line not drawn", skin.Name)
		}
		return
	}
	b := img.Bounds()
	op := &r.op
	op.GeoM.Reset()
	// Pixel rows grow downwards; world Y grows upwards.
	op.GeoM.Scale(skin.Width/float64(b.Dx()), -skin.Height/float64(b.Dy()))
	op.GeoM.Translate(-skin.Width/2, skin.Height/2)
	op.GeoM.Concat(line)
	setColor(op, c)
	r.target.DrawImage(img, op)
}

func (r *Renderer) drawNote(nc *judgeline.NoteCommand) {
	note := affineGeoM(nc.Transform)
	note.Concat(r.view)
	tint := noteColor(nc)

	if nc.Kind.IsHold() {
		if body := nc.TailOffset - nc.HeadOffset; body > 0 {
			r.fillRect(note, -r.NoteWidth/2, 0, r.NoteWidth, body, tint, nc.Color.A*0.6)
		}
	}
	r.fillRect(note, -r.NoteWidth/2, -r.NoteHeight/2, r.NoteWidth, r.NoteHeight, tint, nc.Color.A)
}

// fillRect fills a rectangle given in the local frame of m.
func (r *Renderer) fillRect(m ebiten.GeoM, x, y, w, h float64, tint color.RGBA, alpha float64) {
	op := &r.op
	op.GeoM.Reset()
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(m)
	setColor(op, judgeline.Color{
		R: float64(tint.R) / 255,
		G: float64(tint.G) / 255,
		B: float64(tint.B) / 255,
		A: alpha,
	})
	r.target.DrawImage(ensureWhitePixel(), op)
}

func noteColor(nc *judgeline.NoteCommand) color.RGBA {
	if nc.MultipleHint {
		return HintColor
	}
	switch nc.Kind.Type {
	case judgeline.NoteDrag:
		return DragColor
	case judgeline.NoteFlick:
		return FlickColor
	case judgeline.NoteHold:
		return HoldColor
	}
	return ClickColor
}

func setColor(op *ebiten.DrawImageOptions, c judgeline.Color) {
	a := float32(c.A)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
}

// affineGeoM converts a [a, b, c, d, tx, ty] affine into an ebiten.GeoM.
func affineGeoM(t judgeline.Affine) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}

func toNRGBA(c judgeline.Color) color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

func unit8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
