package ebitendraw

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/judgeline"
)

func TestAffineGeoM(t *testing.T) {
	m := affineGeoM(judgeline.Affine{0, 1, -1, 0, 10, 20})
	x, y := m.Apply(1, 0)
	if math.Abs(x-10) > 1e-9 || math.Abs(y-21) > 1e-9 {
		t.Errorf("Apply(1,0) = (%v,%v), want (10,21)", x, y)
	}
}

func TestNoteColor(t *testing.T) {
	tests := []struct {
		nc   judgeline.NoteCommand
		want color.RGBA
	}{
		{judgeline.NoteCommand{Kind: judgeline.NoteKind{Type: judgeline.NoteClick}}, ClickColor},
		{judgeline.NoteCommand{Kind: judgeline.NoteKind{Type: judgeline.NoteDrag}}, DragColor},
		{judgeline.NoteCommand{Kind: judgeline.NoteKind{Type: judgeline.NoteFlick}}, FlickColor},
		{judgeline.NoteCommand{Kind: judgeline.Hold(1, 1)}, HoldColor},
		{judgeline.NoteCommand{Kind: judgeline.NoteKind{Type: judgeline.NoteDrag}, MultipleHint: true}, HintColor},
	}
	for _, tt := range tests {
		if got := noteColor(&tt.nc); got != tt.want {
			t.Errorf("noteColor(%v) = %v, want %v", tt.nc.Kind.Type, got, tt.want)
		}
	}
}

func TestUnit8(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want uint8
	}{{-1, 0}, {0, 0}, {0.5, 128}, {1, 255}, {2, 255}} {
		if got := unit8(tc.in); got != tc.want {
			t.Errorf("unit8(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDrawLineWithoutBegin(t *testing.T) {
	r := NewRenderer(judgeline.NewCamera(judgeline.Rect{Width: 64, Height: 64}))
	// Must not panic.
	r.DrawLine(&judgeline.LineCommand{Skin: judgeline.NormalSkin{}})
}

func TestDrawMissingTexture(t *testing.T) {
	r := NewRenderer(judgeline.NewCamera(judgeline.Rect{Width: 64, Height: 64}))
	r.Begin(ebiten.NewImage(64, 64))
	cmd := &judgeline.LineCommand{
		Transform: judgeline.Affine{1, 0, 0, 1, 0, 0},
		Skin:      judgeline.TextureSkin{Name: "missing", Width: 1, Height: 1},
		Color:     judgeline.ColorWhite,
	}
	r.DrawLine(cmd)
	r.DrawLine(cmd)
	if !r.missing["missing"] {
		t.Error("missing texture was not recorded")
	}
}

func TestLoadTexturesMissingDir(t *testing.T) {
	if _, err := LoadTextures(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestLoadTexturesSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	textures, err := LoadTextures(dir)
	if err != nil {
		t.Fatalf("LoadTextures: %v", err)
	}
	if len(textures) != 0 {
		t.Errorf("loaded %d textures, want 0", len(textures))
	}
}

func TestIsImage(t *testing.T) {
	for name, want := range map[string]bool{
		"line.png": true, "line.JPG": true, "bar.jpeg": true, "chart.json": false, "png": false,
	} {
		if got := isImage(name); got != want {
			t.Errorf("isImage(%q) = %v, want %v", name, got, want)
		}
	}
}
