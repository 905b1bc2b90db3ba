package ebitendraw

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// LoadTextures loads every PNG or JPEG in dir, keyed by file name without
// its extension, for use as TextureSkin names.
func LoadTextures(dir string) (map[string]*ebiten.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ebitendraw: read textures: %w", err)
	}
	textures := make(map[string]*ebiten.Image)
	for _, e := range entries {
		if e.IsDir() || !isImage(e.Name()) {
			continue
		}
		img, _, err := ebitenutil.NewImageFromFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ebitendraw: load texture %s: %w", e.Name(), err)
		}
		textures[strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))] = img
	}
	return textures, nil
}

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
