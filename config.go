package judgeline

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Config holds render settings for a Chart.
type Config struct {
	// Aggressive stops scanning a run at the first note beyond the viewport.
	Aggressive bool `yaml:"aggressive"`
	// AlphaExtension enables negative line alpha control codes.
	AlphaExtension bool `yaml:"alpha_extension"`
	// LineLength is the half length of a normal line, in world units.
	LineLength float64 `yaml:"line_length"`
	// LineColor is used by lines without an animated color.
	LineColor Color `yaml:"line_color"`
	// NoteMargin is the half height of a drawn note; a note is culled once
	// its offset minus the margin passes the viewport.
	NoteMargin float64 `yaml:"note_margin"`
	// ChartAlpha multiplies every line and note alpha.
	ChartAlpha float64 `yaml:"chart_alpha"`
}

// DefaultConfig returns the settings used when none are supplied.
func DefaultConfig() Config {
	return Config{
		Aggressive:     true,
		AlphaExtension: true,
		LineLength:     6,
		LineColor:      Color{R: 0xfe / 255.0, G: 0xff / 255.0, B: 0xa9 / 255.0, A: 1},
		NoteMargin:     0.05,
		ChartAlpha:     1,
	}
}

// LoadConfig parses YAML settings on top of DefaultConfig.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("judgeline: parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML settings file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("judgeline: read config %s: %w", path, err)
	}
	return LoadConfig(data)
}

// UnmarshalYAML accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor parses "#rrggbb", "#rrggbbaa" or an SVG color name such as
// "gold".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if rgba, ok := colornames.Map[s]; ok {
		return Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
			A: float64(rgba.A) / 255,
		}, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return Color{}, fmt.Errorf("judgeline: invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("judgeline: invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
