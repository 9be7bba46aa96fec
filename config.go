package tabula

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config describes a scene and its window. It is loaded from TOML:
//
//	title = "Solitaire"
//	width = 800
//	height = 600
//	horizontal_alignment = "center"
//	vertical_alignment = "top"
//	scale_mode = "shrink_only"
//	clear_color = "#1e5631"
//
//	[zoom]
//	x = 0
//	y = 0
//	width = 400
//	height = 300
type Config struct {
	Title               string      `toml:"title"`
	Width               float64     `toml:"width"`
	Height              float64     `toml:"height"`
	HorizontalAlignment string      `toml:"horizontal_alignment"`
	VerticalAlignment   string      `toml:"vertical_alignment"`
	ScaleMode           string      `toml:"scale_mode"`
	Zoom                *ZoomConfig `toml:"zoom,omitempty"`
	DragDeadZone        float64     `toml:"drag_dead_zone"`
	Debug               bool        `toml:"debug"`
	ShowFPS             bool        `toml:"show_fps"`
	TPS                 int         `toml:"tps"`
	ClearColor          string      `toml:"clear_color"`
}

// ZoomConfig is the initial zoom rectangle in scene coordinates.
type ZoomConfig struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Rect returns z as a Rect.
func (z ZoomConfig) Rect() Rect {
	return Rect{X: z.X, Y: z.Y, Width: z.Width, Height: z.Height}
}

// DefaultConfig returns the configuration used for keys a file leaves out.
func DefaultConfig() Config {
	return Config{
		Title:               "tabula",
		Width:               800,
		Height:              600,
		HorizontalAlignment: AlignHCenter.String(),
		VerticalAlignment:   AlignVCenter.String(),
		ScaleMode:           ScaleFull.String(),
		DragDeadZone:        defaultDragDeadZone,
		TPS:                 60,
		ClearColor:          "#000000",
	}
}

// LoadConfig reads and validates a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown config keys: %s", ErrPrecondition, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enum spellings.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: scene size must be positive, got %gx%g", ErrPrecondition, c.Width, c.Height)
	}
	if _, err := ParseHorizontalAlignment(c.HorizontalAlignment); err != nil {
		return err
	}
	if _, err := ParseVerticalAlignment(c.VerticalAlignment); err != nil {
		return err
	}
	if _, err := ParseScaleMode(c.ScaleMode); err != nil {
		return err
	}
	if c.Zoom != nil && c.Zoom.Rect().Empty() {
		return fmt.Errorf("%w: zoom rectangle must have a positive size", ErrPrecondition)
	}
	if c.DragDeadZone < 0 {
		return fmt.Errorf("%w: drag_dead_zone must not be negative", ErrPrecondition)
	}
	if c.TPS < 0 {
		return fmt.Errorf("%w: tps must not be negative", ErrPrecondition)
	}
	if _, err := ParseColor(c.ClearColor); err != nil {
		return err
	}
	return nil
}

// RunConfig returns the window settings of c.
func (c Config) RunConfig() RunConfig {
	return RunConfig{
		Title:  c.Title,
		Width:  int(c.Width),
		Height: int(c.Height),
		TPS:    c.TPS,
	}
}

// NewSceneFromConfig creates a scene configured by cfg.
func NewSceneFromConfig(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Validate has checked every enum and color below.
	h, _ := ParseHorizontalAlignment(cfg.HorizontalAlignment)
	v, _ := ParseVerticalAlignment(cfg.VerticalAlignment)
	mode, _ := ParseScaleMode(cfg.ScaleMode)
	clearColor, _ := ParseColor(cfg.ClearColor)

	s := NewScene(cfg.Width, cfg.Height)
	s.ClearColor = clearColor
	s.SetAlignment(h, v)
	s.SetScaleMode(mode)
	s.SetDragDeadZone(cfg.DragDeadZone)
	s.SetDebugMode(cfg.Debug)
	s.SetShowFPS(cfg.ShowFPS)
	if cfg.Zoom != nil {
		if err := s.ZoomTo(cfg.Zoom.Rect(), 0, nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ParseHorizontalAlignment parses "left", "center" or "right".
func ParseHorizontalAlignment(s string) (HorizontalAlignment, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "center", "":
		return AlignHCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignHCenter, fmt.Errorf("%w: unknown horizontal alignment %q", ErrPrecondition, s)
}

// ParseVerticalAlignment parses "top", "center" or "bottom".
func ParseVerticalAlignment(s string) (VerticalAlignment, error) {
	switch s {
	case "top":
		return AlignTop, nil
	case "center", "":
		return AlignVCenter, nil
	case "bottom":
		return AlignBottom, nil
	}
	return AlignVCenter, fmt.Errorf("%w: unknown vertical alignment %q", ErrPrecondition, s)
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". The empty string is opaque
// black.
func ParseColor(s string) (Color, error) {
	if s == "" {
		return Color{0, 0, 0, 1}, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return Color{}, fmt.Errorf("%w: color %q must be #rrggbb or #rrggbbaa", ErrPrecondition, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	var r, g, b, a uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
		return Color{}, fmt.Errorf("%w: color %q: %v", ErrPrecondition, s, err)
	}
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}
