package tabula

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, c Config)
		wantErr bool
	}{
		{
			name:  "defaults",
			input: "",
			check: func(t *testing.T, c Config) {
				if c != DefaultConfig() {
					t.Errorf("config = %+v, want defaults", c)
				}
			},
		},
		{
			name: "overrides",
			input: `
title = "Chess"
width = 1024
height = 768
horizontal_alignment = "left"
vertical_alignment = "bottom"
scale_mode = "shrink_only"
drag_dead_zone = 8
show_fps = true
clear_color = "#1e5631"

[zoom]
x = 10
y = 20
width = 300
height = 200
`,
			check: func(t *testing.T, c Config) {
				if c.Title != "Chess" || c.ScaleMode != "shrink_only" || !c.ShowFPS {
					t.Errorf("config = %+v", c)
				}
				assertNear(t, "width", c.Width, 1024)
				assertNear(t, "dead zone", c.DragDeadZone, 8)
				if c.Zoom == nil || c.Zoom.Rect() != (Rect{X: 10, Y: 20, Width: 300, Height: 200}) {
					t.Errorf("zoom = %+v", c.Zoom)
				}
				if c.TPS != 60 {
					t.Errorf("tps = %d, want default 60", c.TPS)
				}
			},
		},
		{name: "unknown key", input: `colour = "red"`, wantErr: true},
		{name: "bad scale mode", input: `scale_mode = "stretch"`, wantErr: true},
		{name: "bad alignment", input: `vertical_alignment = "middle"`, wantErr: true},
		{name: "zero size", input: `width = 0`, wantErr: true},
		{name: "empty zoom", input: "[zoom]\nwidth = 0\nheight = 10", wantErr: true},
		{name: "negative dead zone", input: `drag_dead_zone = -1`, wantErr: true},
		{name: "bad color", input: `clear_color = "green"`, wantErr: true},
		{name: "malformed", input: `width = `, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseConfig([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", c)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, c)
		})
	}
}

func TestParseConfigErrorsArePreconditions(t *testing.T) {
	_, err := ParseConfig([]byte(`scale_mode = "stretch"`))
	if !errors.Is(err, ErrPrecondition) {
		t.Errorf("err = %v, want ErrPrecondition", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte("title = \"Go\"\nwidth = 19\nheight = 19\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Title != "Go" || c.Width != 19 {
		t.Errorf("config = %+v", c)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "", want: Color{0, 0, 0, 1}},
		{in: "#ff0000", want: Color{1, 0, 0, 1}},
		{in: "#00ff0080", want: Color{0, 1, 0, 128.0 / 255}},
		{in: "ff0000", wantErr: true},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			assertNear(t, "r", got.R, tt.want.R)
			assertNear(t, "g", got.G, tt.want.G)
			assertNear(t, "b", got.B, tt.want.B)
			assertNear(t, "a", got.A, tt.want.A)
		})
	}
}

func TestNewSceneFromConfig(t *testing.T) {
	c := DefaultConfig()
	c.HorizontalAlignment = "right"
	c.VerticalAlignment = "top"
	c.ScaleMode = "none"
	c.ShowFPS = true
	c.ClearColor = "#102030"
	c.Zoom = &ZoomConfig{Width: 400, Height: 300}

	s, err := NewSceneFromConfig(c)
	if err != nil {
		t.Fatal(err)
	}
	if s.Alignment() != (Alignment{AlignRight, AlignTop}) || s.ScaleMode() != ScaleNone {
		t.Error("alignment or scale mode not applied")
	}
	if !s.ShowsFPS() {
		t.Error("fps overlay not enabled")
	}
	assertNear(t, "clear r", s.ClearColor.R, 0x10/255.0)
	if r, ok := s.Zoom(); !ok || r.Width != 400 {
		t.Errorf("zoom = %+v, %v", r, ok)
	}

	c.Width = -1
	if _, err := NewSceneFromConfig(c); err == nil {
		t.Error("invalid config accepted")
	}
}

func TestRunConfig(t *testing.T) {
	c := DefaultConfig()
	c.Title = "Backgammon"
	rc := c.RunConfig()
	if rc != (RunConfig{Title: "Backgammon", Width: 800, Height: 600, TPS: 60}) {
		t.Errorf("RunConfig = %+v", rc)
	}
}
