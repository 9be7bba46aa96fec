package tabula

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScaleMode controls how scene content is fitted into the viewport.
type ScaleMode uint8

const (
	// ScaleFull scales content up or down to fit, preserving aspect ratio.
	ScaleFull ScaleMode = iota
	// ScaleShrinkOnly scales content down to fit but never enlarges it.
	ScaleShrinkOnly
	// ScaleNone draws content at its logical size.
	ScaleNone
)

// String returns the config spelling of the mode.
func (m ScaleMode) String() string {
	switch m {
	case ScaleShrinkOnly:
		return "shrink_only"
	case ScaleNone:
		return "none"
	default:
		return "full"
	}
}

// ParseScaleMode parses "full", "shrink_only" or "none".
func ParseScaleMode(s string) (ScaleMode, error) {
	switch s {
	case "full", "":
		return ScaleFull, nil
	case "shrink_only":
		return ScaleShrinkOnly, nil
	case "none":
		return ScaleNone, nil
	}
	return ScaleFull, fmt.Errorf("%w: unknown scale mode %q", ErrPrecondition, s)
}

// ViewTransform maps scene coordinates to screen coordinates:
//
//	screen = Offset + Scale * scene
type ViewTransform struct {
	Scale            float64
	OffsetX, OffsetY float64
}

// Matrix returns the transform as an affine matrix [a, b, c, d, tx, ty].
func (v ViewTransform) Matrix() Affine {
	return Affine{v.Scale, 0, 0, v.Scale, v.OffsetX, v.OffsetY}
}

// SceneToScreen converts a scene point to screen coordinates.
func (v ViewTransform) SceneToScreen(x, y float64) (float64, float64) {
	return v.OffsetX + v.Scale*x, v.OffsetY + v.Scale*y
}

// ScreenToScene converts a screen point to scene coordinates.
func (v ViewTransform) ScreenToScene(x, y float64) (float64, float64) {
	if v.Scale == 0 {
		return x, y
	}
	return (x - v.OffsetX) / v.Scale, (y - v.OffsetY) / v.Scale
}

// ComputeViewTransform fits content, a rectangle in scene coordinates, into
// a viewport of viewW x viewH pixels.
//
// The uniform scale is the smaller of the two axis ratios. ScaleShrinkOnly
// clamps it to at most 1 and ScaleNone fixes it at 1. The content anchor
// selected by align (start, center or end on each axis) is pinned to the
// matching viewport anchor, so scaling happens around that point.
func ComputeViewTransform(viewW, viewH float64, content Rect, mode ScaleMode, align Alignment) ViewTransform {
	scale := 1.0
	if content.Width > 0 && content.Height > 0 && mode != ScaleNone {
		scale = min(viewW/content.Width, viewH/content.Height)
		if mode == ScaleShrinkOnly {
			scale = min(scale, 1)
		}
	}
	hm := align.Horizontal.Multiplier()
	vm := align.Vertical.Multiplier()
	anchorX := content.X + content.Width*hm
	anchorY := content.Y + content.Height*vm
	return ViewTransform{
		Scale:   scale,
		OffsetX: viewW*hm - scale*anchorX,
		OffsetY: viewH*vm - scale*anchorY,
	}
}

// zoomAnim holds the tweens of an animated ZoomTo.
type zoomAnim struct {
	tweens [4]*gween.Tween
	done   [4]bool
}

// SetAlignment sets where content sits inside the viewport.
func (s *Scene) SetAlignment(h HorizontalAlignment, v VerticalAlignment) {
	s.hAlign, s.vAlign = h, v
	s.updateView()
}

// Alignment returns the content alignment inside the viewport.
func (s *Scene) Alignment() Alignment {
	return Alignment{Horizontal: s.hAlign, Vertical: s.vAlign}
}

// SetScaleMode sets how content is fitted into the viewport.
func (s *Scene) SetScaleMode(m ScaleMode) {
	s.scaleMode = m
	s.updateView()
}

// ScaleMode returns the scale mode.
func (s *Scene) ScaleMode() ScaleMode {
	return s.scaleMode
}

// ContentRect returns the scene rectangle fitted into the viewport: the zoom
// rectangle while zoomed, the full scene otherwise.
func (s *Scene) ContentRect() Rect {
	if s.zoom != nil {
		return *s.zoom
	}
	return Rect{Width: s.Width, Height: s.Height}
}

// Zoom returns the zoom rectangle and whether one is set.
func (s *Scene) Zoom() (Rect, bool) {
	if s.zoom == nil {
		return Rect{}, false
	}
	return *s.zoom, true
}

// ZoomTo makes the scene rectangle r fill the viewport. With a positive
// duration the change is animated with fn (linear when nil). The zoomed
// view always uses the plain fit ratio; the scale mode applies to the full
// scene only.
func (s *Scene) ZoomTo(r Rect, duration time.Duration, fn ease.TweenFunc) error {
	if r.Empty() {
		return fmt.Errorf("%w: empty zoom rectangle", ErrPrecondition)
	}
	if duration <= 0 {
		s.zoomAnim = nil
		s.zoomTarget = nil
		s.zoom = &r
		s.updateView()
		return nil
	}
	if fn == nil {
		fn = ease.Linear
	}
	from := s.ContentRect()
	d := seconds(duration)
	s.zoomAnim = &zoomAnim{tweens: [4]*gween.Tween{
		gween.New(float32(from.X), float32(r.X), d, fn),
		gween.New(float32(from.Y), float32(r.Y), d, fn),
		gween.New(float32(from.Width), float32(r.Width), d, fn),
		gween.New(float32(from.Height), float32(r.Height), d, fn),
	}}
	target := r
	s.zoomTarget = &target
	return nil
}

// ResetZoom shows the full scene again.
func (s *Scene) ResetZoom() {
	s.zoomAnim = nil
	s.zoomTarget = nil
	s.zoom = nil
	s.updateView()
}

func (s *Scene) updateZoom(dt time.Duration) {
	za := s.zoomAnim
	if za == nil {
		return
	}
	cur := s.ContentRect()
	vals := [4]float64{cur.X, cur.Y, cur.Width, cur.Height}
	finished := true
	for i, tw := range za.tweens {
		if za.done[i] {
			continue
		}
		v, done := tw.Update(seconds(dt))
		vals[i] = float64(v)
		za.done[i] = done
		finished = finished && done
	}
	r := Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	if finished {
		r = *s.zoomTarget
		s.zoomAnim = nil
		s.zoomTarget = nil
	}
	s.zoom = &r
	s.updateView()
}

// updateView recomputes the view transform from the viewport properties.
func (s *Scene) updateView() {
	r := s.ContentRect()
	mode := s.scaleMode
	if s.zoom != nil {
		mode = ScaleFull
	}
	s.view = ComputeViewTransform(s.ViewportWidth.Get(), s.ViewportHeight.Get(), r, mode, s.Alignment())
}

// ViewTransform returns the current scene to screen transform.
func (s *Scene) ViewTransform() ViewTransform {
	return s.view
}

// ScreenToScene converts a screen point to scene coordinates.
func (s *Scene) ScreenToScene(x, y float64) (float64, float64) {
	return s.view.ScreenToScene(x, y)
}

// SceneToScreen converts a scene point to screen coordinates.
func (s *Scene) SceneToScreen(x, y float64) (float64, float64) {
	return s.view.SceneToScreen(x, y)
}
