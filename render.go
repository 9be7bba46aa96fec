package tabula

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// disabledAlpha dims disabled subtrees.
const disabledAlpha = 0.5

// whitePixel is a 1x1 white image scaled and tinted to paint ColorVisuals.
var whitePixel *ebiten.Image

func solidPixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.RGBA())
	}
	return whitePixel
}

// Draw renders the scene to screen: the clear color, the render tree
// through the view transform and the FPS overlay when enabled. Queued
// screenshots capture the finished frame.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA())
	}
	s.updateView()
	updateWorldTransform(s.root, identityAffine, 1, false)
	s.drawNode(screen, s.root, s.view.Matrix(), 1)
	if s.fps != nil {
		s.fps.draw(screen)
	}
	s.flushScreenshots(screen)
}

// drawNode paints n and its subtree in painter order. dim accumulates the
// disabled dimming of ancestors.
func (s *Scene) drawNode(dst *ebiten.Image, n *RenderNode, view Affine, dim float64) {
	if !n.Visible || n.disposed {
		return
	}
	if n.Disabled {
		dim *= disabledAlpha
	}
	if n.Type == NodeTypeVisual && n.Visual != nil && n.Width > 0 && n.Height > 0 {
		if alpha := n.worldAlpha * dim; alpha > 0 {
			m := view.Mul(n.worldTransform)
			s.drawVisual(dst, n.Visual, m, n.Width, n.Height, alpha)
		}
	}
	for _, child := range n.children {
		s.drawNode(dst, child, view, dim)
	}
}

// affineGeoM converts [a, b, c, d, tx, ty] into an ebiten.GeoM.
func affineGeoM(m Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// tint returns a color scale multiplying by c at the given alpha.
func tint(c Color, alpha float64) ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := clamp01(c.A) * alpha
	cs.Scale(float32(clamp01(c.R)*a), float32(clamp01(c.G)*a), float32(clamp01(c.B)*a), float32(a))
	return cs
}

func (s *Scene) drawVisual(dst *ebiten.Image, v Visual, m Affine, w, h, alpha float64) {
	switch v := v.(type) {
	case ColorVisual:
		if v.Color.A <= 0 {
			return
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w, h)
		op.GeoM.Concat(affineGeoM(m))
		op.ColorScale = tint(v.Color, alpha)
		dst.DrawImage(solidPixel(), op)

	case ImageVisual:
		if v.Image == nil {
			return
		}
		b := v.Image.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			return
		}
		a := alpha
		if v.Alpha > 0 {
			a *= v.Alpha
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
		op.GeoM.Concat(affineGeoM(m))
		op.ColorScale.ScaleAlpha(float32(a))
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(v.Image, op)

	case TextVisual:
		if v.Text == "" {
			return
		}
		face := s.face(v.Size)
		if face == nil {
			return
		}
		tw, th := measureText(v.Text, face)
		x, y := textPlacement(v.Alignment, tw, th, w, h)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.GeoM.Concat(affineGeoM(m))
		op.ColorScale = tint(v.Color, alpha)
		op.LineSpacing = lineHeight(face)
		op.Filter = ebiten.FilterLinear
		text.Draw(dst, v.Text, face, op)

	case CompoundVisual:
		for _, l := range v.Layers {
			if l != nil {
				s.drawVisual(dst, l, m, w, h, alpha)
			}
		}
	}
}
