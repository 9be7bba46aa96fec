package tabula

// toLocal maps p from c's parent frame into c's own frame, where the bounds
// span (0, 0) to size. Rotation and scale are undone around the center,
// mirroring localAffine.
func toLocal(c Component, p Vec2) (Vec2, Vec2) {
	b := c.Base()
	pos := layoutPosition(c)
	size := layoutSize(c)
	pivot := Vec2{size.X / 2, size.Y / 2}
	q := p.Sub(pos).Sub(pivot).Rotate(-b.Rotation.Get())
	if sx := b.ScaleX.Get(); sx != 0 {
		q.X /= sx
	}
	if sy := b.ScaleY.Get(); sy != 0 {
		q.Y /= sy
	}
	return q.Add(pivot), size
}

// collectDropTargets appends to out every component in cs, and recursively
// in their children, whose bounds contain p. p is expressed in the frame
// that holds cs; each level maps it into the child frame before recursing,
// so the offsets and rotations of the whole ancestor chain accumulate.
// Containers and grids are only entered when their own bounds contain p.
// Results are ordered outermost first. Hidden or disabled subtrees and the
// excluded component are skipped. The model is not modified.
func collectDropTargets(cs []Component, p Vec2, exclude Component, out []Component) []Component {
	for _, c := range cs {
		if c == exclude {
			continue
		}
		b := c.Base()
		if !b.Visible.Get() || b.Disabled.Get() {
			continue
		}
		q, size := toLocal(c, p)
		if !(Rect{Width: size.X, Height: size.Y}).Contains(q.X, q.Y) {
			continue
		}
		out = append(out, c)
		out = collectDropTargets(childrenOf(c), q, exclude, out)
	}
	return out
}

// DropTargetsAt returns the components under the scene point (x, y),
// outermost first. The dragged component is never included.
func (s *Scene) DropTargetsAt(x, y float64) []Component {
	var exclude Component
	if s.drag != nil {
		exclude = s.drag.component
	}
	return collectDropTargets(s.components.Get(), Vec2{x, y}, exclude, nil)
}
