package tabula

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

var identityAffine = Affine{1, 0, 0, 1, 0, 0}

// Mul returns m * o, applying o first.
func (m Affine) Mul(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse of m, or the identity when m is singular.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityAffine
	}
	a, b := m[3]/det, -m[1]/det
	c, d := -m[2]/det, m[0]/det
	return Affine{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

// Apply maps (x, y) through m.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// localAffine places n inside its parent. X and Y locate the unrotated
// top-left corner; rotation and scale act around the pivot:
//
//	T(X+px, Y+py) * R * S * T(-px, -py)
func localAffine(n *RenderNode) Affine {
	sin, cos := math.Sincos(n.Rotation * math.Pi / 180)
	a, b := cos*n.ScaleX, sin*n.ScaleX
	c, d := -sin*n.ScaleY, cos*n.ScaleY
	px, py := n.PivotX, n.PivotY
	return Affine{a, b, c, d, n.X + px - a*px - c*py, n.Y + py - b*px - d*py}
}

// updateWorldTransform refreshes the world matrix and alpha of every dirty
// node under n. A recomputed node forces its whole subtree.
func updateWorldTransform(n *RenderNode, parent Affine, parentAlpha float64, force bool) {
	if force = force || n.transformDirty; force {
		n.worldTransform = parent.Mul(localAffine(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, force)
	}
}

// SetPosition moves n within its parent.
func (n *RenderNode) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.transformDirty = true
}

// SetSize sets the bounds of n and centers its pivot, so components rotate
// and scale around their middle.
func (n *RenderNode) SetSize(w, h float64) {
	n.Width, n.Height = w, h
	n.PivotX, n.PivotY = w/2, h/2
	n.transformDirty = true
}

func (n *RenderNode) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.transformDirty = true
}

// SetRotation sets the rotation in degrees, clockwise.
func (n *RenderNode) SetRotation(deg float64) {
	n.Rotation = deg
	n.transformDirty = true
}

// SetAlpha sets the opacity multiplied into the subtree.
func (n *RenderNode) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// WorldToLocal maps a scene point into n's local space.
func (n *RenderNode) WorldToLocal(x, y float64) (float64, float64) {
	return n.worldTransform.Invert().Apply(x, y)
}

// LocalToWorld maps a local point of n into scene space.
func (n *RenderNode) LocalToWorld(x, y float64) (float64, float64) {
	return n.worldTransform.Apply(x, y)
}

// WorldTransform returns the matrix computed by the last update.
func (n *RenderNode) WorldTransform() Affine {
	return n.worldTransform
}
