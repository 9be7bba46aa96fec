package tabula

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- local transform ---

func TestLocalTransform(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *RenderNode)
		want  Affine
	}{
		{"identity", func(n *RenderNode) {}, Affine{1, 0, 0, 1, 0, 0}},
		{"translation", func(n *RenderNode) { n.SetPosition(10, 20) }, Affine{1, 0, 0, 1, 10, 20}},
		{"scale", func(n *RenderNode) { n.SetScale(2, 3) }, Affine{2, 0, 0, 3, 0, 0}},
		// cos(90)=0, sin(90)=1
		{"rotation 90", func(n *RenderNode) { n.SetRotation(90) }, Affine{0, 1, -1, 0, 0, 0}},
		{"rotation 180 around center", func(n *RenderNode) {
			n.SetSize(20, 10)
			n.SetRotation(180)
		}, Affine{-1, 0, 0, -1, 20, 10}},
		{"scale around center", func(n *RenderNode) {
			n.SetPosition(100, 100)
			n.SetSize(10, 10)
			n.SetScale(2, 2)
		}, Affine{2, 0, 0, 2, 95, 95}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewGroupNode("n")
			tt.setup(n)
			assertMatrix(t, tt.name, localAffine(n), tt.want)
		})
	}
}

func TestSetSizeCentersPivot(t *testing.T) {
	n := NewGroupNode("n")
	n.SetSize(40, 30)
	assertNear(t, "PivotX", n.PivotX, 20)
	assertNear(t, "PivotY", n.PivotY, 15)
}

// --- Affine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := Affine{2, 1, -1, 3, 5, 7}
	assertMatrix(t, "I*m", identityAffine.Mul(m), m)
	assertMatrix(t, "m*I", m.Mul(identityAffine), m)
}

func TestInvertAffine(t *testing.T) {
	m := Affine{0, 2, -2, 0, 10, 20}
	assertMatrix(t, "m*inv", m.Mul(m.Invert()), identityAffine)
}

func TestInvertAffineSingular(t *testing.T) {
	assertMatrix(t, "singular", Affine{0, 0, 0, 0, 5, 5}.Invert(), identityAffine)
}

// --- updateWorldTransform ---

func TestWorldTransformHierarchy(t *testing.T) {
	root := NewGroupNode("root")
	parent := NewGroupNode("parent")
	child := NewGroupNode("child")
	root.AddChild(parent)
	parent.AddChild(child)
	parent.SetPosition(100, 50)
	parent.SetAlpha(0.5)
	child.SetPosition(10, 20)
	child.SetAlpha(0.5)

	updateWorldTransform(root, identityAffine, 1, false)

	assertMatrix(t, "child world", child.WorldTransform(), Affine{1, 0, 0, 1, 110, 70})
	assertNear(t, "child alpha", child.worldAlpha, 0.25)
}

func TestWorldTransformParentRotation(t *testing.T) {
	root := NewGroupNode("root")
	parent := NewGroupNode("parent")
	child := NewGroupNode("child")
	root.AddChild(parent)
	parent.AddChild(child)
	parent.SetRotation(90)
	child.SetPosition(10, 0)

	updateWorldTransform(root, identityAffine, 1, false)

	x, y := child.LocalToWorld(0, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 10)
}

func TestWorldTransformDirtyPropagation(t *testing.T) {
	root := NewGroupNode("root")
	parent := NewGroupNode("parent")
	child := NewGroupNode("child")
	root.AddChild(parent)
	parent.AddChild(child)
	updateWorldTransform(root, identityAffine, 1, false)

	parent.SetPosition(5, 5)
	if child.transformDirty {
		t.Fatal("child should not be dirty before traversal")
	}
	updateWorldTransform(root, identityAffine, 1, false)
	x, y := child.LocalToWorld(0, 0)
	assertNear(t, "x", x, 5)
	assertNear(t, "y", y, 5)
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	root := NewGroupNode("root")
	n := NewGroupNode("n")
	root.AddChild(n)
	n.SetPosition(30, 40)
	n.SetSize(20, 20)
	n.SetRotation(37)
	n.SetScale(1.5, 0.5)
	updateWorldTransform(root, identityAffine, 1, false)

	wx, wy := n.LocalToWorld(3, 7)
	lx, ly := n.WorldToLocal(wx, wy)
	if math.Abs(lx-3) > 1e-6 || math.Abs(ly-7) > 1e-6 {
		t.Errorf("round trip = (%v, %v), want (3, 7)", lx, ly)
	}
}

func TestChildAt(t *testing.T) {
	root := NewGroupNode("root")
	a, b := NewGroupNode("a"), NewGroupNode("b")
	root.AddChild(a)
	root.AddChildAt(b, 0)
	if root.ChildAt(0) != b || root.ChildAt(1) != a {
		t.Errorf("children = %s, %s; want b, a", root.ChildAt(0).Name, root.ChildAt(1).Name)
	}
	expectPanic(t, "past end", func() { root.ChildAt(2) })
	expectPanic(t, "negative", func() { root.ChildAt(-1) })
}
