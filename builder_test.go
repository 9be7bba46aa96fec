package tabula

import (
	"errors"
	"testing"
)

func newTestScene(t *testing.T, cs ...Component) *Scene {
	t.Helper()
	s := NewScene(800, 600)
	s.window = &fakeWindow{}
	if err := s.AddComponents(cs...); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBuildStructure(t *testing.T) {
	s := NewScene(800, 600)
	tok := NewToken("tok", 10, 20, 30, 40, ColorVisual{Color: ColorWhite})

	node, err := Build(s, tok)
	if err != nil {
		t.Fatal(err)
	}
	if node.Name != "tok" || node.NumChildren() != 2 {
		t.Fatalf("composite = %q with %d children", node.Name, node.NumChildren())
	}
	bg, content := node.ChildAt(0), node.ChildAt(1)
	if bg.Type != NodeTypeVisual || bg.Visual != Visual(ColorVisual{Color: ColorWhite}) {
		t.Error("background does not paint the component visual")
	}
	if content.Type != NodeTypeGroup {
		t.Error("piece content should be a group")
	}
	assertNear(t, "x", node.X, 10)
	assertNear(t, "y", node.Y, 20)
	assertNear(t, "width", node.Width, 30)
	assertNear(t, "bg height", bg.Height, 40)

	if s.NodeOf(tok) != node || s.ComponentOf(bg) != Component(tok) {
		t.Error("scene map not updated")
	}
	again, _ := Build(s, tok)
	if again != node {
		t.Error("Build of a bound component should return its node")
	}
}

func TestBuildRejectsForeignVariant(t *testing.T) {
	s := NewScene(800, 600)
	f := newForeign("f")
	_, err := Build(s, f)
	var sre *StructuralRoleError
	if !errors.As(err, &sre) || sre.Component != Component(f) {
		t.Fatalf("err = %v, want *StructuralRoleError", err)
	}
	if s.NumBound() != 0 {
		t.Errorf("NumBound = %d after failed build", s.NumBound())
	}
	if err := s.AddComponents(NewToken("ok", 0, 0, 1, 1, nil), f); !errors.Is(err, ErrIllegalStructuralRole) {
		t.Errorf("AddComponents err = %v", err)
	}
	if len(s.Components()) != 0 {
		t.Error("AddComponents added components despite the error")
	}
}

func TestBuildObservers(t *testing.T) {
	tok := NewToken("tok", 0, 0, 10, 10, nil)
	s := newTestScene(t, tok)
	node := s.NodeOf(tok)

	tok.SetPosition(5, 6)
	tok.SetSize(20, 30)
	tok.Rotation.Set(45)
	tok.SetScale(2, 3)
	tok.Opacity.Set(0.5)
	tok.Visible.Set(false)
	tok.Disabled.Set(true)
	tok.Visual.Set(ColorVisual{Color: Color{1, 0, 0, 1}})

	assertNear(t, "x", node.X, 5)
	assertNear(t, "y", node.Y, 6)
	assertNear(t, "width", node.Width, 20)
	assertNear(t, "height", node.Height, 30)
	assertNear(t, "pivotX", node.PivotX, 10)
	assertNear(t, "rotation", node.Rotation, 45)
	assertNear(t, "scaleX", node.ScaleX, 2)
	assertNear(t, "scaleY", node.ScaleY, 3)
	assertNear(t, "alpha", node.Alpha, 0.5)
	if node.Visible || !node.Disabled {
		t.Error("visible/disabled not mirrored")
	}
	if node.ChildAt(0).Visual != Visual(ColorVisual{Color: Color{1, 0, 0, 1}}) {
		t.Error("visual not mirrored")
	}
}

func TestBuildWidget(t *testing.T) {
	lbl := NewLabel("lbl", 0, 0, 100, 20, "hello")
	tb := NewToggleButton("tb", 0, 30, 100, 20, "on", nil)
	s := newTestScene(t, lbl, tb)

	text := s.NodeOf(lbl).ChildAt(1)
	tv, ok := text.Visual.(TextVisual)
	if !ok || tv.Text != "hello" || tv.Size != DefaultFont.Size {
		t.Fatalf("text visual = %#v", text.Visual)
	}
	lbl.Text.Set("bye")
	lbl.TextColor.Set(Color{1, 0, 0, 1})
	lbl.Font.Set(Font{Size: 24})
	tv = text.Visual.(TextVisual)
	if tv.Text != "bye" || tv.Color != (Color{1, 0, 0, 1}) || tv.Size != 24 {
		t.Errorf("text visual after update = %#v", tv)
	}

	tbNode := s.NodeOf(tb)
	if tbNode.NumChildren() != 3 {
		t.Fatalf("toggle button has %d nodes, want 3", tbNode.NumChildren())
	}
	overlay := tbNode.ChildAt(2)
	if overlay.Visible {
		t.Error("overlay visible while unselected")
	}
	tb.Selected.Set(true)
	if !overlay.Visible {
		t.Error("overlay hidden while selected")
	}
}

func TestRebuildReusesUntouchedNodes(t *testing.T) {
	a := NewArea("a", 0, 0, 500, 100, nil)
	var kids []*Token
	for i := range 5 {
		k := NewToken(string(rune('a'+i)), float64(i*20), 0, 10, 10, nil)
		kids = append(kids, k)
		a.Add(k)
	}
	s := newTestScene(t, a)
	before := make(map[*Token]*RenderNode)
	for _, k := range kids {
		before[k] = s.NodeOf(k)
	}
	bound := s.NumBound()

	removed := kids[2]
	removedNode := before[removed]
	a.Remove(removed)

	if got := s.NumBound(); got != bound-1 {
		t.Errorf("NumBound = %d, want %d", got, bound-1)
	}
	if s.NodeOf(removed) != nil {
		t.Error("removed child still mapped")
	}
	if !removedNode.IsDisposed() {
		t.Error("removed child's node not disposed")
	}
	content := s.NodeOf(a).ChildAt(1)
	if content.NumChildren() != 4 {
		t.Fatalf("content has %d children", content.NumChildren())
	}
	i := 0
	for _, k := range kids {
		if k == removed {
			continue
		}
		if s.NodeOf(k) != before[k] {
			t.Errorf("%s was rebuilt", k.Name)
		}
		if content.ChildAt(i) != before[k] {
			t.Errorf("child %d out of order", i)
		}
		i++
	}

	// The removed component's observers were released.
	removed.SetPosition(99, 99)
	if removedNode.X == 99 {
		t.Error("released binding still updates the old node")
	}
}

func TestRebuildNestedDiscard(t *testing.T) {
	outer := NewArea("outer", 0, 0, 100, 100, nil)
	inner := NewPane("inner", 0, 0, 50, 50, nil)
	leaf := NewToken("leaf", 0, 0, 10, 10, nil)
	inner.Add(leaf)
	outer.Add(inner)
	s := newTestScene(t, outer)
	if s.NumBound() != 3 {
		t.Fatalf("NumBound = %d", s.NumBound())
	}
	outer.Remove(inner)
	if s.NumBound() != 1 || s.NodeOf(leaf) != nil {
		t.Errorf("nested components still mapped: %d", s.NumBound())
	}
}

func TestReparentBuildsNewNode(t *testing.T) {
	a := NewArea("a", 0, 0, 100, 100, nil)
	b := NewArea("b", 200, 0, 100, 100, nil)
	tok := NewToken("tok", 5, 5, 10, 10, nil)
	a.Add(tok)
	s := newTestScene(t, a, b)
	old := s.NodeOf(tok)

	b.Add(tok)
	node := s.NodeOf(tok)
	if node == nil || node == old {
		t.Fatal("moved component should get a fresh node")
	}
	if node.Parent != s.NodeOf(b).ChildAt(1) {
		t.Error("fresh node not under b's content")
	}
}

func TestGridChildPlacement(t *testing.T) {
	g := NewGrid("g", 10, 10, 2, 1, nil)
	g.SetSpacing(4)
	a := NewToken("a", 0, 0, 20, 10, nil)
	b := NewToken("b", 0, 0, 30, 30, nil)
	g.Set(0, 0, a)
	g.Set(1, 0, b)
	s := newTestScene(t, g)

	assertNear(t, "grid width", g.Width.Get(), 54)
	assertNear(t, "grid height", g.Height.Get(), 30)
	assertNear(t, "grid node width", s.NodeOf(g).Width, 54)
	// a is centered vertically in a 30 high row.
	assertNear(t, "a.y", s.NodeOf(a).Y, 10)
	assertNear(t, "b.x", s.NodeOf(b).X, 24)

	// Growing a child relayouts the grid.
	a.SetSize(40, 10)
	assertNear(t, "grid width after", g.Width.Get(), 74)
	assertNear(t, "b.x after", s.NodeOf(b).X, 44)

	// Spec changes relayout too.
	g.SetCellAlignment(0, 0, AlignTopLeft)
	assertNear(t, "a.y top", s.NodeOf(a).Y, 0)
}

func TestGridSizeWrittenSilently(t *testing.T) {
	g := NewGrid("g", 0, 0, 1, 1, nil)
	s := newTestScene(t, g)
	calls := 0
	g.Width.OnChange(func(_, _ float64) { calls++ })
	g.Set(0, 0, NewToken("t", 0, 0, 25, 25, nil))
	if calls != 0 {
		t.Errorf("grid width listeners fired %d times", calls)
	}
	assertNear(t, "width", g.Width.Get(), 25)
	_ = s
}

func TestRemoveComponentsDiscards(t *testing.T) {
	a := NewToken("a", 0, 0, 10, 10, nil)
	b := NewToken("b", 0, 0, 10, 10, nil)
	s := newTestScene(t, a, b)
	s.RemoveComponents(a)
	if s.NodeOf(a) != nil || s.NodeOf(b) == nil {
		t.Error("RemoveComponents discarded the wrong component")
	}
	if a.Scene() != nil {
		t.Error("removed root keeps its scene")
	}
	s.ClearComponents()
	if s.NumBound() != 0 || s.rootLayer.NumChildren() != 0 {
		t.Error("ClearComponents left nodes behind")
	}
}
