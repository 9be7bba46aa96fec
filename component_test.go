package tabula

import (
	"errors"
	"slices"
	"testing"
)

// foreignComponent is a component variant the builder does not know.
type foreignComponent struct {
	ComponentBase
}

func newForeign(name string) *foreignComponent {
	f := &foreignComponent{}
	f.init(f, name, 0, 0, 10, 10, nil)
	return f
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// --- Containers ---

func TestContainerAddRemove(t *testing.T) {
	a := NewArea("a", 0, 0, 100, 100, nil)
	x := NewToken("x", 0, 0, 10, 10, nil)
	y := NewToken("y", 0, 0, 10, 10, nil)
	z := NewToken("z", 0, 0, 10, 10, nil)

	a.Add(x, y)
	a.AddAt(z, 1)
	if got := a.Children.Get(); !slices.Equal(got, []Component{x, z, y}) {
		t.Fatalf("children = %v", got)
	}
	if z.Parent() != Component(a) {
		t.Error("z.Parent() should be a")
	}
	if a.IndexOf(y) != 2 || !a.Contains(z) || a.Len() != 3 {
		t.Error("IndexOf/Contains/Len mismatch")
	}

	if !a.Remove(z) {
		t.Fatal("Remove(z) = false")
	}
	if a.Remove(z) {
		t.Error("second Remove(z) = true")
	}
	if z.Parent() != nil {
		t.Error("removed child keeps its parent")
	}

	a.Clear()
	if a.Len() != 0 || x.Parent() != nil || y.Parent() != nil {
		t.Error("Clear left children attached")
	}
}

func TestContainerChildListIsReplaced(t *testing.T) {
	a := NewArea("a", 0, 0, 100, 100, nil)
	x := NewToken("x", 0, 0, 10, 10, nil)
	var old, next []Component
	a.Children.OnChange(func(o, n []Component) { old, next = o, n })
	a.Add(x)
	if len(old) != 0 || len(next) != 1 {
		t.Errorf("listener saw old=%v next=%v", old, next)
	}
}

func TestContainerReparent(t *testing.T) {
	a := NewArea("a", 0, 0, 100, 100, nil)
	b := NewPane("b", 0, 0, 100, 100, nil)
	x := NewToken("x", 0, 0, 10, 10, nil)

	a.Add(x)
	b.Add(x)
	if a.Contains(x) {
		t.Error("x still in a after moving to b")
	}
	if x.Parent() != Component(b) {
		t.Error("x.Parent() should be b")
	}
}

func TestContainerMoveWithinSameParent(t *testing.T) {
	a := NewArea("a", 0, 0, 100, 100, nil)
	x := NewToken("x", 0, 0, 10, 10, nil)
	y := NewToken("y", 0, 0, 10, 10, nil)
	z := NewToken("z", 0, 0, 10, 10, nil)
	a.Add(x, y, z)

	a.AddAt(x, 2)
	if got := a.Children.Get(); !slices.Equal(got, []Component{y, z, x}) {
		t.Errorf("children = %v", got)
	}
}

func TestContainerAddPanics(t *testing.T) {
	outer := NewArea("outer", 0, 0, 100, 100, nil)
	inner := NewArea("inner", 0, 0, 50, 50, nil)
	outer.Add(inner)

	expectPanic(t, "nil child", func() { outer.Add(nil) })
	expectPanic(t, "cycle", func() { inner.Add(outer) })
	expectPanic(t, "self", func() { inner.Add(inner) })
	expectPanic(t, "index", func() { outer.AddAt(NewToken("t", 0, 0, 1, 1, nil), 5) })
}

func TestContainerRejectsForeignVariant(t *testing.T) {
	a := NewArea("a", 0, 0, 100, 100, nil)
	f := newForeign("f")
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value = %v, want error", r)
		}
		var sre *StructuralRoleError
		if !errors.As(err, &sre) || sre.Component != Component(f) {
			t.Errorf("panic = %v, want *StructuralRoleError for f", err)
		}
		if !errors.Is(err, ErrIllegalStructuralRole) {
			t.Error("error does not unwrap to ErrIllegalStructuralRole")
		}
	}()
	a.Add(f)
}

func TestRemoveFromParent(t *testing.T) {
	s := NewScene(100, 100)
	a := NewArea("a", 0, 0, 100, 100, nil)
	g := NewGrid("g", 0, 0, 2, 2, nil)
	x := NewToken("x", 0, 0, 10, 10, nil)
	y := NewToken("y", 0, 0, 10, 10, nil)
	a.Add(x)
	g.Set(1, 1, y)
	if err := s.AddComponents(a, g); err != nil {
		t.Fatal(err)
	}

	x.RemoveFromParent()
	y.RemoveFromParent()
	g.RemoveFromParent()
	x.RemoveFromParent() // no-op

	if a.Contains(x) || g.Get(1, 1) != nil {
		t.Error("children still attached")
	}
	if got := s.Components(); !slices.Equal(got, []Component{a}) {
		t.Errorf("root components = %v", got)
	}
	if g.Attached() {
		t.Error("g still attached")
	}
}

func TestAncestors(t *testing.T) {
	outer := NewArea("outer", 0, 0, 100, 100, nil)
	g := NewGrid("g", 0, 0, 1, 1, nil)
	x := NewToken("x", 0, 0, 10, 10, nil)
	outer.Add(g)
	g.Set(0, 0, x)

	if got := x.Ancestors(); !slices.Equal(got, []Component{g, outer}) {
		t.Errorf("Ancestors = %v", got)
	}
	if x.Self() != Component(x) {
		t.Error("Self should return the variant")
	}
}

// --- Grid ---

func TestGridSetGetRemove(t *testing.T) {
	g := NewGrid("g", 0, 0, 3, 2, nil)
	if g.Columns() != 3 || g.Rows() != 2 {
		t.Fatalf("dims = %dx%d", g.Columns(), g.Rows())
	}
	x := NewToken("x", 0, 0, 10, 10, nil)
	y := NewToken("y", 0, 0, 10, 10, nil)

	g.Set(2, 1, x)
	if g.Get(2, 1) != Component(x) || x.Parent() != Component(g) {
		t.Fatal("Set did not place x")
	}
	col, row, ok := g.CellOf(x)
	if !ok || col != 2 || row != 1 {
		t.Errorf("CellOf = (%d, %d, %v)", col, row, ok)
	}

	// Moving x to another cell empties the old one.
	g.Set(0, 0, x)
	if g.Get(2, 1) != nil || g.Get(0, 0) != Component(x) {
		t.Error("move within grid failed")
	}

	// Replacing detaches the previous occupant.
	g.Set(0, 0, y)
	if x.Parent() != nil {
		t.Error("replaced component keeps its parent")
	}

	if got := g.Remove(0, 0); got != Component(y) {
		t.Errorf("Remove = %v", got)
	}
	if g.Remove(0, 0) != nil {
		t.Error("Remove on empty cell should return nil")
	}
	if len(g.Occupied()) != 0 {
		t.Error("grid should be empty")
	}
}

func TestGridOccupiedOrder(t *testing.T) {
	g := NewGrid("g", 0, 0, 2, 2, nil)
	a := NewToken("a", 0, 0, 1, 1, nil)
	b := NewToken("b", 0, 0, 1, 1, nil)
	c := NewToken("c", 0, 0, 1, 1, nil)
	g.Set(1, 0, c)
	g.Set(0, 1, b)
	g.Set(0, 0, a)
	if got := g.Children(); !slices.Equal(got, []Component{a, b, c}) {
		t.Errorf("Children = %v, want column-major a b c", got)
	}
}

func TestGridResize(t *testing.T) {
	g := NewGrid("g", 0, 0, 2, 2, nil)
	keep := NewToken("keep", 0, 0, 1, 1, nil)
	drop := NewToken("drop", 0, 0, 1, 1, nil)
	g.SetColumnWidth(0, 40)
	g.Set(0, 0, keep)
	g.Set(1, 1, drop)

	g.Resize(1, 3)
	if g.Columns() != 1 || g.Rows() != 3 {
		t.Fatalf("dims = %dx%d", g.Columns(), g.Rows())
	}
	if g.Get(0, 0) != Component(keep) {
		t.Error("kept cell lost its component")
	}
	if drop.Parent() != nil {
		t.Error("component in a dropped cell is still attached")
	}
	spec := g.Spec.Get()
	if spec.ColumnWidths[0] != 40 || spec.RowHeights[2] != Auto {
		t.Errorf("spec = %+v", spec)
	}
	if spec.CellAlignment[0][2] != AlignCenter {
		t.Error("new cells should be centered")
	}
}

func TestGridPanics(t *testing.T) {
	g := NewGrid("g", 0, 0, 1, 1, nil)
	expectPanic(t, "out of range get", func() { g.Get(1, 0) })
	expectPanic(t, "out of range set", func() { g.Set(0, -1, NewToken("t", 0, 0, 1, 1, nil)) })
	expectPanic(t, "negative dims", func() { NewGrid("bad", 0, 0, -1, 1, nil) })
	expectPanic(t, "column width out of range", func() { g.SetColumnWidth(1, 10) })
	expectPanic(t, "negative column", func() { g.SetColumnWidth(-1, 10) })
	expectPanic(t, "row height out of range", func() { g.SetRowHeight(2, 10) })
	expectPanic(t, "foreign variant", func() { g.Set(0, 0, newForeign("f")) })

	outer := NewArea("outer", 0, 0, 10, 10, nil)
	outer.Add(g)
	expectPanic(t, "cycle", func() { g.Set(0, 0, outer) })
}

func TestGridSpecIsCopied(t *testing.T) {
	g := NewGrid("g", 0, 0, 1, 1, nil)
	before := g.Spec.Get()
	g.SetColumnWidth(0, 25)
	if before.ColumnWidths[0] != Auto {
		t.Error("SetColumnWidth mutated the previous spec value")
	}
}

// --- Pieces ---

func TestCardSideDrivesVisual(t *testing.T) {
	front := ColorVisual{Color: ColorWhite}
	back := ColorVisual{Color: Color{0, 0, 1, 1}}
	c := NewCard("c", 0, 0, 10, 10, front, back)

	if c.Side.Get() != CardBack || c.Visual.Get() != Visual(back) {
		t.Fatal("new card should show its back")
	}
	c.Flip()
	if c.Side.Get() != CardFront || c.Visual.Get() != Visual(front) {
		t.Error("Flip should show the front")
	}
	c.ShowBack()
	if c.Visual.Get() != Visual(back) {
		t.Error("ShowBack should show the back")
	}
}

func TestDiceSideDrivesVisual(t *testing.T) {
	sides := []Visual{ColorVisual{Color: Color{1, 0, 0, 1}}, ColorVisual{Color: Color{0, 1, 0, 1}}}
	d := NewDice("d", 0, 0, 10, 10, sides)
	if d.Visual.Get() != sides[0] {
		t.Fatal("new dice should show side 0")
	}
	d.Side.Set(1)
	if d.Visual.Get() != sides[1] {
		t.Error("side 1 visual not shown")
	}
	d.Side.Set(7) // out of range keeps the current visual
	if d.Visual.Get() != sides[1] {
		t.Error("out-of-range side changed the visual")
	}
}

func TestComponentIDsAreUnique(t *testing.T) {
	a := NewToken("a", 0, 0, 1, 1, nil)
	b := NewToken("b", 0, 0, 1, 1, nil)
	if a.ID == b.ID {
		t.Error("components share an ID")
	}
}
