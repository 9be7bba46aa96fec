package tabula

import (
	"slices"
	"testing"
)

func TestPropertySetDispatchOrder(t *testing.T) {
	p := NewProperty(1)
	var order []string
	p.OnChange(func(old, v int) { order = append(order, "gui1") })
	p.OnInternalChange(func(old, v int) { order = append(order, "internal1") })
	p.OnChange(func(old, v int) { order = append(order, "gui2") })
	p.OnInternalChange(func(old, v int) { order = append(order, "internal2") })

	p.Set(2)

	want := []string{"internal1", "internal2", "gui1", "gui2"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestPropertySetPassesOldAndNew(t *testing.T) {
	p := NewProperty("a")
	var gotOld, gotNew string
	p.OnChange(func(old, v string) { gotOld, gotNew = old, v })
	p.Set("b")
	if gotOld != "a" || gotNew != "b" {
		t.Errorf("listener got (%q, %q), want (a, b)", gotOld, gotNew)
	}
	if p.Get() != "b" {
		t.Errorf("Get = %q", p.Get())
	}
}

func TestPropertySetFiresOnEqualValue(t *testing.T) {
	p := NewProperty(5)
	calls := 0
	p.OnChange(func(old, v int) { calls++ })
	p.Set(5)
	p.Set(5)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestPropertySetSilent(t *testing.T) {
	p := NewProperty(1.0)
	calls := 0
	p.OnInternalChange(func(old, v float64) { calls++ })
	p.OnChange(func(old, v float64) { calls++ })
	p.SetSilent(3)
	if calls != 0 {
		t.Errorf("SetSilent notified %d listeners", calls)
	}
	if p.Get() != 3 {
		t.Errorf("Get = %v, want 3", p.Get())
	}
}

func TestSetGUIListenerAndInvoke(t *testing.T) {
	p := NewProperty(7)
	var calls [][2]int
	h := p.SetGUIListenerAndInvoke(0, func(old, v int) { calls = append(calls, [2]int{old, v}) })
	p.Set(8)
	h.Remove()
	p.Set(9)

	want := [][2]int{{0, 7}, {7, 8}}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestListenerHandleRemove(t *testing.T) {
	p := NewProperty(0)
	var a, b int
	ha := p.OnChange(func(old, v int) { a++ })
	p.OnChange(func(old, v int) { b++ })

	ha.Remove()
	ha.Remove() // second call is a no-op
	ListenerHandle{}.Remove()
	p.Set(1)

	if a != 0 || b != 1 {
		t.Errorf("a=%d b=%d, want 0 and 1", a, b)
	}
	if in, gui := p.NumListeners(); in != 0 || gui != 1 {
		t.Errorf("NumListeners = (%d, %d), want (0, 1)", in, gui)
	}
}

func TestListenerRemovalDuringDispatch(t *testing.T) {
	p := NewProperty(0)
	var order []string
	var hb ListenerHandle
	p.OnChange(func(old, v int) {
		order = append(order, "a")
		hb.Remove()
	})
	hb = p.OnChange(func(old, v int) { order = append(order, "b") })
	p.OnChange(func(old, v int) { order = append(order, "c") })

	// The running dispatch works on a snapshot; the removal shows next time.
	p.Set(1)
	p.Set(2)

	want := []string{"a", "b", "c", "a", "c"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestClearGUIListenersKeepsInternal(t *testing.T) {
	p := NewProperty(0)
	var internal, gui int
	p.OnInternalChange(func(old, v int) { internal++ })
	p.OnChange(func(old, v int) { gui++ })
	p.ClearGUIListeners()
	p.Set(1)
	if internal != 1 || gui != 0 {
		t.Errorf("internal=%d gui=%d, want 1 and 0", internal, gui)
	}
}

func TestBindingsRelease(t *testing.T) {
	p := NewProperty(0)
	var bs bindings
	calls := 0
	bs.add(p.OnChange(func(old, v int) { calls++ }))
	bs.add(p.OnChange(func(old, v int) { calls++ }))
	bs.release()
	p.Set(1)
	if calls != 0 {
		t.Errorf("released bindings still notified %d times", calls)
	}
	if len(bs) != 0 {
		t.Errorf("len(bindings) = %d after release", len(bs))
	}
}
