package tabula

import "testing"

func TestInjectClickQueuesPressAndRelease(t *testing.T) {
	tok := NewToken("tok", 0, 0, 100, 100, nil)
	s := newTestScene(t, tok)
	clicked := 0
	tok.OnMouseClicked = func(MouseEvent) { clicked++ }

	s.InjectClick(50, 50)
	if s.PendingInput() != 2 {
		t.Fatalf("PendingInput = %d, want 2", s.PendingInput())
	}
	s.Tick(0)
	if s.PendingInput() != 1 || clicked != 0 {
		t.Fatalf("after press: pending %d, clicked %d", s.PendingInput(), clicked)
	}
	s.Tick(0)
	if s.PendingInput() != 0 || clicked != 1 {
		t.Fatalf("after release: pending %d, clicked %d", s.PendingInput(), clicked)
	}
}

func TestInjectDragFrames(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		want   int
	}{
		{"minimum", 0, 2},
		{"two", 2, 2},
		{"with moves", 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t)
			s.InjectDrag(0, 0, 100, 0, tt.frames)
			if s.PendingInput() != tt.want {
				t.Errorf("PendingInput = %d, want %d", s.PendingInput(), tt.want)
			}
		})
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	s := newTestScene(t)
	s.InjectDrag(0, 0, 40, 20, 5)
	q := s.injectQueue
	if !q[0].pressed || q[len(q)-1].pressed {
		t.Fatal("drag should start pressed and end released")
	}
	wantX := []float64{0, 10, 20, 30, 40}
	for i, ev := range q {
		assertNear(t, "x", ev.x, wantX[i])
		assertNear(t, "y", ev.y, wantX[i]/2)
	}
}

func TestProcessInjectedInputEmptyQueue(t *testing.T) {
	s := newTestScene(t)
	if s.processInjectedInput() {
		t.Error("empty queue reported an event")
	}
}

func TestInjectThroughViewTransform(t *testing.T) {
	tok := NewToken("tok", 100, 100, 50, 50, nil)
	s := newTestScene(t, tok)
	s.Layout(400, 300) // content scaled by 0.5

	var got MouseEvent
	tok.OnMouseClicked = func(ev MouseEvent) { got = ev }
	s.InjectClick(60, 60)
	tickN(s, 2, 0)

	assertNear(t, "scene x", got.X, 120)
	assertNear(t, "scene y", got.Y, 120)
	assertNear(t, "local x", got.LocalX, 20)
}
