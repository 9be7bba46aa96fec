package tabula

// pointerFrame is one frame of synthetic pointer state in screen
// coordinates. It runs through the view transform and the pointer state
// machine exactly like real mouse input.
type pointerFrame struct {
	x, y    float64
	pressed bool
}

func (s *Scene) queuePointer(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, pointerFrame{x: x, y: y, pressed: pressed})
}

// InjectPress queues a left button press at screen (x, y). Each queued
// frame is consumed by one Update or Tick, in place of real mouse input.
func (s *Scene) InjectPress(x, y float64) { s.queuePointer(x, y, true) }

// InjectMove queues a move to screen (x, y) with the button still held.
func (s *Scene) InjectMove(x, y float64) { s.queuePointer(x, y, true) }

// InjectRelease queues a release at screen (x, y).
func (s *Scene) InjectRelease(x, y float64) { s.queuePointer(x, y, false) }

// InjectClick queues a press and a release at the same point.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 evenly spaced moves
// and a release at (toX, toY), frames frames in total. Fewer than two
// frames are raised to two.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	s.InjectPress(fromX, fromY)
	for i := 1; i < frames-1; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// PendingInput returns the number of queued synthetic frames.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput feeds the oldest queued frame to the pointer state
// machine and reports whether there was one.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	f := s.injectQueue[0]
	s.injectQueue = s.injectQueue[1:]
	if len(s.injectQueue) == 0 {
		s.injectQueue = nil
	}

	s.updateView()
	updateWorldTransform(s.root, identityAffine, 1, false)
	x, y := s.ScreenToScene(f.x, f.y)
	s.processPointer(x, y, f.pressed, MouseButtonLeft, 0)
	return true
}
