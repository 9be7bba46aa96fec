package tabula

import (
	"fmt"
	"slices"
)

// dragSnapshot is captured when a drag starts and never changes.
type dragSnapshot struct {
	component Component
	node      *RenderNode
	// mouseStart is the pointer position in scene coordinates.
	mouseStart Vec2
	// start is the component position in the drag layer frame.
	start Vec2
	// rotation is the cumulative rotation of the former ancestors.
	rotation float64
	rollback func() error
}

// dragState is the scene's single drag slot.
type dragState struct {
	dragSnapshot
	// over holds the drop candidates that received OnDragGestureEntered.
	over []Component
}

// DraggedComponent returns the component being dragged, or nil.
func (s *Scene) DraggedComponent() Component {
	if s.drag == nil {
		return nil
	}
	return s.drag.component
}

// IsDragging reports whether a drag is in flight.
func (s *Scene) IsDragging() bool {
	return s.drag != nil
}

// BeginDrag starts dragging c with the pointer at scene point (x, y).
//
// c is detached from its parent and reparented into a drag layer rotated by
// the cumulative rotation of its former ancestors, so it keeps its on-screen
// placement. A rollback closure restoring its position, rotation and
// structural place is captured now and used if the drop is rejected.
//
// BeginDrag fails with ErrDragInProgress while another drag is active (the
// active drag is not affected), ErrSceneLocked when the scene is locked,
// ErrNotDraggable when c is not draggable and ErrNotInScene when c is not
// rendered by this scene.
func (s *Scene) BeginDrag(c Component, x, y float64) error {
	if s.drag != nil {
		return ErrDragInProgress
	}
	if s.IsLocked() {
		return ErrSceneLocked
	}
	if c == nil || !c.Base().Draggable {
		return ErrNotDraggable
	}
	nb := s.nodes[c]
	if nb == nil || s.rootOf(c).Base().scene != s {
		return fmt.Errorf("%w: %s", ErrNotInScene, componentName(c))
	}

	b := c.Base()
	rotation := 0.0
	for _, a := range b.Ancestors() {
		rotation += a.Base().Rotation.Get()
	}

	// Parent frame origin in scene space, expressed in the rotated drag
	// layer frame, plus the node's offset inside that frame.
	updateWorldTransform(s.root, identityAffine, 1, false)
	var origin Vec2
	if parent := nb.node.Parent; parent != nil {
		origin.X, origin.Y = parent.LocalToWorld(0, 0)
	}
	start := origin.Rotate(-rotation).Add(Vec2{nb.node.X, nb.node.Y})

	rollback, err := s.captureRollback(c)
	if err != nil {
		return err
	}

	s.drag = &dragState{dragSnapshot: dragSnapshot{
		component:  c,
		node:       nb.node,
		mouseStart: Vec2{x, y},
		start:      start,
		rotation:   rotation,
		rollback:   rollback,
	}}

	b.RemoveFromParent()
	s.dragLayer.SetRotation(rotation)
	s.dragLayer.AddChild(nb.node)
	b.SetPosition(start.X, start.Y)

	s.logger.Debug("drag begin", "component", b.Name, "x", x, "y", y, "rotation", rotation)
	if b.OnDragGestureStarted != nil {
		b.OnDragGestureStarted(DragEvent{Dragged: c, X: x, Y: y})
	}
	s.emit(InteractionEvent{Type: EventDragStart, Component: c, X: x, Y: y})
	return nil
}

// rootOf returns the outermost ancestor of c, or c itself.
func (s *Scene) rootOf(c Component) Component {
	for c.Base().parent != nil {
		c = c.Base().parent
	}
	return c
}

// captureRollback builds the closure that puts c back where it is now.
func (s *Scene) captureRollback(c Component) (func() error, error) {
	b := c.Base()
	x, y, rot := b.X.Get(), b.Y.Get(), b.Rotation.Get()
	restore := func() {
		b.SetPosition(x, y)
		b.Rotation.Set(rot)
	}

	switch p := b.parent.(type) {
	case nil:
		index := s.rootIndex(c)
		return func() error {
			restore()
			s.insertRoot(c, min(index, len(s.components.Get())))
			return nil
		}, nil
	case containerComponent:
		cb := p.containerBase()
		index := cb.IndexOf(c)
		return func() error {
			if n := cb.Len(); index > n {
				return fmt.Errorf("%w: %s index %d exceeds %d children of %s",
					ErrConcurrentModification, componentName(c), index, n, componentName(p))
			}
			restore()
			cb.AddAt(c, index)
			return nil
		}, nil
	case *Grid:
		col, row, ok := p.CellOf(c)
		if !ok {
			return nil, fmt.Errorf("%w: %s not found in grid %s",
				ErrConcurrentModification, componentName(c), componentName(p))
		}
		return func() error {
			if !p.InBounds(col, row) {
				return fmt.Errorf("%w: cell (%d, %d) no longer exists in grid %s",
					ErrConcurrentModification, col, row, componentName(p))
			}
			if other := p.Get(col, row); other != nil && other != c {
				return fmt.Errorf("%w: cell (%d, %d) of grid %s is occupied by %s",
					ErrConcurrentModification, col, row, componentName(p), componentName(other))
			}
			restore()
			p.Set(col, row, c)
			return nil
		}, nil
	default:
		return nil, structuralRole(p, "drag source parent")
	}
}

// MoveDrag moves the dragged component so it follows the pointer at scene
// point (x, y) and retargets drop candidates. The pointer delta is rotated
// by the negative cumulative ancestor rotation before being applied.
func (s *Scene) MoveDrag(x, y float64) error {
	d := s.drag
	if d == nil {
		return ErrNoDrag
	}
	b := d.component.Base()
	delta := Vec2{x - d.mouseStart.X, y - d.mouseStart.Y}.Rotate(-d.rotation)
	pos := d.start.Add(delta)
	b.SetPosition(pos.X, pos.Y)

	next := s.DropTargetsAt(x, y)
	ev := DragEvent{Dragged: d.component, X: x, Y: y}
	for _, t := range d.over {
		if !slices.Contains(next, t) {
			s.fireExited(t, ev)
		}
	}
	for _, t := range next {
		if !slices.Contains(d.over, t) {
			if cb := t.Base().OnDragGestureEntered; cb != nil {
				cb(ev)
			}
			s.emit(InteractionEvent{Type: EventDragEntered, Component: d.component, Target: t, X: x, Y: y})
		}
	}
	d.over = next

	if b.OnDragGestureMoved != nil {
		b.OnDragGestureMoved(ev)
	}
	s.emit(InteractionEvent{Type: EventDrag, Component: d.component, X: x, Y: y})
	return nil
}

func (s *Scene) fireExited(t Component, ev DragEvent) {
	if cb := t.Base().OnDragGestureExited; cb != nil {
		cb(ev)
	}
	s.emit(InteractionEvent{Type: EventDragExited, Component: ev.Dragged, Target: t, X: ev.X, Y: ev.Y})
}

// EndDrag releases the dragged component at scene point (x, y).
//
// Every candidate under the pointer whose DropAcceptor returns true
// receives OnDragDropped, after the dragged component's OnDragGestureEnded
// reports success. Without an acceptor the rollback closure restores the
// component and OnDragGestureEnded reports failure. The drag slot is empty
// before any callback runs.
//
// A dragged component still detached after the drop callbacks is released
// from the scene map. EndDrag returns ErrConcurrentModification when the
// rollback target was invalidated during the drag.
func (s *Scene) EndDrag(x, y float64) error {
	d := s.drag
	if d == nil {
		return ErrNoDrag
	}
	targets := s.DropTargetsAt(x, y)
	s.drag = nil

	c := d.component
	b := c.Base()
	ev := DragEvent{Dragged: c, X: x, Y: y}
	for _, t := range d.over {
		s.fireExited(t, ev)
	}

	var accepted []Component
	for _, t := range targets {
		if accept := t.Base().DropAcceptor; accept != nil && accept(ev) {
			accepted = append(accepted, t)
		}
	}
	if len(accepted) == 0 {
		return s.rollbackDrag(d, x, y)
	}

	s.logger.Debug("drag drop", "component", b.Name, "acceptors", len(accepted))
	s.emit(InteractionEvent{Type: EventDragEnd, Component: c, X: x, Y: y, Success: true})
	if b.OnDragGestureEnded != nil {
		b.OnDragGestureEnded(DropEvent{Dragged: c, Targets: accepted, X: x, Y: y}, true)
	}
	for _, t := range accepted {
		if cb := t.Base().OnDragDropped; cb != nil {
			cb(ev)
		}
		s.emit(InteractionEvent{Type: EventDrop, Component: c, Target: t, X: x, Y: y, Success: true})
	}
	s.settleDragged(d)
	return nil
}

// CancelDrag rolls the dragged component back without evaluating drop
// acceptors. Locking the scene cancels an active drag.
func (s *Scene) CancelDrag() error {
	d := s.drag
	if d == nil {
		return ErrNoDrag
	}
	s.drag = nil
	ev := DragEvent{Dragged: d.component, X: d.mouseStart.X, Y: d.mouseStart.Y}
	for _, t := range d.over {
		s.fireExited(t, ev)
	}
	s.logger.Debug("drag cancel", "component", d.component.Base().Name)
	return s.rollbackDrag(d, d.mouseStart.X, d.mouseStart.Y)
}

func (s *Scene) rollbackDrag(d *dragState, x, y float64) error {
	c := d.component
	b := c.Base()
	if err := d.rollback(); err != nil {
		s.settleDragged(d)
		s.logger.Error("drag rollback", "component", b.Name, "err", err)
		return err
	}
	s.settleDragged(d)
	s.logger.Debug("drag rollback", "component", b.Name)
	s.emit(InteractionEvent{Type: EventDragRollback, Component: c, X: x, Y: y})
	s.emit(InteractionEvent{Type: EventDragEnd, Component: c, X: x, Y: y})
	if b.OnDragGestureEnded != nil {
		b.OnDragGestureEnded(DropEvent{Dragged: c, X: x, Y: y}, false)
	}
	return nil
}

// settleDragged releases the drag layer. A component whose node is still
// in the drag layer found no rendered home and leaves the scene map.
func (s *Scene) settleDragged(d *dragState) {
	if d.node.Parent == s.dragLayer {
		s.discard(d.component)
	}
	s.dragLayer.SetRotation(0)
}
