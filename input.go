package tabula

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const defaultDragDeadZone = 4.0 // pixels

// pointerState tracks the mouse between frames.
type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *RenderNode
	hoverNode *RenderNode
	dragging  bool
	button    MouseButton // button captured at press time
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's bounds.
func nodeContainsLocal(n *RenderNode, lx, ly float64) bool {
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order, appending the
// composite node of every component. Skips Visible=false or
// Interactable=false subtrees.
func (s *Scene) collectInteractable(n *RenderNode, buf []*RenderNode) []*RenderNode {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if _, ok := s.owners[n]; ok {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost component node at scene point (x, y). The drag
// layer is not hit-tested.
func (s *Scene) hitTest(x, y float64) *RenderNode {
	s.hitBuf = s.collectInteractable(s.rootLayer, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput reads mouse, wheel and keyboard state from Ebitengine and
// dispatches it. Screen positions are converted to scene coordinates
// through the view transform.
func (s *Scene) processInput() {
	s.updateView()
	updateWorldTransform(s.root, identityAffine, 1, false)
	mods := readModifiers()

	mx, my := ebiten.CursorPosition()
	x, y := s.ScreenToScene(float64(mx), float64(my))

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	s.processPointer(x, y, pressed, button, mods)

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		s.fireScroll(x, y, dx, dy)
	}

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.fireKey(k, mods)
	}
}

// processPointer runs the pointer state machine: press, then either a click
// on release over the pressed node or, once the pointer leaves the dead
// zone, drag start, drag and drag end on the pressed node.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	target := s.hitTest(x, y)
	ps.hoverNode = target

	at := func(n *RenderNode) PointerContext {
		lx, ly := n.WorldToLocal(x, y)
		return PointerContext{Node: n, SceneX: x, SceneY: y, LocalX: lx, LocalY: ly, Button: ps.button, Modifiers: mods}
	}
	dragAt := func(n *RenderNode) DragContext {
		return DragContext{
			PointerContext: at(n),
			StartX:         ps.startX,
			StartY:         ps.startY,
			DeltaX:         x - ps.lastX,
			DeltaY:         y - ps.lastY,
		}
	}

	switch {
	case pressed && !ps.down:
		ps.down, ps.dragging = true, false
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = target
		if live(target) && target.OnPointerDown != nil {
			target.OnPointerDown(at(target))
		}

	case !pressed && ps.down:
		switch hit := ps.hitNode; {
		case ps.dragging:
			if live(hit) && hit.OnDragEnd != nil {
				hit.OnDragEnd(dragAt(hit))
			}
		case hit != nil && hit == target:
			if live(target) && target.OnClick != nil {
				target.OnClick(at(target))
			}
		}
		if live(target) && target.OnPointerUp != nil {
			target.OnPointerUp(at(target))
		}
		ps.down, ps.dragging = false, false
		ps.hitNode = nil

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		hit := ps.hitNode
		if !ps.dragging && math.Hypot(x-ps.startX, y-ps.startY) > s.dragDeadZone {
			ps.dragging = true
			if live(hit) && hit.OnDragStart != nil {
				hit.OnDragStart(dragAt(hit))
			}
		}
		if ps.dragging && live(hit) && hit.OnDrag != nil {
			hit.OnDrag(dragAt(hit))
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// live reports whether n can still receive events.
func live(n *RenderNode) bool {
	return n != nil && !n.disposed
}

// fireScroll delivers wheel movement to the component under the pointer.
func (s *Scene) fireScroll(x, y, dx, dy float64) {
	node := s.hitTest(x, y)
	if node == nil || node.OnScroll == nil {
		return
	}
	node.OnScroll(ScrollContext{Node: node, SceneX: x, SceneY: y, DeltaX: dx, DeltaY: dy})
}

// fireKey delivers a key press to the hovered component.
func (s *Scene) fireKey(k ebiten.Key, mods KeyModifiers) {
	node := s.pointer.hoverNode
	if !live(node) || node.OnKey == nil {
		return
	}
	node.OnKey(KeyContext{Node: node, Key: k, Modifiers: mods})
}
