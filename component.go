package tabula

import (
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Component is a node of the declarative model tree.
//
// The set of variants is closed: containers (*Area, *Pane), layout grids
// (*Grid), game pieces (*Token, *Card, *Dice) and widgets (*Label, *Button,
// *ToggleButton). The scene graph builder matches on the concrete type;
// anything else, including a bare *ComponentBase, fails with
// ErrIllegalStructuralRole.
type Component interface {
	Base() *ComponentBase
	sealed()
}

// MouseEvent carries pointer data for model callbacks. Coordinates are in
// scene space; Local is relative to the component's top-left corner.
type MouseEvent struct {
	Button    MouseButton
	X, Y      float64
	LocalX    float64
	LocalY    float64
	Modifiers KeyModifiers
}

// KeyEvent carries a key press delivered to the hovered component.
type KeyEvent struct {
	Key       ebiten.Key
	Modifiers KeyModifiers
}

// ScrollEvent carries wheel movement over a component.
type ScrollEvent struct {
	DeltaX, DeltaY float64
}

// DragEvent describes the dragged component to drag hooks and drop
// acceptors. X and Y are the pointer in scene coordinates.
type DragEvent struct {
	Dragged Component
	X, Y    float64
}

// DropEvent is delivered to the dragged component when its drag ends.
// Targets lists every component that accepted the drop.
type DropEvent struct {
	Dragged Component
	Targets []Component
	X, Y    float64
}

// ComponentBase holds the state shared by every component variant.
// Variants embed it and are created through their constructors.
type ComponentBase struct {
	ID   uuid.UUID
	Name string

	// Geometry. X and Y are relative to the parent (or to the grid cell for
	// grid children). Rotation is in degrees, clockwise, around the center.
	X, Y          *Property[float64]
	Width, Height *Property[float64]
	Rotation      *Property[float64]
	ScaleX        *Property[float64]
	ScaleY        *Property[float64]
	Opacity       *Property[float64]

	Visible  *Property[bool]
	Disabled *Property[bool]
	Visual   *Property[Visual]

	Draggable bool
	UserData  any

	// Input hooks, nil by default.
	OnMouseClicked  func(MouseEvent)
	OnMousePressed  func(MouseEvent)
	OnMouseReleased func(MouseEvent)
	OnKeyPressed    func(KeyEvent)
	OnScroll        func(ScrollEvent)

	// Drag-and-drop hooks, nil by default.
	OnDragGestureStarted func(DragEvent)
	OnDragGestureMoved   func(DragEvent)
	OnDragGestureEntered func(DragEvent)
	OnDragGestureExited  func(DragEvent)
	OnDragGestureEnded   func(DropEvent, bool)
	DropAcceptor         func(DragEvent) bool
	OnDragDropped        func(DragEvent)

	self   Component
	parent Component
	scene  *Scene // set while the component sits in a scene's root list
}

// Base returns b.
func (b *ComponentBase) Base() *ComponentBase { return b }

func (b *ComponentBase) sealed() {}

// init wires the default properties. self is the outer variant value.
func (b *ComponentBase) init(self Component, name string, x, y, w, h float64, v Visual) {
	b.ID = uuid.New()
	b.Name = name
	b.X = NewProperty(x)
	b.Y = NewProperty(y)
	b.Width = NewProperty(w)
	b.Height = NewProperty(h)
	b.Rotation = NewProperty(0.0)
	b.ScaleX = NewProperty(1.0)
	b.ScaleY = NewProperty(1.0)
	b.Opacity = NewProperty(1.0)
	b.Visible = NewProperty(true)
	b.Disabled = NewProperty(false)
	b.Visual = NewProperty(v)
	b.self = self
}

// Self returns the variant value that embeds b.
func (b *ComponentBase) Self() Component {
	if b.self == nil {
		return b
	}
	return b.self
}

// Parent returns the container or grid holding this component, or nil.
// Components in a scene's root list have no parent.
func (b *ComponentBase) Parent() Component {
	return b.parent
}

// Scene returns the scene whose root list holds this component, or nil.
func (b *ComponentBase) Scene() *Scene {
	return b.scene
}

// Attached reports whether the component currently has a parent or sits in
// a scene's root list.
func (b *ComponentBase) Attached() bool {
	return b.parent != nil || b.scene != nil
}

// SetPosition sets X and Y.
func (b *ComponentBase) SetPosition(x, y float64) {
	b.X.Set(x)
	b.Y.Set(y)
}

// SetSize sets Width and Height.
func (b *ComponentBase) SetSize(w, h float64) {
	b.Width.Set(w)
	b.Height.Set(h)
}

// SetScale sets ScaleX and ScaleY.
func (b *ComponentBase) SetScale(sx, sy float64) {
	b.ScaleX.Set(sx)
	b.ScaleY.Set(sy)
}

// Position returns (X, Y).
func (b *ComponentBase) Position() Vec2 {
	return Vec2{b.X.Get(), b.Y.Get()}
}

// Size returns (Width, Height).
func (b *ComponentBase) Size() Vec2 {
	return Vec2{b.Width.Get(), b.Height.Get()}
}

// RemoveFromParent detaches the component from its container, grid or
// scene root list. No-op if it is not attached.
func (b *ComponentBase) RemoveFromParent() {
	self := b.Self()
	switch p := b.parent.(type) {
	case nil:
		if b.scene != nil {
			b.scene.RemoveComponents(self)
		}
	case containerComponent:
		p.containerBase().Remove(self)
	case *Grid:
		if col, row, ok := p.CellOf(self); ok {
			p.Remove(col, row)
		}
	}
}

// Ancestors returns the parent chain from the direct parent up to the
// outermost ancestor.
func (b *ComponentBase) Ancestors() []Component {
	var out []Component
	for p := b.parent; p != nil; p = p.Base().parent {
		out = append(out, p)
	}
	return out
}

// isAncestorComponent reports whether candidate is c or one of its ancestors.
func isAncestorComponent(candidate, c Component) bool {
	for p := c; p != nil; p = p.Base().parent {
		if p == candidate {
			return true
		}
	}
	return false
}
