package tabula

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerContext is passed to the pointer hooks of a RenderNode. Scene
// coordinates are logical; local coordinates are relative to the node.
type PointerContext struct {
	Node           *RenderNode
	SceneX, SceneY float64
	LocalX, LocalY float64
	Button         MouseButton
	Modifiers      KeyModifiers
}

// DragContext is passed to the drag hooks. StartX and StartY are where the
// pointer went down; DeltaX and DeltaY are the movement since the previous
// frame.
type DragContext struct {
	PointerContext
	StartX, StartY float64
	DeltaX, DeltaY float64
}

// ScrollContext carries wheel movement over a node.
type ScrollContext struct {
	Node           *RenderNode
	SceneX, SceneY float64
	DeltaX, DeltaY float64
}

// KeyContext carries a key press delivered to the hovered node.
type KeyContext struct {
	Node      *RenderNode
	Key       ebiten.Key
	Modifiers KeyModifiers
}

// lastNodeID is only touched from the game loop goroutine.
var lastNodeID uint32

// RenderNode is the drawable element the scene builds for a component.
// Group nodes only hold children; visual nodes also paint Visual over
// Width x Height. Game code works on components and leaves nodes to the
// scene.
type RenderNode struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *RenderNode
	children []*RenderNode

	// Local transform. Rotation is in degrees around (PivotX, PivotY).
	X, Y           float64
	Width, Height  float64
	ScaleX, ScaleY float64
	Rotation       float64
	PivotX, PivotY float64

	Alpha        float64
	Visible      bool
	Interactable bool
	Disabled     bool

	Visual Visual

	OnPointerDown func(PointerContext)
	OnPointerUp   func(PointerContext)
	OnClick       func(PointerContext)
	OnDragStart   func(DragContext)
	OnDrag        func(DragContext)
	OnDragEnd     func(DragContext)
	OnScroll      func(ScrollContext)
	OnKey         func(KeyContext)

	worldTransform Affine
	worldAlpha     float64
	transformDirty bool
	disposed       bool
}

func newNode(name string, t NodeType, v Visual) *RenderNode {
	lastNodeID++
	return &RenderNode{
		ID:             lastNodeID,
		Name:           name,
		Type:           t,
		Visual:         v,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Visible:        true,
		transformDirty: true,
	}
}

// NewGroupNode creates a node that only groups children.
func NewGroupNode(name string) *RenderNode {
	return newNode(name, NodeTypeGroup, nil)
}

// NewVisualNode creates a node that paints v over its bounds.
func NewVisualNode(name string, v Visual) *RenderNode {
	return newNode(name, NodeTypeVisual, v)
}

// AddChild appends child, detaching it from its current parent first.
func (n *RenderNode) AddChild(child *RenderNode) {
	n.AddChildAt(child, -1)
}

// AddChildAt inserts child at index; -1 appends. It panics on a nil child,
// an index out of range or when child is n or one of its ancestors.
func (n *RenderNode) AddChildAt(child *RenderNode, index int) {
	if child == nil {
		panic("tabula: cannot add nil child")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("tabula: adding child would create a cycle")
		}
	}
	if child.Parent != nil {
		child.Parent.unlink(child)
	}
	if index < 0 {
		index = len(n.children)
	}
	if index > len(n.children) {
		panic("tabula: child index out of range")
	}
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
	child.invalidate()
}

// RemoveChild detaches child. It panics when child is not a child of n.
func (n *RenderNode) RemoveChild(child *RenderNode) {
	if child.Parent != n {
		panic("tabula: child's parent is not this node")
	}
	n.unlink(child)
	child.Parent = nil
	child.invalidate()
}

// RemoveFromParent detaches n from its parent, if any.
func (n *RenderNode) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveChildren detaches every child without disposing it.
func (n *RenderNode) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		child.invalidate()
	}
	clear(n.children)
	n.children = n.children[:0]
}

// Children returns the child list. Callers must not modify it.
func (n *RenderNode) Children() []*RenderNode {
	return n.children
}

// NumChildren returns the number of children.
func (n *RenderNode) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at index. It panics when index is out of range.
func (n *RenderNode) ChildAt(index int) *RenderNode {
	if index < 0 || index >= len(n.children) {
		panic(fmt.Sprintf("tabula: child index %d out of range [0, %d)", index, len(n.children)))
	}
	return n.children[index]
}

// Dispose detaches n and releases it and its subtree. Disposed nodes are
// neither drawn nor hit.
func (n *RenderNode) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.release()
}

func (n *RenderNode) release() {
	for _, child := range n.children {
		child.release()
	}
	*n = RenderNode{ID: n.ID, Name: n.Name, Type: n.Type, disposed: true}
}

// IsDisposed reports whether n was disposed.
func (n *RenderNode) IsDisposed() bool {
	return n.disposed
}

// unlink drops child from n.children, leaving child.Parent alone.
func (n *RenderNode) unlink(child *RenderNode) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// invalidate marks n and its subtree for a world transform update.
func (n *RenderNode) invalidate() {
	n.transformDirty = true
	for _, child := range n.children {
		child.invalidate()
	}
}
