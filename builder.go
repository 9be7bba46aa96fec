package tabula

import "slices"

// selectedOverlay tints a selected toggle button.
var selectedOverlay = ColorVisual{Color: Color{1, 1, 1, 0.3}}

// Build materializes c and its subtree as render nodes, registers the
// observers that keep the nodes in sync with the model and records every
// component in the scene map. A component that is already bound returns its
// existing node.
//
// Build fails with a *StructuralRoleError when c or any descendant is not a
// renderable variant. Nothing is built in that case.
func Build(s *Scene, c Component) (*RenderNode, error) {
	if err := validateTree(c); err != nil {
		return nil, err
	}
	return s.build(c), nil
}

// validateTree checks that every component in the subtree rooted at c is a
// variant the builder knows.
func validateTree(c Component) error {
	switch v := c.(type) {
	case *Area:
		return validateChildren(v.Children.Get())
	case *Pane:
		return validateChildren(v.Children.Get())
	case *Grid:
		return validateChildren(v.Children())
	case *Token, *Card, *Dice, *Label, *Button, *ToggleButton:
		return nil
	default:
		return structuralRole(c, "renderable component")
	}
}

func validateChildren(children []Component) error {
	for _, child := range children {
		if err := validateTree(child); err != nil {
			return err
		}
	}
	return nil
}

// childrenOf returns the structural children of c.
func childrenOf(c Component) []Component {
	switch v := c.(type) {
	case containerComponent:
		return v.containerBase().Children.Get()
	case *Grid:
		return v.Children()
	}
	return nil
}

// bind registers fn on p's GUI channel and runs it once with the current
// value.
func bind[T any](nb *nodeBinding, p *Property[T], fn func(T)) {
	nb.binds.add(p.SetGUIListenerAndInvoke(p.Get(), func(_, v T) { fn(v) }))
}

// build assumes c passed validateTree.
func (s *Scene) build(c Component) *RenderNode {
	if nb := s.nodes[c]; nb != nil {
		return nb.node
	}
	b := c.Base()
	nb := &nodeBinding{}

	// (a) background
	nb.background = NewVisualNode(b.Name+"/visual", b.Visual.Get())
	nb.background.Interactable = true

	// (b) content
	switch v := c.(type) {
	case *Area, *Pane:
		nb.content = NewGroupNode(b.Name + "/children")
		list := v.(containerComponent).containerBase().Children
		content := nb.content
		nb.binds.add(list.SetGUIListenerAndInvoke(nil, func(old, next []Component) {
			s.syncChildren(content, old, next)
		}))
	case *Grid:
		nb.content = NewGroupNode(b.Name + "/cells")
		content := nb.content
		nb.binds.add(v.Cells.SetGUIListenerAndInvoke(nil, func(old, next [][]Component) {
			s.syncChildren(content, flattenCells(old), flattenCells(next))
			s.relayoutGrid(v)
		}))
		nb.binds.add(v.Spec.OnChange(func(_, _ GridSpec) {
			s.relayoutGrid(v)
		}))
	case *Token, *Card, *Dice:
		nb.content = NewGroupNode(b.Name + "/piece")
	case *Label, *Button, *ToggleButton:
		nb.content = NewVisualNode(b.Name+"/text", nil)
		bindWidget(nb, v.(widgetComponent).widgetBase())
		if t, ok := v.(*ToggleButton); ok {
			nb.overlay = NewVisualNode(b.Name+"/selected", selectedOverlay)
			overlay := nb.overlay
			bind(nb, t.Selected, func(sel bool) { overlay.Visible = sel })
		}
	default:
		panic(structuralRole(c, "renderable component"))
	}
	nb.content.Interactable = true

	// (c) composite
	node := NewGroupNode(b.Name)
	node.Interactable = true
	node.AddChild(nb.background)
	node.AddChild(nb.content)
	if nb.overlay != nil {
		node.AddChild(nb.overlay)
	}
	nb.node = node

	// (d) input forwarding
	s.bindInput(c, node)

	// (e) observers
	s.bindGeometry(c, nb)
	bind(nb, b.Rotation, node.SetRotation)
	bind(nb, b.ScaleX, func(sx float64) { node.SetScale(sx, node.ScaleY) })
	bind(nb, b.ScaleY, func(sy float64) { node.SetScale(node.ScaleX, sy) })
	bind(nb, b.Opacity, node.SetAlpha)
	bind(nb, b.Visible, func(v bool) { node.Visible = v })
	bind(nb, b.Disabled, func(d bool) { node.Disabled = d })
	background := nb.background
	bind(nb, b.Visual, func(v Visual) { background.Visual = v })

	// (f) map insertion
	s.nodes[c] = nb
	s.owners[node] = c

	if g, ok := c.(*Grid); ok {
		s.relayoutGrid(g)
	}
	return node
}

// bindGeometry keeps the node position and size in step with the model.
// Grid children are placed by their grid; grids are sized by their layout.
func (s *Scene) bindGeometry(c Component, nb *nodeBinding) {
	b := c.Base()
	node := nb.node
	position := func(float64) {
		if g, ok := b.parent.(*Grid); ok {
			s.relayoutGrid(g)
			return
		}
		node.SetPosition(b.X.Get(), b.Y.Get())
	}
	bind(nb, b.X, position)
	bind(nb, b.Y, position)

	if _, ok := c.(*Grid); ok {
		return
	}
	size := func(float64) {
		nb.setSize(b.Width.Get(), b.Height.Get())
		if g, ok := b.parent.(*Grid); ok {
			s.relayoutGrid(g)
		}
	}
	bind(nb, b.Width, size)
	bind(nb, b.Height, size)
}

func bindWidget(nb *nodeBinding, w *WidgetBase) {
	text := nb.content
	refresh := func() {
		text.Visual = TextVisual{
			Text:      w.Text.Get(),
			Color:     w.TextColor.Get(),
			Size:      w.Font.Get().Size,
			Alignment: w.Alignment.Get(),
		}
	}
	bind(nb, w.Text, func(string) { refresh() })
	bind(nb, w.Font, func(Font) { refresh() })
	bind(nb, w.TextColor, func(Color) { refresh() })
	bind(nb, w.Alignment, func(Alignment) { refresh() })
}

func (nb *nodeBinding) setSize(w, h float64) {
	nb.node.SetSize(w, h)
	nb.background.SetSize(w, h)
	nb.content.SetSize(w, h)
	if nb.overlay != nil {
		nb.overlay.SetSize(w, h)
	}
}

// flattenCells lists the occupied cells in column-major order.
func flattenCells(cells [][]Component) []Component {
	var out []Component
	for _, col := range cells {
		for _, c := range col {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// syncChildren rebuilds the render children of content from next. Nodes of
// components still present are reused from the scene map, only new
// components are built, and components that left the list are discarded.
func (s *Scene) syncChildren(content *RenderNode, old, next []Component) {
	content.RemoveChildren()
	built := 0
	for _, c := range next {
		if s.nodes[c] == nil {
			built++
		}
		node := s.build(c)
		content.AddChild(node)
		s.place(c)
		s.debugCheckNode(node)
	}
	discarded := 0
	for _, c := range old {
		if !slices.Contains(next, c) && s.nodes[c] != nil {
			s.discard(c)
			discarded++
		}
	}
	s.logger.Debug("rebuild children", "node", content.Name,
		"kept", len(next)-built, "built", built, "discarded", discarded)
}

// place positions c's node inside its parent's content.
func (s *Scene) place(c Component) {
	nb := s.nodes[c]
	if nb == nil {
		return
	}
	b := c.Base()
	if _, ok := b.parent.(*Grid); ok {
		// positioned by relayoutGrid
		return
	}
	nb.node.SetPosition(b.X.Get(), b.Y.Get())
}

// relayoutGrid resolves g's layout, positions its children and writes the
// resulting size back into the model without notifying observers.
func (s *Scene) relayoutGrid(g *Grid) {
	l := LayoutGrid(g)
	g.Width.SetSilent(l.Width)
	g.Height.SetSilent(l.Height)
	if nb := s.nodes[g]; nb != nil {
		nb.setSize(l.Width, l.Height)
	}
	for _, cell := range g.Occupied() {
		if nb := s.nodes[cell.Component]; nb != nil {
			p := l.ChildPosition(cell.Col, cell.Row, cell.Component)
			nb.node.SetPosition(p.X, p.Y)
		}
	}
	if parent, ok := g.parent.(*Grid); ok {
		s.relayoutGrid(parent)
	}
}

// discard removes c and its subtree from the scene map, releases their
// observers and disposes their nodes. The dragged component is kept.
func (s *Scene) discard(c Component) {
	nb := s.nodes[c]
	if nb == nil || (s.drag != nil && s.drag.component == c) {
		return
	}
	nb.binds.release()
	delete(s.nodes, c)
	delete(s.owners, nb.node)
	for _, child := range childrenOf(c) {
		s.discard(child)
	}
	nb.node.Dispose()
}

// --- Input forwarding ---

// blocked reports whether c must ignore input: the scene is locked or c or
// one of its ancestors is disabled.
func (s *Scene) blocked(c Component) bool {
	if s.IsLocked() {
		return true
	}
	for p := c; p != nil; p = p.Base().parent {
		if p.Base().Disabled.Get() {
			return true
		}
	}
	return false
}

// draggableAncestor returns c or its nearest draggable ancestor.
func draggableAncestor(c Component) Component {
	for p := c; p != nil; p = p.Base().parent {
		if p.Base().Draggable {
			return p
		}
	}
	return nil
}

func toMouseEvent(ctx PointerContext) MouseEvent {
	return MouseEvent{
		Button:    ctx.Button,
		X:         ctx.SceneX,
		Y:         ctx.SceneY,
		LocalX:    ctx.LocalX,
		LocalY:    ctx.LocalY,
		Modifiers: ctx.Modifiers,
	}
}

func (s *Scene) bindInput(c Component, node *RenderNode) {
	b := c.Base()
	node.OnPointerDown = func(ctx PointerContext) {
		if s.blocked(c) {
			return
		}
		if b.OnMousePressed != nil {
			b.OnMousePressed(toMouseEvent(ctx))
		}
		s.emit(InteractionEvent{Type: EventPointerDown, Component: c, X: ctx.SceneX, Y: ctx.SceneY, Button: ctx.Button})
	}
	node.OnPointerUp = func(ctx PointerContext) {
		if s.blocked(c) {
			return
		}
		if b.OnMouseReleased != nil {
			b.OnMouseReleased(toMouseEvent(ctx))
		}
		s.emit(InteractionEvent{Type: EventPointerUp, Component: c, X: ctx.SceneX, Y: ctx.SceneY, Button: ctx.Button})
	}
	node.OnClick = func(ctx PointerContext) {
		if s.blocked(c) {
			return
		}
		if ctx.Button == MouseButtonLeft {
			switch w := c.(type) {
			case *ToggleButton:
				w.Toggle()
				if w.OnAction != nil {
					w.OnAction()
				}
			case *Button:
				if w.OnAction != nil {
					w.OnAction()
				}
			}
		}
		if b.OnMouseClicked != nil {
			b.OnMouseClicked(toMouseEvent(ctx))
		}
		s.emit(InteractionEvent{Type: EventClick, Component: c, X: ctx.SceneX, Y: ctx.SceneY, Button: ctx.Button})
	}
	node.OnScroll = func(ctx ScrollContext) {
		if s.blocked(c) || b.OnScroll == nil {
			return
		}
		b.OnScroll(ScrollEvent{DeltaX: ctx.DeltaX, DeltaY: ctx.DeltaY})
		s.emit(InteractionEvent{Type: EventScroll, Component: c, X: ctx.SceneX, Y: ctx.SceneY})
	}
	node.OnKey = func(ctx KeyContext) {
		if s.blocked(c) || b.OnKeyPressed == nil {
			return
		}
		b.OnKeyPressed(KeyEvent{Key: ctx.Key, Modifiers: ctx.Modifiers})
		s.emit(InteractionEvent{Type: EventKey, Component: c})
	}
	node.OnDragStart = func(ctx DragContext) {
		if ctx.Button != MouseButtonLeft || s.blocked(c) {
			return
		}
		target := draggableAncestor(c)
		if target == nil {
			return
		}
		if err := s.BeginDrag(target, ctx.StartX, ctx.StartY); err != nil {
			s.logger.Debug("drag rejected", "component", target.Base().Name, "err", err)
			return
		}
		if err := s.MoveDrag(ctx.SceneX, ctx.SceneY); err != nil {
			s.logger.Debug("drag move", "err", err)
		}
	}
	node.OnDrag = func(ctx DragContext) {
		if s.drag == nil {
			return
		}
		if err := s.MoveDrag(ctx.SceneX, ctx.SceneY); err != nil {
			s.logger.Debug("drag move", "err", err)
		}
	}
	node.OnDragEnd = func(ctx DragContext) {
		if s.drag == nil {
			return
		}
		if err := s.EndDrag(ctx.SceneX, ctx.SceneY); err != nil {
			s.logger.Error("drop", "component", s.nameOf(ctx.Node), "err", err)
		}
	}
}

func (s *Scene) nameOf(n *RenderNode) string {
	if c := s.ComponentOf(n); c != nil {
		return c.Base().Name
	}
	return ""
}
