package tabula

import "slices"

// containerComponent is implemented by the ordered-list container variants.
type containerComponent interface {
	Component
	containerBase() *ContainerBase
}

// ContainerBase is the ordered child list shared by Area and Pane.
// Children are owned while attached; each child's parent is the container.
type ContainerBase struct {
	ComponentBase
	// Children holds the current child list. Every mutation replaces the
	// slice, so listeners may keep the old value.
	Children *Property[[]Component]
}

func (c *ContainerBase) containerBase() *ContainerBase { return c }

func (c *ContainerBase) initContainer(self Component, name string, x, y, w, h float64, v Visual) {
	c.init(self, name, x, y, w, h, v)
	c.Children = NewProperty([]Component(nil))
}

// Len returns the number of children.
func (c *ContainerBase) Len() int {
	return len(c.Children.Get())
}

// At returns the child at index.
func (c *ContainerBase) At(index int) Component {
	return c.Children.Get()[index]
}

// IndexOf returns the index of child, or -1.
func (c *ContainerBase) IndexOf(child Component) int {
	return slices.Index(c.Children.Get(), child)
}

// Contains reports whether child is a direct child.
func (c *ContainerBase) Contains(child Component) bool {
	return c.IndexOf(child) >= 0
}

// Add appends children. Each child is detached from its previous parent
// first. Panics if a child is nil or an ancestor of c.
func (c *ContainerBase) Add(children ...Component) {
	for _, child := range children {
		c.AddAt(child, c.Len())
	}
}

// AddAt inserts child at index. The index refers to the list after child
// has been detached, so moving a child within the same container works.
// Panics if child is nil, an ancestor of c, or index is out of range, and
// with a *StructuralRoleError if child is not a renderable variant.
func (c *ContainerBase) AddAt(child Component, index int) {
	if child == nil {
		panic("tabula: cannot add nil child")
	}
	if err := validateTree(child); err != nil {
		panic(err)
	}
	self := c.Self()
	if isAncestorComponent(child, self) {
		panic("tabula: adding child would create a cycle")
	}
	child.Base().RemoveFromParent()
	cur := c.Children.Get()
	if index < 0 || index > len(cur) {
		panic("tabula: child index out of range")
	}
	next := make([]Component, 0, len(cur)+1)
	next = append(next, cur[:index]...)
	next = append(next, child)
	next = append(next, cur[index:]...)
	child.Base().parent = self
	c.Children.Set(next)
}

// Remove detaches child. Returns false if child is not a direct child.
func (c *ContainerBase) Remove(child Component) bool {
	idx := c.IndexOf(child)
	if idx < 0 {
		return false
	}
	cur := c.Children.Get()
	next := make([]Component, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	child.Base().parent = nil
	c.Children.Set(next)
	return true
}

// Clear detaches every child.
func (c *ContainerBase) Clear() {
	for _, child := range c.Children.Get() {
		child.Base().parent = nil
	}
	c.Children.Set(nil)
}

// Area is a game container. Children are placed at their own X/Y.
type Area struct {
	ContainerBase
}

// NewArea creates an empty area.
func NewArea(name string, x, y, w, h float64, v Visual) *Area {
	a := &Area{}
	a.initContainer(a, name, x, y, w, h, v)
	return a
}

// Pane is a layout view grouping other components. Children are placed at
// their own X/Y.
type Pane struct {
	ContainerBase
}

// NewPane creates an empty pane.
func NewPane(name string, x, y, w, h float64, v Visual) *Pane {
	p := &Pane{}
	p.initContainer(p, name, x, y, w, h, v)
	return p
}
