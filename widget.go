package tabula

import "slices"

// Font describes how widget text is drawn. Size is the font size in scene
// units; the typeface is set per scene with Scene.SetFontSource.
type Font struct {
	Size float64
}

// DefaultFont is used by widget constructors.
var DefaultFont = Font{Size: 16}

// DefaultTextColor is the initial widget text color.
var DefaultTextColor = Color{0, 0, 0, 1}

// WidgetBase holds the text and style shared by widgets.
type WidgetBase struct {
	ComponentBase
	Text      *Property[string]
	Font      *Property[Font]
	TextColor *Property[Color]
	Alignment *Property[Alignment]
}

// widgetComponent is implemented by the text widget variants.
type widgetComponent interface {
	Component
	widgetBase() *WidgetBase
}

func (w *WidgetBase) widgetBase() *WidgetBase { return w }

func (w *WidgetBase) initWidget(self Component, name string, x, y, width, height float64, text string, v Visual) {
	w.init(self, name, x, y, width, height, v)
	w.Text = NewProperty(text)
	w.Font = NewProperty(DefaultFont)
	w.TextColor = NewProperty(DefaultTextColor)
	w.Alignment = NewProperty(AlignCenter)
}

// Label displays text.
type Label struct {
	WidgetBase
}

// NewLabel creates a label with a transparent background.
func NewLabel(name string, x, y, w, h float64, text string) *Label {
	l := &Label{}
	l.initWidget(l, name, x, y, w, h, text, nil)
	return l
}

// Button displays text and runs OnAction when clicked.
type Button struct {
	WidgetBase
	OnAction func()
}

// NewButton creates a button with the given background.
func NewButton(name string, x, y, w, h float64, text string, v Visual) *Button {
	b := &Button{}
	b.initWidget(b, name, x, y, w, h, text, v)
	return b
}

// ToggleButton is a button with a selected state. A click toggles it.
type ToggleButton struct {
	WidgetBase
	Selected *Property[bool]
	// OnAction runs after a click has toggled Selected.
	OnAction func()
	group    *ToggleGroup
}

// NewToggleButton creates an unselected toggle button.
func NewToggleButton(name string, x, y, w, h float64, text string, v Visual) *ToggleButton {
	t := &ToggleButton{}
	t.initWidget(t, name, x, y, w, h, text, v)
	t.Selected = NewProperty(false)
	t.Selected.OnInternalChange(func(_, selected bool) {
		if selected && t.group != nil {
			t.group.selected(t)
		}
	})
	return t
}

// Toggle flips Selected.
func (t *ToggleButton) Toggle() {
	t.Selected.Set(!t.Selected.Get())
}

// Group returns the toggle group t belongs to, or nil.
func (t *ToggleButton) Group() *ToggleGroup {
	return t.group
}

// ToggleGroup keeps at most one of its buttons selected. The group owns
// its member table; there is no process-wide registry.
type ToggleGroup struct {
	members []*ToggleButton
}

// NewToggleGroup creates a group holding buttons.
func NewToggleGroup(buttons ...*ToggleButton) *ToggleGroup {
	g := &ToggleGroup{}
	for _, b := range buttons {
		g.Add(b)
	}
	return g
}

// Add moves b into g, leaving its previous group.
func (g *ToggleGroup) Add(b *ToggleButton) {
	if b.group == g {
		return
	}
	if b.group != nil {
		b.group.Remove(b)
	}
	b.group = g
	g.members = append(g.members, b)
	if b.Selected.Get() {
		g.selected(b)
	}
}

// Remove takes b out of g.
func (g *ToggleGroup) Remove(b *ToggleButton) {
	if i := slices.Index(g.members, b); i >= 0 {
		g.members = slices.Delete(g.members, i, i+1)
		b.group = nil
	}
}

// Members returns the buttons in the group.
func (g *ToggleGroup) Members() []*ToggleButton {
	return g.members
}

// Selected returns the selected member, or nil.
func (g *ToggleGroup) Selected() *ToggleButton {
	for _, b := range g.members {
		if b.Selected.Get() {
			return b
		}
	}
	return nil
}

// Select selects b and deselects every other member.
func (g *ToggleGroup) Select(b *ToggleButton) error {
	if !slices.Contains(g.members, b) {
		return ErrNotInGroup
	}
	b.Selected.Set(true)
	return nil
}

// selected runs on the internal channel before any render update.
func (g *ToggleGroup) selected(b *ToggleButton) {
	for _, other := range g.members {
		if other != b && other.Selected.Get() {
			other.Selected.Set(false)
		}
	}
}
