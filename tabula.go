package tabula

import (
	"image/color"
	"math"
)

// Color is a straight-alpha color with channels in [0, 1]. Values outside
// that range are clamped when drawn.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent draws nothing.
var ColorTransparent = Color{}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a point, offset or size in scene units.
type Vec2 struct {
	X, Y float64
}

// Rotate returns v rotated by deg degrees. With Y pointing down, positive
// angles turn clockwise on screen.
func (v Vec2) Rotate(deg float64) Vec2 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Rect is an axis-aligned rectangle in scene units, Y growing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies in r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// HorizontalAlignment positions content along the X axis.
type HorizontalAlignment uint8

const (
	AlignLeft    HorizontalAlignment = iota // start edge
	AlignHCenter                            // centered
	AlignRight                              // end edge
)

// Multiplier returns the share of slack space placed before the content:
// 0 for left, 0.5 for center, 1 for right.
func (a HorizontalAlignment) Multiplier() float64 {
	switch a {
	case AlignHCenter:
		return 0.5
	case AlignRight:
		return 1
	default:
		return 0
	}
}

// String returns the config spelling of the alignment.
func (a HorizontalAlignment) String() string {
	switch a {
	case AlignHCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// VerticalAlignment positions content along the Y axis.
type VerticalAlignment uint8

const (
	AlignTop     VerticalAlignment = iota // start edge
	AlignVCenter                          // centered
	AlignBottom                           // end edge
)

// Multiplier returns the share of slack space placed above the content:
// 0 for top, 0.5 for center, 1 for bottom.
func (a VerticalAlignment) Multiplier() float64 {
	switch a {
	case AlignVCenter:
		return 0.5
	case AlignBottom:
		return 1
	default:
		return 0
	}
}

// String returns the config spelling of the alignment.
func (a VerticalAlignment) String() string {
	switch a {
	case AlignVCenter:
		return "center"
	case AlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// Alignment combines a horizontal and a vertical alignment.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
}

// Common alignments.
var (
	AlignTopLeft     = Alignment{AlignLeft, AlignTop}
	AlignCenter      = Alignment{AlignHCenter, AlignVCenter}
	AlignBottomRight = Alignment{AlignRight, AlignBottom}
)

// NodeType distinguishes rendering behavior for a RenderNode.
type NodeType uint8

const (
	NodeTypeGroup  NodeType = iota // groups children, no visual output
	NodeTypeVisual                 // paints a Visual over its Width x Height
)

// EventType tags an InteractionEvent forwarded to the EntityStore.
type EventType uint8

const (
	EventPointerDown  EventType = iota
	EventPointerUp
	EventClick                         // press and release on the same component
	EventDragStart                     // the component left its parent for the drag layer
	EventDrag                          // the dragged component moved
	EventDragEnd                       // release or cancel; Success tells which
	EventDragEntered                   // a drop candidate came under the dragged component
	EventDragExited                    // a drop candidate is no longer under it
	EventDrop                          // a target accepted the dragged component
	EventDragRollback                  // no target accepted, placement restored
	EventScroll                        // mouse wheel over a node
	EventKey                           // key pressed while a node is hovered
)

// MouseButton is the button that started a pointer sequence. Only the left
// button clicks widgets and starts drags.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// KeyModifiers holds the modifier keys down during an event.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta // Command on macOS
)
