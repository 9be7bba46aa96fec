package tabula

import "github.com/hajimehoshi/ebiten/v2"

// Visual describes how a component paints its bounds. It is a closed sum
// type: ColorVisual, ImageVisual, TextVisual and CompoundVisual.
//
// A nil Visual paints nothing.
type Visual interface {
	isVisual()
}

// ColorVisual fills the bounds with a solid color.
type ColorVisual struct {
	Color Color
}

// ImageVisual stretches an image over the bounds.
type ImageVisual struct {
	Image *ebiten.Image
	// Alpha multiplies the image alpha; 0 is treated as fully opaque.
	Alpha float64
}

// TextVisual draws a line of text inside the bounds.
type TextVisual struct {
	Text  string
	Color Color
	// Size is the font size in scene units; 0 uses DefaultFont.Size.
	Size      float64
	Alignment Alignment
}

// CompoundVisual paints its layers bottom to top.
type CompoundVisual struct {
	Layers []Visual
}

func (ColorVisual) isVisual()    {}
func (ImageVisual) isVisual()    {}
func (TextVisual) isVisual()     {}
func (CompoundVisual) isVisual() {}

// NewCompoundVisual stacks the given visuals, skipping nil entries.
func NewCompoundVisual(layers ...Visual) CompoundVisual {
	out := make([]Visual, 0, len(layers))
	for _, l := range layers {
		if l != nil {
			out = append(out, l)
		}
	}
	return CompoundVisual{Layers: out}
}
