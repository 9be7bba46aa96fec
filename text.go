package tabula

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	goRegularOnce sync.Once
	goRegular     *text.GoTextFaceSource
	goRegularErr  error
)

// LoadFontSource parses TrueType or OpenType data for use with
// Scene.SetFontSource.
func LoadFontSource(ttf []byte) (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("tabula: parse font: %w", err)
	}
	return src, nil
}

// defaultFontSource returns the bundled Go Regular typeface.
func defaultFontSource() (*text.GoTextFaceSource, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = LoadFontSource(goregular.TTF)
	})
	return goRegular, goRegularErr
}

// SetFontSource replaces the typeface of every TextVisual and widget in
// the scene. nil restores Go Regular.
func (s *Scene) SetFontSource(src *text.GoTextFaceSource) {
	s.fontSource = src
	clear(s.faces)
}

// face returns the face for size in scene units, or nil when no typeface
// could be loaded.
func (s *Scene) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = DefaultFont.Size
	}
	if f, ok := s.faces[size]; ok {
		return f
	}
	src := s.fontSource
	if src == nil {
		var err error
		if src, err = defaultFontSource(); err != nil {
			s.logger.Error("font", "err", err)
			return nil
		}
	}
	f := &text.GoTextFace{Source: src, Size: size}
	s.faces[size] = f
	return f
}

// lineHeight is the baseline distance of f.
func lineHeight(f *text.GoTextFace) float64 {
	m := f.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// measureText returns the size of str laid out in f.
func measureText(str string, f *text.GoTextFace) (float64, float64) {
	return text.Measure(str, f, lineHeight(f))
}

// textPlacement returns the offset of a tw x th text block aligned inside
// w x h bounds.
func textPlacement(a Alignment, tw, th, w, h float64) (x, y float64) {
	return (w - tw) * a.Horizontal.Multiplier(), (h - th) * a.Vertical.Multiplier()
}
