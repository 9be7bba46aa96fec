package tabula

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefresh = 500 * time.Millisecond

// fpsOverlay shows the current FPS and TPS in the top-left corner of the
// screen. The text is refreshed about every half second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed time.Duration
	stale   bool
}

// SetShowFPS toggles the FPS/TPS overlay.
func (s *Scene) SetShowFPS(show bool) {
	switch {
	case show && s.fps == nil:
		s.fps = &fpsOverlay{stale: true}
	case !show && s.fps != nil:
		if s.fps.img != nil {
			s.fps.img.Deallocate()
		}
		s.fps = nil
	}
}

// ShowsFPS reports whether the overlay is enabled.
func (s *Scene) ShowsFPS() bool {
	return s.fps != nil
}

func (o *fpsOverlay) update(dt time.Duration) {
	o.elapsed += dt
	if o.elapsed >= fpsRefresh {
		o.elapsed = 0
		o.stale = true
	}
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		// 100x32 fits "FPS: 60.0\nTPS: 60.0"
		o.img = ebiten.NewImage(100, 32)
	}
	if o.stale {
		o.stale = false
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(o.img, nil)
}
