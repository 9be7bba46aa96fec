package tabula

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title string
	// Width and Height are the initial window size; zero uses the scene
	// viewport size.
	Width, Height int
	// TPS is the tick rate; zero keeps Ebitengine's default of 60.
	TPS int
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.scene.Layout(outsideWidth, outsideHeight)
}

// Run opens a window and runs the scene until the window is closed. For
// full control implement ebiten.Game and call Scene.Update, Scene.Draw and
// Scene.Layout directly.
func Run(s *Scene, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = int(s.ViewportWidth.Get()), int(s.ViewportHeight.Get())
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	s.logger.Info("starting", "title", cfg.Title, "width", w, "height", h)
	return ebiten.RunGame(&game{scene: s})
}

// Layout records the window size reported by the host and returns it as the
// screen size. The viewport properties are stored silently so the host is
// not asked to resize to the size it just reported.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != s.ViewportWidth.Get() || h != s.ViewportHeight.Get() {
		s.ViewportWidth.SetSilent(w)
		s.ViewportHeight.SetSilent(h)
		s.updateView()
	}
	return outsideWidth, outsideHeight
}
