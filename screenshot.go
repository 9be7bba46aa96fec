package tabula

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultScreenshotDir is where screenshots are written unless
// Scene.ScreenshotDir says otherwise.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled capture of the next drawn frame. The PNG is
// written to ScreenshotDir with a timestamped name.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots writes the rendered frame once per queued label.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	dir := s.ScreenshotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Error("screenshot", "dir", dir, "err", err)
		return
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			s.logger.Error("screenshot", "err", err)
			continue
		}
		s.logger.Info("screenshot saved", "path", path)
	}
}

// unpremultiply copies premultiplied RGBA pixels, as read back from the
// GPU, into a straight-alpha image for PNG encoding.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	src := &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewNRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel makes label usable in a file name: letters, digits, dash
// and dot survive, anything else becomes an underscore.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
