package render

import (
	"bytes"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"urpaint/pkg/proto"
)

type Option func(s *Screen)

// WithTile sets the edge of the square blocks compared between frames.
func WithTile(size int) Option {
	return func(s *Screen) {
		s.tile = size
	}
}

// NewScreen shows the canvas on dev, scaled down to fit and centered.
// Only blocks that differ from the previous frame are transferred, which
// keeps serial screens responsive while painting.
func NewScreen(dev proto.Screen, logger *zap.Logger, opts ...Option) *Screen {
	s := &Screen{
		dev:  dev,
		tile: 32,
		log:  logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Screen struct {
	dev  proto.Screen
	tile int
	prev *image.RGBA
	log  *zap.Logger
}

// Reset forgets the previous frame so the next Render redraws everything.
func (s *Screen) Reset() {
	s.prev = nil
}

func (s *Screen) Render(canvas *image.RGBA, dirty image.Rectangle) error {
	if dirty.Empty() && s.prev != nil {
		return nil
	}

	frame := s.compose(canvas)
	tiles := s.changed(frame)

	for _, t := range tiles {
		if err := s.dev.DrawBitmap(t.Min, frame.SubImage(t)); err != nil {
			// whatever was sent is unknown now, redraw all next time
			s.prev = nil
			return err
		}
	}

	s.prev = frame
	s.log.With(zap.Int("tiles", len(tiles))).Debug("frame-sent")
	return nil
}

func (s *Screen) compose(canvas *image.RGBA) *image.RGBA {
	size := s.dev.Size()
	frame := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(frame, frame.Bounds(), image.Black, image.Point{}, draw.Src)

	var src image.Image = canvas
	if cs := canvas.Bounds().Size(); cs.X > size.X || cs.Y > size.Y {
		src = imaging.Fit(canvas, size.X, size.Y, imaging.Linear)
	}

	sb := src.Bounds()
	at := image.Pt((size.X-sb.Dx())/2, (size.Y-sb.Dy())/2)
	draw.Draw(frame, image.Rectangle{Min: at, Max: at.Add(sb.Size())}, src, sb.Min, draw.Src)
	return frame
}

func (s *Screen) changed(frame *image.RGBA) []image.Rectangle {
	b := frame.Bounds()
	var tiles []image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y += s.tile {
		for x := b.Min.X; x < b.Max.X; x += s.tile {
			tiles = append(tiles, image.Rect(x, y, x+s.tile, y+s.tile).Intersect(b))
		}
	}

	if s.prev == nil || !s.prev.Rect.Eq(b) {
		return tiles
	}

	return lo.Filter(tiles, func(t image.Rectangle, _ int) bool {
		for y := t.Min.Y; y < t.Max.Y; y++ {
			from, to := frame.PixOffset(t.Min.X, y), frame.PixOffset(t.Max.X, y)
			if !bytes.Equal(frame.Pix[from:to], s.prev.Pix[from:to]) {
				return true
			}
		}
		return false
	})
}
