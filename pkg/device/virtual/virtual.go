package virtual

import (
	"fmt"
	"image"
	"image/draw"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const Prefix = "virtual:"

// Open creates a screen from an address like "virtual:320x480".
func Open(addr string, logger *zap.Logger) (*Screen, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.TrimPrefix(addr, Prefix), "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("bad virtual screen %q, want %sWxH", addr, Prefix)
	}
	return New(w, h, logger), nil
}

// New creates an in-memory screen of the given size. Everything drawn on it
// ends up in Frame, which makes it usable as a headless display.
func New(width, height int, logger *zap.Logger) *Screen {
	return &Screen{
		l:     logger,
		frame: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

type Screen struct {
	mu    sync.Mutex
	l     *zap.Logger
	frame *image.RGBA
	draws []image.Rectangle
	on    bool
	light uint8
}

func (s *Screen) Startup() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = true
	s.l.Info("startup")
	return nil
}

func (s *Screen) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = false
	s.l.Info("shutdown")
	return nil
}

func (s *Screen) SetLight(light uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.light = light
	s.l.With(zap.Uint8("light", light)).Info("set-light")
	return nil
}

func (s *Screen) SetRotate(landscape bool, invert bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.frame.Rect.Dx(), s.frame.Rect.Dy()
	if landscape != (w > h) {
		s.frame = image.NewRGBA(image.Rect(0, 0, h, w))
	}
	s.l.With(zap.Bool("landscape", landscape), zap.Bool("invert", invert)).Info("set-rotate")
	return nil
}

func (s *Screen) Size() image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame.Rect.Size()
}

func (s *Screen) DrawBitmap(at image.Point, img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := image.Rectangle{Min: at, Max: at.Add(img.Bounds().Size())}
	draw.Draw(s.frame, r, img, img.Bounds().Min, draw.Src)
	s.draws = append(s.draws, r)

	s.l.With(
		zap.Int("x", at.X),
		zap.Int("y", at.Y),
		zap.Int("w", r.Dx()),
		zap.Int("h", r.Dy()),
	).Debug("draw-bitmap")
	return nil
}

// Frame returns a copy of what the screen shows.
func (s *Screen) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := image.NewRGBA(s.frame.Rect)
	copy(out.Pix, s.frame.Pix)
	return out
}

// Draws lists the areas drawn since the last call.
func (s *Screen) Draws() []image.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.draws
	s.draws = nil
	return d
}

func (s *Screen) On() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

func (s *Screen) Light() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.light
}
