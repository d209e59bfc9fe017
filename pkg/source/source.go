package source

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
)

var ErrEndOfStream = errors.New("end of stream")

// Source hands out frames until it returns ErrEndOfStream.
type Source interface {
	Next() (image.Image, error)
}

// First acquires the initial frame of a session. A source that is already
// exhausted is treated as an acquisition failure.
func First(src Source) (image.Image, error) {
	img, err := src.Next()
	if errors.Is(err, ErrEndOfStream) {
		return nil, fmt.Errorf("acquire frame failed: no frame available: %w", err)
	} else if err != nil {
		return nil, fmt.Errorf("acquire frame failed: %w", err)
	}
	return img, nil
}

func Static(frames ...image.Image) Source {
	return &static{frames: frames}
}

// Blank yields a single w*h frame filled with bg.
func Blank(w, h int, bg color.Color) Source {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return Static(img)
}

type static struct {
	frames []image.Image
}

func (s *static) Next() (image.Image, error) {
	if len(s.frames) == 0 {
		return nil, ErrEndOfStream
	}
	img := s.frames[0]
	s.frames = s.frames[1:]
	return img, nil
}
