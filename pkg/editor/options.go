package editor

import (
	"go.uber.org/zap"

	"urpaint/pkg/palette"
	"urpaint/pkg/sink"
)

const (
	DefaultRadius       = 10
	DefaultHistoryLimit = 50
)

type Option func(e *Editor)

func WithPalette(p *palette.Palette) Option {
	return func(e *Editor) {
		e.palette = p
	}
}

func WithRadius(r int) Option {
	return func(e *Editor) {
		e.radius = r
	}
}

// WithHistoryLimit caps the number of undo steps kept, 0 keeps all of them.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) {
		e.historyLimit = n
	}
}

func WithRenderer(r Renderer) Option {
	return func(e *Editor) {
		e.renderer = r
	}
}

func WithSink(s sink.Sink) Option {
	return func(e *Editor) {
		e.sink = s
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		e.log = l
	}
}
