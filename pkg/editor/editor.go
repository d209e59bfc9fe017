package editor

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"urpaint/pkg/history"
	"urpaint/pkg/palette"
	"urpaint/pkg/raster"
	"urpaint/pkg/sink"
)

var ErrExited = errors.New("editing session has ended")

type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Renderer shows the canvas after every processed event. dirty is the part
// that changed since the previous call and may be empty.
type Renderer interface {
	Render(canvas *image.RGBA, dirty image.Rectangle) error
}

type RenderFunc func(canvas *image.RGBA, dirty image.Rectangle) error

func (f RenderFunc) Render(canvas *image.RGBA, dirty image.Rectangle) error {
	return f(canvas, dirty)
}

// Renderers shows the canvas on every r in order and stops at the first failure.
func Renderers(rs ...Renderer) Renderer {
	return RenderFunc(func(canvas *image.RGBA, dirty image.Rectangle) error {
		for _, r := range rs {
			if err := r.Render(canvas, dirty); err != nil {
				return err
			}
		}
		return nil
	})
}

// New starts an editing session on a copy of initial.
func New(initial image.Image, opts ...Option) *Editor {
	e := &Editor{
		canvas:       raster.From(initial),
		palette:      palette.Default(),
		radius:       DefaultRadius,
		historyLimit: DefaultHistoryLimit,
		log:          zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.history = history.New[*raster.Canvas](e.historyLimit)
	return e
}

// Editor paints circles on a canvas in response to pointer events and keeps
// a snapshot per stroke for undo. It is not safe for concurrent use.
type Editor struct {
	canvas       *raster.Canvas
	palette      *palette.Palette
	history      *history.History[*raster.Canvas]
	historyLimit int
	radius       int
	state        State
	renderer     Renderer
	sink         sink.Sink
	log          *zap.Logger
	exited       bool
}

func (e *Editor) State() State {
	return e.state
}

func (e *Editor) Palette() *palette.Palette {
	return e.palette
}

func (e *Editor) Radius() int {
	return e.radius
}

func (e *Editor) HistoryLen() int {
	return e.history.Len()
}

func (e *Editor) Exited() bool {
	return e.exited
}

// Image is the live canvas. It changes with every event, use Snapshot to keep it.
func (e *Editor) Image() *image.RGBA {
	return e.canvas.Image()
}

func (e *Editor) Snapshot() *image.RGBA {
	return e.canvas.Clone().Image()
}

// Handle dispatches ev. Exit stores the picture when a sink is configured.
func (e *Editor) Handle(ev Event) error {
	switch ev.Kind {
	case Press:
		return e.OnPress(ev.Point)
	case Move:
		return e.OnMove(ev.Point)
	case Release:
		return e.OnRelease(ev.Point)
	case SecondaryPress:
		return e.OnSecondaryPress()
	case Undo:
		return e.OnUndo()
	case Exit:
		_, err := e.OnExit(ev.Name)
		return err
	}
	return fmt.Errorf("unknown event %s", ev.Kind)
}

// OnPress starts a stroke. Points outside the canvas are clamped onto its border.
func (e *Editor) OnPress(p image.Point) error {
	if e.exited {
		return ErrExited
	}
	if e.state == Drawing {
		return e.OnMove(p)
	}

	e.history.Push(e.canvas.Clone())
	e.state = Drawing
	e.log.With(zap.Int("x", p.X), zap.Int("y", p.Y), zap.Int("history", e.history.Len())).Debug("stroke-start")

	return e.render(e.paint(p))
}

func (e *Editor) OnMove(p image.Point) error {
	if e.exited {
		return ErrExited
	}
	if e.state != Drawing {
		return e.render(image.Rectangle{})
	}
	return e.render(e.paint(p))
}

func (e *Editor) OnRelease(p image.Point) error {
	if e.exited {
		return ErrExited
	}
	if e.state != Drawing {
		return e.render(image.Rectangle{})
	}

	dirty := e.paint(p)
	e.state = Idle
	e.log.With(zap.Int("x", p.X), zap.Int("y", p.Y)).Debug("stroke-end")

	return e.render(dirty)
}

// OnSecondaryPress selects the next palette color.
func (e *Editor) OnSecondaryPress() error {
	if e.exited {
		return ErrExited
	}

	c := e.palette.Next()
	e.log.With(zap.Int("index", e.palette.Index()), zap.String("color", palette.Hex(c))).Debug("color-changed")

	return e.render(image.Rectangle{})
}

// OnUndo restores the canvas as it was before the latest stroke. Without
// history it does nothing.
func (e *Editor) OnUndo() error {
	if e.exited {
		return ErrExited
	}

	snap, ok := e.history.Pop()
	if !ok {
		e.log.Debug("undo-empty")
		return e.render(image.Rectangle{})
	}

	if err := e.canvas.Restore(snap); err != nil {
		return fmt.Errorf("undo failed: %w", err)
	}
	// a stroke that is still going on is gone with its snapshot
	e.state = Idle
	e.log.With(zap.Int("history", e.history.Len())).Debug("undo")

	return e.render(e.canvas.Bounds())
}

// OnExit ends the session and hands the canvas to the sink. A failing sink
// leaves the editor usable so the caller may retry elsewhere.
func (e *Editor) OnExit(name string) (string, error) {
	if e.exited {
		return "", ErrExited
	}

	var saved string
	if e.sink != nil {
		p, err := e.sink.Store(e.canvas.Image(), name)
		if err != nil {
			e.log.With(zap.Error(err)).Info("store-failed")
			return "", fmt.Errorf("store picture failed: %w", err)
		}
		saved = p
	}

	e.exited = true
	e.state = Idle
	e.history.Reset()
	e.log.With(zap.String("saved", saved)).Debug("session-exit")

	return saved, nil
}

func (e *Editor) paint(p image.Point) image.Rectangle {
	return e.canvas.FillCircle(e.canvas.Clamp(p), e.radius, e.palette.Active())
}

func (e *Editor) render(dirty image.Rectangle) error {
	if e.renderer == nil {
		return nil
	}
	if err := e.renderer.Render(e.canvas.Image(), dirty); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
