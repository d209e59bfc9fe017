// Package window paints on the canvas with the mouse: left button draws,
// right button picks the next color, U undoes the last stroke and Esc ends
// the session.
package window

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"urpaint/pkg/editor"
)

func New(title string, logger *zap.Logger) *Window {
	return &Window{
		title: title,
		log:   logger,
		dirty: true,
	}
}

// Window is both the editor's renderer and its event loop. ebiten calls
// Update and Draw from the same goroutine, so the editor is never shared.
type Window struct {
	title string
	log   *zap.Logger
	ed    *editor.Editor
	img   *ebiten.Image
	dirty bool
	in    tracker
	saved string
	err   error
}

// Render only marks the canvas for upload, the pixels are copied in Draw.
func (w *Window) Render(*image.RGBA, image.Rectangle) error {
	w.dirty = true
	return nil
}

// Run opens the window on ed and blocks until the session ends. It returns
// where the picture was stored.
func (w *Window) Run(ed *editor.Editor) (string, error) {
	w.ed = ed
	size := ed.Image().Bounds().Size()
	w.img = ebiten.NewImage(size.X, size.Y)

	ebiten.SetWindowSize(size.X, size.Y)
	ebiten.SetWindowTitle(w.title)

	if err := ebiten.RunGame(w); err != nil {
		return "", err
	}
	return w.saved, w.err
}

func (w *Window) poll() Input {
	x, y := ebiten.CursorPosition()
	return Input{
		Cursor:       image.Pt(x, y),
		LeftDown:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		LeftPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		RightPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		Undo:         inpututil.IsKeyJustPressed(ebiten.KeyU),
		Quit:         inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

func (w *Window) Update() error {
	for _, ev := range w.in.events(w.poll()) {
		if ev.Kind == editor.Exit {
			saved, err := w.ed.OnExit(ev.Name)
			if err != nil {
				// keep painting, the user may fix the target and retry
				w.err = err
				w.log.With(zap.Error(err)).Warn("save-failed")
				ebiten.SetWindowTitle(w.title + " - save failed")
				continue
			}
			w.saved, w.err = saved, nil
			return ebiten.Termination
		}

		if err := w.ed.Handle(ev); err != nil {
			w.log.With(zap.Stringer("event", ev), zap.Error(err)).Info("event-failed")
		}
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.dirty {
		w.img.WritePixels(w.ed.Image().Pix)
		w.dirty = false
	}
	screen.DrawImage(w.img, nil)
}

func (w *Window) Layout(int, int) (int, int) {
	size := w.ed.Image().Bounds().Size()
	return size.X, size.Y
}
