package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.viam.com/test"

	"urpaint/pkg/device/virtual"
	"urpaint/pkg/editor"
)

func TestScreenSendsChangedTiles(t *testing.T) {
	dev := virtual.New(128, 96, zap.NewNop())
	r := NewScreen(dev, zap.NewNop())

	ed := editor.New(image.NewRGBA(image.Rect(0, 0, 128, 96)), editor.WithRenderer(r))
	test.That(t, r.Render(ed.Image(), ed.Image().Bounds()), test.ShouldBeNil)
	test.That(t, dev.Draws(), test.ShouldHaveLength, 4*3)

	test.That(t, ed.Handle(editor.PressAt(16, 16)), test.ShouldBeNil)
	draws := dev.Draws()
	test.That(t, draws, test.ShouldHaveLength, 1)
	test.That(t, draws[0], test.ShouldResemble, image.Rect(0, 0, 32, 32))
	test.That(t, dev.Frame().Pix, test.ShouldResemble, ed.Image().Pix)

	// nothing changes on the canvas, nothing is sent
	test.That(t, ed.Handle(editor.NextColor()), test.ShouldBeNil)
	test.That(t, dev.Draws(), test.ShouldBeEmpty)

	test.That(t, ed.Handle(editor.UndoLast()), test.ShouldBeNil)
	test.That(t, dev.Draws(), test.ShouldHaveLength, 1)
	test.That(t, dev.Frame().RGBAAt(16, 16), test.ShouldResemble, color.RGBA{A: 255})
}

func TestScreenFitsLargeCanvas(t *testing.T) {
	dev := virtual.New(100, 100, zap.NewNop())
	r := NewScreen(dev, zap.NewNop(), WithTile(50))

	canvas := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for i := 0; i < len(canvas.Pix); i += 4 {
		canvas.Pix[i], canvas.Pix[i+3] = 255, 255
	}
	test.That(t, r.Render(canvas, canvas.Bounds()), test.ShouldBeNil)

	frame := dev.Frame()
	// 200x100 becomes 100x50, centered vertically on black
	test.That(t, frame.RGBAAt(50, 10), test.ShouldResemble, color.RGBA{A: 255})
	test.That(t, frame.RGBAAt(50, 50), test.ShouldResemble, color.RGBA{R: 255, A: 255})
	test.That(t, frame.RGBAAt(50, 90), test.ShouldResemble, color.RGBA{A: 255})
}

type brokenScreen struct {
	*virtual.Screen
	fail bool
}

func (b *brokenScreen) DrawBitmap(at image.Point, img image.Image) error {
	if b.fail {
		return errors.New("cable")
	}
	return b.Screen.DrawBitmap(at, img)
}

func TestScreenRedrawsAfterFailure(t *testing.T) {
	dev := &brokenScreen{Screen: virtual.New(64, 64, zap.NewNop())}
	r := NewScreen(dev, zap.NewNop())
	canvas := image.NewRGBA(image.Rect(0, 0, 64, 64))

	test.That(t, r.Render(canvas, canvas.Bounds()), test.ShouldBeNil)
	test.That(t, dev.Draws(), test.ShouldHaveLength, 4)

	dev.fail = true
	canvas.SetRGBA(1, 1, color.RGBA{G: 255, A: 255})
	test.That(t, r.Render(canvas, image.Rect(1, 1, 2, 2)), test.ShouldNotBeNil)

	dev.fail = false
	test.That(t, r.Render(canvas, image.Rect(1, 1, 2, 2)), test.ShouldBeNil)
	test.That(t, dev.Draws(), test.ShouldHaveLength, 4)
}
