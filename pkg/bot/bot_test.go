package bot

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.viam.com/test"

	"urpaint/pkg/device/virtual"
	"urpaint/pkg/editor"
	"urpaint/pkg/session"
)

var (
	black  = color.RGBA{A: 255}
	red    = color.RGBA{R: 255, A: 255}
	orange = color.RGBA{R: 255, G: 165, A: 255}
)

type memorySink struct {
	names []string
}

func (m *memorySink) Store(_ image.Image, name string) (string, error) {
	m.names = append(m.names, name)
	return "mem/" + name, nil
}

type result struct {
	saved string
	err   error
}

func newBot(t *testing.T, out *memorySink) (*Bot, <-chan result) {
	t.Helper()
	ed := editor.New(image.NewRGBA(image.Rect(0, 0, 60, 40)), editor.WithSink(out))
	s := session.New(ed, zap.NewNop())

	done := make(chan result, 1)
	go func() {
		saved, err := s.Run(context.Background())
		done <- result{saved, err}
	}()

	return &Bot{s: s, out: out, log: zap.NewNop(), timeout: time.Second}, done
}

func pixel(t *testing.T, b *Bot, x, y int) color.RGBA {
	t.Helper()
	data, err := b.Picture()
	test.That(t, err, test.ShouldBeNil)
	img, err := png.Decode(bytes.NewReader(data))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 60, 40))
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestParsePoints(t *testing.T) {
	pts, err := ParsePoints(" 3 4  10 -2 ")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pts, test.ShouldResemble, []image.Point{image.Pt(3, 4), image.Pt(10, -2)})

	for _, in := range []string{"", "3", "3 4 5", "a 4", "3 b"} {
		_, err := ParsePoints(in)
		test.That(t, errors.Is(err, ErrNeedPoints), test.ShouldBeTrue)
	}
}

func TestPaintCommands(t *testing.T) {
	out := &memorySink{}
	b, done := newBot(t, out)

	test.That(t, b.Dot("10 10"), test.ShouldBeNil)
	test.That(t, pixel(t, b, 10, 10), test.ShouldResemble, red)

	test.That(t, b.Color(), test.ShouldBeNil)
	test.That(t, b.Stroke("40 20 45 20 50 20"), test.ShouldBeNil)
	test.That(t, pixel(t, b, 45, 20), test.ShouldResemble, orange)

	test.That(t, b.Undo(), test.ShouldBeNil)
	test.That(t, pixel(t, b, 45, 20), test.ShouldResemble, black)
	test.That(t, pixel(t, b, 10, 10), test.ShouldResemble, red)

	test.That(t, b.Undo(), test.ShouldBeNil)
	test.That(t, pixel(t, b, 10, 10), test.ShouldResemble, black)

	// empty history is fine
	test.That(t, b.Undo(), test.ShouldBeNil)

	test.That(t, b.Quit(""), test.ShouldBeNil)
	test.That(t, (<-done).err, test.ShouldBeNil)
}

func TestPaintCommandsRejectBadPayloads(t *testing.T) {
	b, _ := newBot(t, &memorySink{})

	test.That(t, errors.Is(b.Dot(""), ErrNeedPoints), test.ShouldBeTrue)
	test.That(t, b.Dot("1 2 3 4"), test.ShouldNotBeNil)
	test.That(t, errors.Is(b.Stroke("1 2 3"), ErrNeedPoints), test.ShouldBeTrue)
	test.That(t, pixel(t, b, 1, 2), test.ShouldResemble, black)
}

func TestSaveKeepsPainting(t *testing.T) {
	out := &memorySink{}
	b, done := newBot(t, out)

	saved, err := b.Save("draft")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, saved, test.ShouldEqual, "mem/draft")

	test.That(t, b.Dot("5 5"), test.ShouldBeNil)

	test.That(t, b.Quit("final"), test.ShouldBeNil)
	res := <-done
	test.That(t, res.err, test.ShouldBeNil)
	test.That(t, res.saved, test.ShouldEqual, "mem/final")
	test.That(t, out.names, test.ShouldResemble, []string{"draft", "final"})

	test.That(t, errors.Is(b.Dot("1 1"), session.ErrClosed), test.ShouldBeTrue)
}

func TestLight(t *testing.T) {
	b, _ := newBot(t, &memorySink{})
	test.That(t, b.Light("50"), test.ShouldNotBeNil)

	dev := virtual.New(10, 10, zap.NewNop())
	WithScreen(dev)(b)

	test.That(t, b.Light(" 40 "), test.ShouldBeNil)
	test.That(t, dev.Light(), test.ShouldEqual, uint8(40))
	test.That(t, b.Light("150"), test.ShouldNotBeNil)
	test.That(t, b.Light("dim"), test.ShouldNotBeNil)
	test.That(t, dev.Light(), test.ShouldEqual, uint8(40))
}
