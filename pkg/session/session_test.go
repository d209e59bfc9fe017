package session

import (
	"context"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.viam.com/test"

	"urpaint/pkg/editor"
	"urpaint/pkg/sink"
)

type result struct {
	saved string
	err   error
}

func start(t *testing.T, ctx context.Context, ed *editor.Editor) (*Session, <-chan result) {
	t.Helper()
	s := New(ed, zap.NewNop())
	out := make(chan result, 1)
	go func() {
		saved, err := s.Run(ctx)
		out <- result{saved, err}
	}()
	return s, out
}

type nameSink struct{}

func (nameSink) Store(_ image.Image, name string) (string, error) {
	return "stored/" + name, nil
}

func TestSendAndSnapshot(t *testing.T) {
	ctx := context.Background()
	ed := editor.New(image.NewRGBA(image.Rect(0, 0, 40, 40)), editor.WithSink(nameSink{}))
	s, out := start(t, ctx, ed)

	test.That(t, s.Replay(ctx, editor.Stroke(image.Pt(20, 20), image.Pt(22, 22))), test.ShouldBeNil)

	img, err := s.Snapshot(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.RGBAAt(20, 20), test.ShouldResemble, color.RGBA{R: 255, A: 255})

	// the snapshot is a copy
	test.That(t, s.Send(ctx, editor.UndoLast()), test.ShouldBeNil)
	test.That(t, img.RGBAAt(20, 20), test.ShouldResemble, color.RGBA{R: 255, A: 255})

	test.That(t, s.Send(ctx, editor.ExitAs("pic")), test.ShouldBeNil)
	res := <-out
	test.That(t, res.err, test.ShouldBeNil)
	test.That(t, res.saved, test.ShouldEqual, "stored/pic")

	test.That(t, s.Send(ctx, editor.UndoLast()), test.ShouldBeError, ErrClosed)
}

func TestConcurrentProducers(t *testing.T) {
	ctx := context.Background()
	ed := editor.New(image.NewRGBA(image.Rect(0, 0, 100, 100)), editor.WithHistoryLimit(0))
	s, out := start(t, ctx, ed)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = s.Send(ctx, editor.NextColor())
			}
		}(i)
	}
	wg.Wait()

	var n int
	test.That(t, s.Do(ctx, func(ed *editor.Editor) error {
		n = ed.Palette().Index()
		return nil
	}), test.ShouldBeNil)
	test.That(t, n, test.ShouldEqual, 80%ed.Palette().Len())

	test.That(t, s.Send(ctx, editor.ExitAs("")), test.ShouldBeNil)
	test.That(t, (<-out).err, test.ShouldBeNil)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ed := editor.New(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	s, out := start(t, ctx, ed)

	cancel()
	select {
	case res := <-out:
		test.That(t, res.err, test.ShouldBeError, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("session did not stop")
	}

	<-s.Done()
	test.That(t, s.Send(context.Background(), editor.UndoLast()), test.ShouldBeError, ErrClosed)
}

func TestFailedEventKeepsRunning(t *testing.T) {
	ctx := context.Background()
	fails := true
	r := editor.RenderFunc(func(*image.RGBA, image.Rectangle) error {
		if fails {
			fails = false
			return context.DeadlineExceeded
		}
		return nil
	})
	ed := editor.New(image.NewRGBA(image.Rect(0, 0, 10, 10)), editor.WithRenderer(r))
	s, out := start(t, ctx, ed)

	test.That(t, s.Send(ctx, editor.PressAt(1, 1)), test.ShouldNotBeNil)
	test.That(t, s.Send(ctx, editor.ReleaseAt(1, 1)), test.ShouldBeNil)

	test.That(t, s.Send(ctx, editor.ExitAs("")), test.ShouldBeNil)
	test.That(t, (<-out).err, test.ShouldBeNil)
}

func TestPlaySavesScriptWithoutExit(t *testing.T) {
	ed := editor.New(image.NewRGBA(image.Rect(0, 0, 40, 40)), editor.WithSink(nameSink{}))
	s := New(ed, zap.NewNop())

	saved, err := s.Play(context.Background(), editor.Stroke(image.Pt(5, 5), image.Pt(9, 9)), "dots")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, saved, test.ShouldEqual, "stored/dots")
	test.That(t, ed.Exited(), test.ShouldBeTrue)
}

func TestPlayKeepsScriptExitName(t *testing.T) {
	ed := editor.New(image.NewRGBA(image.Rect(0, 0, 40, 40)), editor.WithSink(nameSink{}))
	s := New(ed, zap.NewNop())

	events := append(editor.Stroke(image.Pt(5, 5)), editor.ExitAs("from-script"))
	saved, err := s.Play(context.Background(), events, "fallback")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, saved, test.ShouldEqual, "stored/from-script")
}

func TestPlayReportsSinkFailure(t *testing.T) {
	readOnly := sink.NewFile(afero.NewReadOnlyFs(afero.NewMemMapFs()), "out", zap.NewNop())
	ed := editor.New(image.NewRGBA(image.Rect(0, 0, 40, 40)), editor.WithSink(readOnly))
	s := New(ed, zap.NewNop())

	out := make(chan result, 1)
	go func() {
		saved, err := s.Play(context.Background(), editor.Stroke(image.Pt(5, 5)), "pic")
		out <- result{saved, err}
	}()

	select {
	case res := <-out:
		test.That(t, res.err, test.ShouldNotBeNil)
		test.That(t, res.err, test.ShouldNotEqual, context.Canceled)
		test.That(t, res.saved, test.ShouldBeEmpty)
	case <-time.After(2 * time.Second):
		t.Fatal("save failure never reached the caller")
	}

	test.That(t, ed.Exited(), test.ShouldBeFalse)
	test.That(t, ed.HistoryLen(), test.ShouldEqual, 1)
}
