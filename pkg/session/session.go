package session

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"urpaint/pkg/editor"
)

var ErrClosed = errors.New("session closed")

// New wraps ed so that producers on other goroutines can feed it. Only the
// goroutine running Run touches the editor.
func New(ed *editor.Editor, logger *zap.Logger) *Session {
	return &Session{
		ed:   ed,
		in:   make(chan request),
		done: make(chan struct{}),
		log:  logger,
	}
}

type Session struct {
	ed   *editor.Editor
	in   chan request
	done chan struct{}
	log  *zap.Logger
}

type request struct {
	ev    *editor.Event
	fn    func(ed *editor.Editor) error
	reply chan error
}

// Run processes requests one at a time until an Exit event succeeds or ctx
// ends. It returns where the picture was stored.
func (s *Session) Run(ctx context.Context) (string, error) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("session-cancelled")
			return "", ctx.Err()
		case req := <-s.in:
			if req.fn != nil {
				req.reply <- req.fn(s.ed)
				continue
			}

			if req.ev.Kind == editor.Exit {
				saved, err := s.ed.OnExit(req.ev.Name)
				req.reply <- err
				if err == nil {
					return saved, nil
				}
				continue
			}

			err := s.ed.Handle(*req.ev)
			if err != nil {
				s.log.With(zap.Stringer("event", req.ev), zap.Error(err)).Info("event-failed")
			}
			req.reply <- err
		}
	}
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) submit(ctx context.Context, req request) error {
	req.reply = make(chan error, 1)

	select {
	case s.in <- req:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// Run always answers a request it has taken
	return <-req.reply
}

// Send hands ev to the editor and waits until it has been processed.
func (s *Session) Send(ctx context.Context, ev editor.Event) error {
	return s.submit(ctx, request{ev: &ev})
}

// Do runs fn on the session goroutine, between two events.
func (s *Session) Do(ctx context.Context, fn func(ed *editor.Editor) error) error {
	return s.submit(ctx, request{fn: fn})
}

// Snapshot returns a copy of the canvas with every event sent so far applied.
func (s *Session) Snapshot(ctx context.Context) (*image.RGBA, error) {
	var img *image.RGBA
	err := s.Do(ctx, func(ed *editor.Editor) error {
		img = ed.Snapshot()
		return nil
	})
	return img, err
}

// Replay sends events in order and stops at the first failure.
func (s *Session) Replay(ctx context.Context, events []editor.Event) error {
	for _, ev := range events {
		if err := s.Send(ctx, ev); err != nil {
			return errors.Wrapf(err, "replay %s", ev)
		}
	}
	return nil
}

// Play replays events, then asks to save as name in case the script did not
// exit itself. A failing save ends the session and its error is returned.
func (s *Session) Play(ctx context.Context, events []editor.Event, name string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	failed := make(chan error, 1)
	go func() {
		if err := s.Replay(ctx, events); err != nil {
			s.log.With(zap.Error(err)).Warn("replay-stopped")
		}

		if err := s.Send(ctx, editor.ExitAs(name)); err != nil && !errors.Is(err, ErrClosed) {
			failed <- err
			cancel()
		}
	}()

	saved, err := s.Run(ctx)
	if err != nil {
		select {
		case exitErr := <-failed:
			return "", exitErr
		default:
		}
	}
	return saved, err
}
