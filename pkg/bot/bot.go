// Package bot drives a painting session from Telegram chat commands.
package bot

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"urpaint/pkg/editor"
	"urpaint/pkg/proto"
	"urpaint/pkg/session"
	"urpaint/pkg/sink"
)

var ErrNeedPoints = errors.New("want pairs of x y")

type Option func(b *Bot)

// WithScreen enables /light for the attached screen.
func WithScreen(dev proto.Screen) Option {
	return func(b *Bot) {
		b.dev = dev
	}
}

func WithTimeout(d time.Duration) Option {
	return func(b *Bot) {
		b.timeout = d
	}
}

func New(token string, s *session.Session, out sink.Sink, logger *zap.Logger, opts ...Option) (*Bot, error) {
	pref := tele.Settings{
		Token: token,
		Poller: &tele.LongPoller{
			Timeout: 30 * time.Second,
		},
	}

	tb, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create bot failed: %w", err)
	}

	b := &Bot{
		b:       tb,
		s:       s,
		out:     out,
		log:     logger,
		timeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

type Bot struct {
	b       *tele.Bot
	s       *session.Session
	out     sink.Sink
	dev     proto.Screen
	log     *zap.Logger
	timeout time.Duration
}

func (b *Bot) send(events ...editor.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	return b.s.Replay(ctx, events)
}

func (b *Bot) snapshot() (*image.RGBA, error) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	return b.s.Snapshot(ctx)
}

func (b *Bot) reply(c tele.Context, action string, err error) error {
	if err != nil {
		b.log.With(zap.String("action", action), zap.Error(err)).Info("command-failed")
		return c.Reply(fmt.Sprintf("%s failed: %s", action, err))
	}
	return c.Reply("OK")
}

// Dot paints a single dot at "x y".
func (b *Bot) Dot(payload string) error {
	pts, err := ParsePoints(payload)
	if err != nil {
		return err
	}
	if len(pts) != 1 {
		return errors.New("want x y")
	}
	return b.send(editor.Stroke(pts...)...)
}

// Stroke paints one stroke through "x1 y1 x2 y2 ...".
func (b *Bot) Stroke(payload string) error {
	pts, err := ParsePoints(payload)
	if err != nil {
		return err
	}
	return b.send(editor.Stroke(pts...)...)
}

func (b *Bot) Color() error {
	return b.send(editor.NextColor())
}

func (b *Bot) Undo() error {
	return b.send(editor.UndoLast())
}

// Picture encodes the current canvas as PNG.
func (b *Bot) Picture() ([]byte, error) {
	img, err := b.snapshot()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save stores the current canvas and keeps painting.
func (b *Bot) Save(name string) (string, error) {
	img, err := b.snapshot()
	if err != nil {
		return "", err
	}
	return b.out.Store(img, name)
}

// Quit saves as name and ends the session.
func (b *Bot) Quit(name string) error {
	return b.send(editor.ExitAs(name))
}

func (b *Bot) Light(payload string) error {
	if b.dev == nil {
		return errors.New("no screen attached")
	}
	level, err := strconv.ParseUint(strings.TrimSpace(payload), 10, 8)
	if err != nil || level > 100 {
		return errors.New("want a level from 0 to 100")
	}
	return b.dev.SetLight(uint8(level))
}

func (b *Bot) handlePaint() {
	b.b.Handle("/dot", func(c tele.Context) error {
		return b.reply(c, "dot", b.Dot(c.Message().Payload))
	})

	b.b.Handle("/stroke", func(c tele.Context) error {
		return b.reply(c, "stroke", b.Stroke(c.Message().Payload))
	})

	b.b.Handle("/color", func(c tele.Context) error {
		return b.reply(c, "color", b.Color())
	})

	b.b.Handle("/undo", func(c tele.Context) error {
		return b.reply(c, "undo", b.Undo())
	})
}

func (b *Bot) handleOutput() {
	b.b.Handle("/show", func(c tele.Context) error {
		data, err := b.Picture()
		if err != nil {
			return b.reply(c, "show", err)
		}

		size := bytesize.New(float64(len(data)))
		b.log.With(zap.Stringer("size", size)).Debug("send-picture")

		return c.Reply(&tele.Photo{
			File:    tele.FromReader(bytes.NewReader(data)),
			Caption: size.String(),
		})
	})

	b.b.Handle("/save", func(c tele.Context) error {
		saved, err := b.Save(c.Message().Payload)
		if err != nil {
			return b.reply(c, "save", err)
		}
		return c.Reply(fmt.Sprintf("Saved to %s", saved))
	})

	b.b.Handle("/quit", func(c tele.Context) error {
		if err := b.Quit(c.Message().Payload); err != nil {
			return b.reply(c, "quit", err)
		}
		return c.Reply("Bye")
	})
}

func (b *Bot) handleScreen() {
	if b.dev == nil {
		return
	}

	b.b.Handle("/light", func(c tele.Context) error {
		return b.reply(c, "light", b.Light(c.Message().Payload))
	})
}

// ParsePoints reads "x1 y1 x2 y2 ..." as points.
func ParsePoints(payload string) ([]image.Point, error) {
	fields := strings.Fields(payload)
	if len(fields) == 0 || len(fields)%2 != 0 {
		return nil, ErrNeedPoints
	}

	pts := make([]image.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, errors.Wrapf(ErrNeedPoints, "bad x %q", fields[i])
		}
		y, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, errors.Wrapf(ErrNeedPoints, "bad y %q", fields[i+1])
		}
		pts = append(pts, image.Pt(x, y))
	}
	return pts, nil
}

func (b *Bot) Start() {
	b.handlePaint()
	b.handleOutput()
	b.handleScreen()
	go b.b.Start()
}

func (b *Bot) Stop() {
	// telebot blocks until the pending poll returns
	go b.b.Stop()
}
