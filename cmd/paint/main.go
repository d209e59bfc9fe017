package main

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"urpaint/pkg/bot"
	"urpaint/pkg/editor"
	"urpaint/pkg/filter"
	"urpaint/pkg/palette"
	"urpaint/pkg/proto"
	"urpaint/pkg/render"
	"urpaint/pkg/script"
	"urpaint/pkg/session"
	"urpaint/pkg/sink"
	"urpaint/pkg/source"
	"urpaint/pkg/source/webcam"
	"urpaint/pkg/window"
)

var device = flag.Int("webcam", 0, "webcam device index")
var file = flag.String("file", "", "start from a picture file")
var url = flag.String("url", "", "start from a picture url")
var blank = flag.String("blank", "", "start from a blank WxH canvas")
var mode = flag.String("filter", "coloring", "filter: coloring, sketch or none")
var colors = flag.String("palette", "", "comma separated hex colors")
var radius = flag.Int("radius", editor.DefaultRadius, "brush radius")
var keep = flag.Int("history", editor.DefaultHistoryLimit, "undo steps kept, 0 keeps all")
var out = flag.String("out", ".", "save directory")
var name = flag.String("name", "", "save name, timestamped when empty")
var scriptPath = flag.String("script", "", "replay events from a script instead of opening a window")
var tgToken = flag.String("tg-token", "", "paint through a telegram bot, TG_TOKEN by default")
var serial = flag.String("serial", "", "mirror on a serial screen name, remote addr or virtual:WxH")
var light = flag.Uint8("light", 100, "set screen light")
var landscape = flag.Bool("landscape", false, "set screen landscape")
var invert = flag.Bool("invert", false, "set screen invert")
var debug = flag.Bool("debug", false, "set debug")

func newLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	return logger
}

func acquire(fs afero.Fs, logger *zap.Logger) (image.Image, error) {
	switch {
	case *blank != "":
		var w, h int
		if _, err := fmt.Sscanf(*blank, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
			return nil, fmt.Errorf("bad canvas size %q, want WxH", *blank)
		}
		return source.First(source.Blank(w, h, color.Black))
	case *file != "":
		return source.First(source.File(fs, *file))
	case *url != "":
		return source.First(source.URL(*url, logger))
	}
	return capture(fs, logger)
}

// capture previews the webcam until a frame is picked, then stores that frame
// before it gets filtered.
func capture(fs afero.Fs, logger *zap.Logger) (image.Image, error) {
	cam, err := webcam.Open(*device, logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cam.Close() }()

	window := gocv.NewWindow("urpaint capture")
	frame, err := webcam.Pick(cam, window)
	_ = window.Close()
	if err != nil {
		return nil, fmt.Errorf("acquire frame failed: %w", err)
	}

	name, err := sink.Ask(bufio.NewReader(os.Stdin), os.Stdout, "save capture as (empty for a timestamped name): ")
	if err != nil {
		return nil, err
	}

	photos := sink.NewFile(fs, *out, logger, sink.WithPrefix("webcam_screenshot"))
	if saved, err := photos.Store(frame, name); err != nil {
		logger.With(zap.Error(err)).Warn("capture-save-failed")
	} else {
		logger.With(zap.String("path", saved)).Info("capture-saved")
	}

	return frame, nil
}

func initialImage(fs afero.Fs, logger *zap.Logger) (image.Image, error) {
	stage, err := filter.ByName(*mode)
	if err != nil {
		return nil, err
	}

	frame, err := acquire(fs, logger)
	if err != nil {
		return nil, err
	}

	logger.With(zap.String("filter", stage.Name()), zap.Stringer("size", frame.Bounds().Size())).Debug("frame-acquired")
	return stage.Apply(frame), nil
}

func main() {
	_ = godotenv.Load()
	flag.Parse()

	if *tgToken == "" {
		*tgToken = os.Getenv("TG_TOKEN")
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	fs := afero.NewOsFs()

	initial, err := initialImage(fs, logger)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("acquire failed")
	}

	pal := palette.Default()
	if *colors != "" {
		if pal, err = palette.Parse(*colors); err != nil {
			logger.With(zap.Error(err)).Fatal("palette failed")
		}
	}

	store := sink.NewFile(fs, *out, logger)

	var renderers []editor.Renderer
	var dev proto.Screen

	if *serial != "" {
		if dev, err = openScreen(*serial, logger); err != nil {
			logger.With(zap.Error(err)).Fatal("screen failed")
		}
		defer func() {
			if err := dev.Shutdown(); err != nil {
				logger.With(zap.Error(err)).Info("shutdown failed")
			}
		}()
		renderers = append(renderers, render.NewScreen(dev, logger))
	}

	var win *window.Window
	if *scriptPath == "" && *tgToken == "" {
		win = window.New("urpaint", logger)
		renderers = append(renderers, win)
	}

	ed := editor.New(initial,
		editor.WithPalette(pal),
		editor.WithRadius(*radius),
		editor.WithHistoryLimit(*keep),
		editor.WithRenderer(editor.Renderers(renderers...)),
		editor.WithSink(store),
		editor.WithLogger(logger),
	)

	var saved string
	switch {
	case win != nil:
		saved, err = win.Run(ed)
	case *scriptPath != "":
		saved, err = replay(fs, ed, logger)
	default:
		saved, err = remoteControl(ed, store, dev, logger)
	}

	if err != nil {
		logger.With(zap.Error(err)).Fatal("paint failed")
	}
	logger.With(zap.String("path", saved)).Info("saved")
}

func replay(fs afero.Fs, ed *editor.Editor, logger *zap.Logger) (string, error) {
	events, err := script.Load(fs, *scriptPath)
	if err != nil {
		return "", err
	}

	return session.New(ed, logger).Play(context.Background(), events, *name)
}

func remoteControl(ed *editor.Editor, store sink.Sink, dev proto.Screen, logger *zap.Logger) (string, error) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s := session.New(ed, logger)
	var opts []bot.Option
	if dev != nil {
		opts = append(opts, bot.WithScreen(dev))
	}

	b, err := bot.New(*tgToken, s, store, logger, opts...)
	if err != nil {
		return "", err
	}
	b.Start()
	defer b.Stop()

	logger.Info("waiting for telegram commands")
	return s.Run(ctx)
}
