package main

import (
	"bufio"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"urpaint/pkg/filter"
	"urpaint/pkg/sink"
	"urpaint/pkg/source/webcam"
)

var device = flag.Int("webcam", 0, "webcam device index")
var width = flag.Int("width", 640, "frame width")
var height = flag.Int("height", 480, "frame height")
var mode = flag.String("filter", "none", "filter applied to saved pictures: coloring, sketch or none")
var out = flag.String("out", ".", "save directory")
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

func main() {
	flag.Parse()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	stage, err := filter.ByName(*mode)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("filter failed")
	}

	cam, err := webcam.Open(*device, logger, webcam.WithSize(*width, *height))
	if err != nil {
		logger.With(zap.Error(err)).Fatal("webcam failed")
	}
	defer cam.Close()

	window := gocv.NewWindow("capture")
	defer window.Close()

	store := sink.NewFile(afero.NewOsFs(), *out, logger, sink.WithPrefix("webcam_screenshot"))
	stdin := bufio.NewReader(os.Stdin)

	for {
		img, err := webcam.Pick(cam, window)
		if errors.Is(err, webcam.ErrCancelled) {
			return
		}
		if err != nil {
			logger.With(zap.Error(err)).Info("capture failed")
			return
		}

		name, err := sink.Ask(stdin, os.Stdout, "save as (empty for a timestamped name): ")
		if err != nil {
			logger.With(zap.Error(err)).Info("read name failed")
			return
		}

		saved, err := store.Store(stage.Apply(img), name)
		if err != nil {
			logger.With(zap.Error(err)).Warn("save failed")
			continue
		}
		logger.With(zap.String("path", saved)).Info("saved")
	}
}
