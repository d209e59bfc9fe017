package main

import (
	"log"
	"os"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"urpaint/pkg/batch"
	"urpaint/pkg/filter"
	"urpaint/pkg/sink"
)

var in = flag.String("in", ".", "directory of photos")
var out = flag.String("out", "pages", "output directory")
var mode = flag.String("filter", "coloring", "filter: coloring, sketch or none")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	var logger *zap.Logger
	if *debug {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}

	stage, err := filter.ByName(*mode)
	if err != nil {
		log.Fatal(err)
	}

	fs := afero.NewOsFs()
	c := batch.New(fs, stage, sink.NewFile(fs, *out, logger), logger, batch.WithProgress(os.Stderr))

	stored, failed, err := c.Dir(*in)
	if err != nil {
		log.Fatal(err)
	}

	logger.With(zap.Int("stored", len(stored)), zap.Int("failed", len(failed))).Info("batch-done")
	for _, f := range failed {
		logger.With(zap.Error(f)).Warn("skipped")
	}
	if len(failed) > 0 {
		os.Exit(1)
	}
}
