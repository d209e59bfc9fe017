// Package batch turns a directory of photos into printable coloring pages.
package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"urpaint/pkg/filter"
	"urpaint/pkg/sink"
	"urpaint/pkg/source"
)

var extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff"}

type Option func(c *Converter)

// WithProgress reports each converted file on w.
func WithProgress(w io.Writer) Option {
	return func(c *Converter) {
		c.progress = w
	}
}

func New(fs afero.Fs, stage filter.Stage, out sink.Sink, logger *zap.Logger, opts ...Option) *Converter {
	c := &Converter{
		fs:    fs,
		stage: stage,
		out:   out,
		log:   logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type Converter struct {
	fs       afero.Fs
	stage    filter.Stage
	out      sink.Sink
	log      *zap.Logger
	progress io.Writer
}

// Failure is a file that could not be converted.
type Failure struct {
	Path string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Path, f.Err)
}

// Pictures lists the picture files directly under dir, sorted by name.
func (c *Converter) Pictures(dir string) ([]string, error) {
	infos, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read dir failed: %w", err)
	}

	infos = lo.Filter(infos, func(fi os.FileInfo, _ int) bool {
		return !fi.IsDir() && lo.Contains(extensions, strings.ToLower(filepath.Ext(fi.Name())))
	})
	return lo.Map(infos, func(fi os.FileInfo, _ int) string {
		return filepath.Join(dir, fi.Name())
	}), nil
}

// Dir converts every picture under dir. A broken file does not stop the
// others, failures are returned with the stored paths.
func (c *Converter) Dir(dir string) ([]string, []Failure, error) {
	paths, err := c.Pictures(dir)
	if err != nil {
		return nil, nil, err
	}

	var bar *progressbar.ProgressBar
	if c.progress != nil {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetWriter(c.progress),
			progressbar.OptionSetDescription(c.stage.Name()),
			progressbar.OptionShowCount(),
		)
	}

	var stored []string
	var failed []Failure

	for _, path := range paths {
		saved, err := c.File(path)
		if err != nil {
			c.log.With(zap.String("path", path), zap.Error(err)).Info("convert-failed")
			failed = append(failed, Failure{Path: path, Err: err})
		} else {
			stored = append(stored, saved)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return stored, failed, nil
}

// File converts one picture and stores it as a PNG named after the source.
func (c *Converter) File(path string) (string, error) {
	img, err := source.Open(c.fs, path)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return c.out.Store(c.stage.Apply(img), fmt.Sprintf("%s_%s.png", base, c.stage.Name()))
}
