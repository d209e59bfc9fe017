package sink

import (
	"fmt"
	"image"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Sink persists a finished picture and reports where it went.
type Sink interface {
	Store(img image.Image, name string) (string, error)
}

func Discard() Sink {
	return discard{}
}

type discard struct{}

func (discard) Store(image.Image, string) (string, error) {
	return "", nil
}

type Option func(f *File)

// WithPrefix sets the prefix of generated names, "coloring" by default.
func WithPrefix(prefix string) Option {
	return func(f *File) {
		f.prefix = prefix
	}
}

func WithClock(now func() time.Time) Option {
	return func(f *File) {
		f.now = now
	}
}

// NewFile stores pictures under dir of fs. The encoding follows the file
// extension, names without one are saved as PNG.
func NewFile(fs afero.Fs, dir string, logger *zap.Logger, opts ...Option) *File {
	f := &File{
		fs:     fs,
		dir:    dir,
		log:    logger,
		prefix: "coloring",
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

type File struct {
	fs     afero.Fs
	dir    string
	log    *zap.Logger
	prefix string
	now    func() time.Time
}

func (f *File) filename(name string) string {
	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = fmt.Sprintf("%s_%d", f.prefix, f.now().Unix())
	}
	// anything that is not a known image extension is part of the name
	if _, err := imaging.FormatFromFilename(name); err != nil {
		name += ".png"
	}
	return name
}

func (f *File) Store(img image.Image, name string) (string, error) {
	file := f.filename(name)

	format, err := imaging.FormatFromFilename(file)
	if err != nil {
		return "", fmt.Errorf("store %s failed: %w", file, err)
	}

	if exists, err := afero.DirExists(f.fs, f.dir); err != nil {
		return "", err
	} else if !exists {
		if err2 := f.fs.MkdirAll(f.dir, 0755); err2 != nil {
			return "", err2
		}
	}

	full := filepath.Join(f.dir, file)
	if exists, err := afero.Exists(f.fs, full); err != nil {
		return "", err
	} else if exists {
		ext := path.Ext(file)
		full = filepath.Join(f.dir, fmt.Sprintf("%s-%s%s", strings.TrimSuffix(file, ext), xid.New().String(), ext))
	}

	w, err := f.fs.Create(full)
	if err != nil {
		return "", fmt.Errorf("store %s failed: %w", file, err)
	}

	if err := imaging.Encode(w, img, format); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("encode %s failed: %w", file, err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	f.log.With(zap.String("path", full)).Debug("picture-saved")
	return full, nil
}
