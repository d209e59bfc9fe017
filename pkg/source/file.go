package source

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
)

// File yields the decoded pictures at paths, in order.
func File(fs afero.Fs, paths ...string) Source {
	return &file{fs: fs, paths: paths}
}

type file struct {
	fs    afero.Fs
	paths []string
}

func (f *file) Next() (image.Image, error) {
	if len(f.paths) == 0 {
		return nil, ErrEndOfStream
	}
	path := f.paths[0]
	f.paths = f.paths[1:]

	return Open(f.fs, path)
}

// Open decodes a single picture, applying its EXIF orientation.
func Open(fs afero.Fs, path string) (image.Image, error) {
	r, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s failed: %w", path, err)
	}
	return img, nil
}
