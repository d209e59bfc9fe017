package source

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// URL downloads a single picture.
func URL(url string, logger *zap.Logger) Source {
	return &remote{
		cli: resty.New().SetDoNotParseResponse(true),
		url: url,
		log: logger,
	}
}

type remote struct {
	cli  *resty.Client
	url  string
	log  *zap.Logger
	done bool
}

func (r *remote) Next() (image.Image, error) {
	if r.done {
		return nil, ErrEndOfStream
	}
	r.done = true

	resp, err := r.cli.R().Get(r.url)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.StatusCode() >= 400 {
		return nil, errors.Errorf("download failed: %s", resp.Status())
	}

	var buf bytes.Buffer
	var w io.Writer = &buf
	if r.log.Core().Enabled(zap.DebugLevel) {
		w = io.MultiWriter(&buf, progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", r.url)))
	}

	if _, err := io.Copy(w, resp.RawBody()); err != nil {
		return nil, err
	}

	r.log.With(zap.String("url", r.url), zap.Int("size", buf.Len())).Debug("downloaded")

	img, err := imaging.Decode(&buf, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s failed: %w", r.url, err)
	}
	return img, nil
}
