// Package webcam reads frames from a local camera through OpenCV.
package webcam

import (
	"fmt"
	"image"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"urpaint/pkg/source"
)

type Option func(w *Webcam)

// WithSize asks the driver for a frame size, drivers may pick the nearest one.
func WithSize(width, height int) Option {
	return func(w *Webcam) {
		w.width = width
		w.height = height
	}
}

func Open(device int, logger *zap.Logger, opts ...Option) (*Webcam, error) {
	w := &Webcam{
		device: device,
		log:    logger.With(zap.Int("device", device)),
	}

	for _, opt := range opts {
		opt(w)
	}

	cam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open webcam failed: %w", err)
	}
	if !cam.IsOpened() {
		_ = cam.Close()
		return nil, fmt.Errorf("open webcam failed: device %d not available", device)
	}

	if w.width > 0 && w.height > 0 {
		cam.Set(gocv.VideoCaptureFrameWidth, float64(w.width))
		cam.Set(gocv.VideoCaptureFrameHeight, float64(w.height))
	}

	w.cam = cam
	w.mat = gocv.NewMat()

	w.log.With(
		zap.Float64("width", cam.Get(gocv.VideoCaptureFrameWidth)),
		zap.Float64("height", cam.Get(gocv.VideoCaptureFrameHeight)),
	).Debug("webcam-opened")

	return w, nil
}

// Webcam implements source.Source.
type Webcam struct {
	device int
	width  int
	height int
	cam    *gocv.VideoCapture
	mat    gocv.Mat
	log    *zap.Logger
}

// Mat exposes the last frame read, for previews drawn with gocv.
func (w *Webcam) Mat() gocv.Mat {
	return w.mat
}

// Read grabs the next frame into Mat without converting it.
func (w *Webcam) Read() error {
	if ok := w.cam.Read(&w.mat); !ok || w.mat.Empty() {
		return source.ErrEndOfStream
	}
	return nil
}

func (w *Webcam) Next() (image.Image, error) {
	if err := w.Read(); err != nil {
		return nil, err
	}
	return w.Image()
}

// Image converts the last frame read.
func (w *Webcam) Image() (image.Image, error) {
	img, err := w.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame failed: %w", err)
	}
	return img, nil
}

func (w *Webcam) Close() error {
	_ = w.mat.Close()
	return w.cam.Close()
}
