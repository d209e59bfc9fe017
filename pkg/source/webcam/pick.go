package webcam

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

var ErrCancelled = errors.New("capture cancelled")

var hint = color.RGBA{G: 255, A: 255}

// Pick shows the live camera in window until the user presses p, which
// returns the frame on screen, or q, which returns ErrCancelled.
func Pick(cam *Webcam, window *gocv.Window) (image.Image, error) {
	for {
		if err := cam.Read(); err != nil {
			return nil, err
		}

		preview := cam.Mat().Clone()
		gocv.PutText(&preview, "p: capture  q: quit", image.Pt(10, 24), gocv.FontHersheyPlain, 1.4, hint, 2)
		window.IMShow(preview)
		_ = preview.Close()

		switch window.WaitKey(1) {
		case 'q':
			return nil, ErrCancelled
		case 'p':
			return cam.Image()
		}
	}
}
