package filter

import (
	"image"
	"image/color"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
)

// Sketch renders a pencil drawing by color-dodging the gray picture with its
// blurred negative.
func Sketch() Stage {
	return &sketch{sigma: 3.5}
}

type sketch struct {
	sigma float32
}

func (f *sketch) Name() string {
	return "sketch"
}

func (f *sketch) Apply(src image.Image) *image.RGBA {
	in := imaging.Clone(src)
	b := in.Bounds()

	gray := image.NewGray(b)
	gift.New(gift.Grayscale()).Draw(gray, in)

	blurInv := image.NewGray(b)
	gift.New(gift.Invert(), gift.GaussianBlur(f.sigma)).Draw(blurInv, gray)

	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := dodge(gray.GrayAt(x, y).Y, blurInv.GrayAt(x, y).Y)
			out.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	return out
}

func dodge(base, blend uint8) uint8 {
	d := 255 - int(blend)
	if d == 0 {
		return 0
	}
	v := (int(base)*256 + d/2) / d
	if v > 255 {
		return 255
	}
	return uint8(v)
}
