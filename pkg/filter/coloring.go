package filter

import (
	"image"
	"image/color"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
)

// Coloring outlines the picture in black and keeps flat, smoothed colors
// between the outlines.
func Coloring() Stage {
	return &coloring{
		median: 7,
		block:  9,
		c:      9,
		smooth: 5,
	}
}

type coloring struct {
	median int
	block  int
	c      int
	smooth int
}

func (f *coloring) Name() string {
	return "coloring"
}

func (f *coloring) Apply(src image.Image) *image.RGBA {
	in := imaging.Clone(src)
	b := in.Bounds()

	gray := image.NewGray(b)
	gift.New(gift.Grayscale()).Draw(gray, in)
	equalize(gray)

	blurred := image.NewGray(b)
	gift.New(gift.Median(f.median, false)).Draw(blurred, gray)

	mean := image.NewGray(b)
	gift.New(gift.Mean(f.block, false)).Draw(mean, blurred)

	// edge-preserving smoothing of the colors between outlines
	smooth := image.NewNRGBA(b)
	gift.New(gift.Median(f.smooth, true)).Draw(smooth, in)

	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// adaptive mean threshold: dark relative to the neighbourhood is an edge
			if int(blurred.GrayAt(x, y).Y) <= int(mean.GrayAt(x, y).Y)-f.c {
				out.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			c := smooth.NRGBAAt(x, y)
			out.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}

	return out
}
