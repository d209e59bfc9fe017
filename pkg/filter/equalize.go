package filter

import (
	"image"
)

// equalize spreads the gray levels of img over the full 0-255 range in place.
func equalize(img *image.Gray) {
	var hist [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}

	total := b.Dx() * b.Dy()
	var cdf [256]int
	acc, low := 0, -1
	for i, n := range hist {
		acc += n
		cdf[i] = acc
		if low < 0 && n > 0 {
			low = acc
		}
	}
	if total == 0 || total == low {
		return
	}

	var lut [256]uint8
	for i := range lut {
		if cdf[i] < low {
			continue
		}
		lut[i] = uint8(((cdf[i]-low)*255 + (total-low)/2) / (total - low))
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := (y - b.Min.Y) * img.Stride
		for x := 0; x < b.Dx(); x++ {
			img.Pix[off+x] = lut[img.Pix[off+x]]
		}
	}
}
