package bitmap

import (
	"image"
	"image/color"
)

// Encode converts src to little endian RGB565, row by row.
func Encode(src image.Image) []byte {
	b := src.Bounds()
	dst := NewRGB565(image.Rect(0, 0, b.Dx(), b.Dy()))

	if rgba, ok := src.(*image.RGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := rgba.Pix[rgba.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < b.Dx(); x++ {
				p := row[4*x : 4*x+4]
				dst.put(x, y, toRGB565(uint32(p[0])*0x101, uint32(p[1])*0x101, uint32(p[2])*0x101))
			}
		}
		return dst.pixels
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
	return dst.pixels
}

func NewRGB565(r image.Rectangle) *RGB565 {
	return &RGB565{
		pixels: make([]byte, 2*r.Dx()*r.Dy()),
		stride: 2 * r.Dx(),
		bounds: r,
	}
}

// RGB565 is a draw.Image laid out the way the serial screens expect it:
// 16 bits per pixel, RRRRRGGG GGGBBBBB, low byte first.
type RGB565 struct {
	pixels []byte
	stride int
	bounds image.Rectangle
}

func (d *RGB565) Bounds() image.Rectangle {
	return d.bounds
}

func (d *RGB565) ColorModel() color.Model {
	return Model
}

func (d *RGB565) Pix() []byte {
	return d.pixels
}

func (d *RGB565) At(x, y int) color.Color {
	if !image.Pt(x, y).In(d.bounds) {
		return Color(0)
	}
	i := d.offset(x, y)
	return Color(d.pixels[i+1])<<8 | Color(d.pixels[i])
}

func (d *RGB565) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(d.bounds) {
		return
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return
	}
	d.put(x, y, toRGB565(r, g, b))
}

func (d *RGB565) put(x, y int, c Color) {
	i := d.offset(x, y)
	d.pixels[i+1] = byte(c >> 8)
	d.pixels[i] = byte(c & 0xFF)
}

func (d *RGB565) offset(x, y int) int {
	return (y-d.bounds.Min.Y)*d.stride + 2*(x-d.bounds.Min.X)
}

var Model = color.ModelFunc(func(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return toRGB565(r, g, b)
})

// toRGB565 keeps the top 5, 6 and 5 bits of the 16 bit channels.
func toRGB565(r, g, b uint32) Color {
	return Color((r & 0xF800) +
		((g & 0xFC00) >> 5) +
		((b & 0xF800) >> 11))
}

// Color is an opaque RGB565 pixel.
type Color uint16

// RGBA widens each channel by repeating its bit pattern, so all zeros and
// all ones map to 0 and 0xFFFF.
func (c Color) RGBA() (r, g, b, a uint32) {
	rBits := uint32(c & 0xF800)
	gBits := uint32(c & 0x7E0)
	bBits := uint32(c & 0x1F)
	r = rBits | rBits>>5 | rBits>>10 | rBits>>15
	g = gBits<<5 | gBits>>1 | gBits>>7
	b = bBits<<11 | bBits<<6 | bBits<<1 | bBits>>4
	a = 0xFFFF
	return
}
