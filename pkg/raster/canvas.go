package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrSizeMismatch = errors.New("canvas size mismatch")

// New creates a w*h canvas filled with bg.
func New(w, h int, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opaque(bg)), image.Point{}, draw.Src)
	return &Canvas{img: img}
}

// From copies src into a new canvas whose origin is (0, 0). Transparent
// pixels are flattened onto black, the canvas carries no alpha channel.
func From(src image.Image) *Canvas {
	b := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Over)
	return &Canvas{img: img}
}

// Canvas is an opaque RGB raster with a fixed size.
type Canvas struct {
	img *image.RGBA
	dc  *gg.Context
}

func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

func (c *Canvas) Clone() *Canvas {
	img := &image.RGBA{
		Pix:    make([]uint8, len(c.img.Pix)),
		Stride: c.img.Stride,
		Rect:   c.img.Rect,
	}
	copy(img.Pix, c.img.Pix)
	return &Canvas{img: img}
}

// Restore overwrites every pixel with the pixels of snap.
func (c *Canvas) Restore(snap *Canvas) error {
	if !c.img.Rect.Eq(snap.img.Rect) || c.img.Stride != snap.img.Stride {
		return ErrSizeMismatch
	}
	copy(c.img.Pix, snap.img.Pix)
	return nil
}

func (c *Canvas) Equal(o *Canvas) bool {
	return c.img.Rect.Eq(o.img.Rect) && bytes.Equal(c.img.Pix, o.img.Pix)
}

// Clamp moves p onto the nearest pixel inside the canvas.
func (c *Canvas) Clamp(p image.Point) image.Point {
	b := c.img.Rect
	return image.Pt(
		lo.Clamp(p.X, b.Min.X, b.Max.X-1),
		lo.Clamp(p.Y, b.Min.Y, b.Max.Y-1),
	)
}

// FillCircle paints a filled circle centered on the pixel at p and returns the
// area it may have touched. Parts outside the canvas are clipped.
func (c *Canvas) FillCircle(p image.Point, radius int, col color.Color) image.Rectangle {
	if c.dc == nil {
		c.dc = gg.NewContextForRGBA(c.img)
	}

	c.dc.DrawCircle(float64(p.X)+0.5, float64(p.Y)+0.5, float64(radius))
	c.dc.SetColor(opaque(col))
	c.dc.Fill()

	return image.Rect(p.X-radius-1, p.Y-radius-1, p.X+radius+2, p.Y+radius+2).Intersect(c.img.Rect)
}

func opaque(col color.Color) color.RGBA {
	r, g, b, _ := col.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}
