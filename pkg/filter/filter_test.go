package filter

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"go.viam.com/test"
)

func uniform(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func squareOnWhite() *image.NRGBA {
	img := uniform(64, 64, color.White)
	draw.Draw(img, image.Rect(22, 22, 42, 42), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8((x + y) * 3), A: 255})
		}
	}
	return img
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		s, err := ByName(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, s.Name(), test.ShouldEqual, name)
	}

	_, err := ByName("cartoonify")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestStagesAreDeterministic(t *testing.T) {
	src := gradient(40, 30)
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, _ := ByName(name)
			a := s.Apply(src)
			b := s.Apply(src)
			test.That(t, a.Bounds(), test.ShouldResemble, src.Bounds())
			test.That(t, a.Pix, test.ShouldResemble, b.Pix)
		})
	}
}

func TestStagesKeepSizeOfOffsetImages(t *testing.T) {
	src := gradient(40, 30).SubImage(image.Rect(5, 5, 25, 20))
	for _, name := range Names() {
		s, _ := ByName(name)
		out := s.Apply(src)
		test.That(t, out.Bounds(), test.ShouldResemble, image.Rect(0, 0, 20, 15))
	}
}

func TestColoringKeepsFlatAreas(t *testing.T) {
	c := color.NRGBA{R: 100, G: 150, B: 200, A: 255}
	out := Coloring().Apply(uniform(32, 32, c))
	test.That(t, out.RGBAAt(0, 0), test.ShouldResemble, color.RGBA{R: 100, G: 150, B: 200, A: 255})
	test.That(t, out.RGBAAt(16, 16), test.ShouldResemble, color.RGBA{R: 100, G: 150, B: 200, A: 255})
}

func TestColoringOutlinesEdges(t *testing.T) {
	out := Coloring().Apply(squareOnWhite())
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	test.That(t, out.RGBAAt(22, 32), test.ShouldResemble, black)
	test.That(t, out.RGBAAt(32, 32), test.ShouldResemble, black)
	test.That(t, out.RGBAAt(2, 2), test.ShouldResemble, white)
}

func TestSketch(t *testing.T) {
	out := Sketch().Apply(uniform(16, 16, color.White))
	test.That(t, out.RGBAAt(8, 8), test.ShouldResemble, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out = Sketch().Apply(uniform(16, 16, color.Black))
	test.That(t, out.RGBAAt(8, 8), test.ShouldResemble, color.RGBA{A: 255})
}

func TestDodge(t *testing.T) {
	test.That(t, dodge(0, 255), test.ShouldEqual, uint8(0))
	test.That(t, dodge(200, 255), test.ShouldEqual, uint8(0))
	test.That(t, dodge(100, 0), test.ShouldEqual, uint8(100))
	test.That(t, dodge(200, 100), test.ShouldEqual, uint8(255))
}

func TestEqualize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	copy(img.Pix, []uint8{100, 100, 110, 120})
	equalize(img)
	test.That(t, img.Pix, test.ShouldResemble, []uint8{0, 0, 128, 255})

	flat := image.NewGray(image.Rect(0, 0, 2, 2))
	copy(flat.Pix, []uint8{7, 7, 7, 7})
	equalize(flat)
	test.That(t, flat.Pix, test.ShouldResemble, []uint8{7, 7, 7, 7})
}
