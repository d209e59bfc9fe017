package palette

import (
	"image/color"
	"testing"

	"go.viam.com/test"
)

func TestDefault(t *testing.T) {
	p := Default()
	test.That(t, p.Len(), test.ShouldEqual, 6)
	test.That(t, p.Index(), test.ShouldEqual, 0)
	test.That(t, p.Active(), test.ShouldResemble, color.RGBA{R: 255, A: 255})
}

func TestNextWraps(t *testing.T) {
	p := Default()
	start := p.Index()
	for i := 0; i < p.Len(); i++ {
		p.Next()
	}
	test.That(t, p.Index(), test.ShouldEqual, start)

	p.Next()
	test.That(t, p.Index(), test.ShouldEqual, 1)
	test.That(t, p.Active(), test.ShouldResemble, color.RGBA{R: 255, G: 165, A: 255})
}

func TestParse(t *testing.T) {
	p, err := Parse("#ff0000, #00ff00,#0000ff,")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Colors(), test.ShouldResemble, []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
	})
	test.That(t, Hex(p.Next()), test.ShouldEqual, "#00ff00")
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("")
	test.That(t, err, test.ShouldBeError, ErrEmpty)

	_, err = Parse("#ff0000,nope")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "nope")
}
