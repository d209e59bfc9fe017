package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrEmpty = errors.New("palette is empty")

// Default is red, orange, yellow, green, blue and purple.
func Default() *Palette {
	p, _ := New(
		color.RGBA{R: 255, A: 255},
		color.RGBA{R: 255, G: 165, A: 255},
		color.RGBA{R: 255, G: 255, A: 255},
		color.RGBA{G: 255, A: 255},
		color.RGBA{B: 255, A: 255},
		color.RGBA{R: 238, G: 130, B: 238, A: 255},
	)
	return p
}

func New(colors ...color.RGBA) (*Palette, error) {
	if len(colors) == 0 {
		return nil, ErrEmpty
	}
	return &Palette{colors: append([]color.RGBA(nil), colors...)}, nil
}

// Parse reads a comma separated list of hex colors such as "#ff0000,#00ff00".
func Parse(list string) (*Palette, error) {
	items := lo.Filter(strings.Split(list, ","), func(s string, _ int) bool {
		return strings.TrimSpace(s) != ""
	})

	colors := make([]color.RGBA, 0, len(items))
	for _, item := range items {
		c, err := colorful.Hex(strings.TrimSpace(item))
		if err != nil {
			return nil, fmt.Errorf("parse color %q failed: %w", item, err)
		}
		r, g, b := c.RGB255()
		colors = append(colors, color.RGBA{R: r, G: g, B: b, A: 255})
	}

	return New(colors...)
}

// Palette is a fixed list of colors with a cyclic cursor.
type Palette struct {
	colors []color.RGBA
	cursor int
}

func (p *Palette) Len() int {
	return len(p.colors)
}

func (p *Palette) Index() int {
	return p.cursor
}

func (p *Palette) Active() color.RGBA {
	return p.colors[p.cursor]
}

// Next advances the cursor, wrapping to the first color after the last.
func (p *Palette) Next() color.RGBA {
	p.cursor = (p.cursor + 1) % len(p.colors)
	return p.Active()
}

func (p *Palette) Colors() []color.RGBA {
	return append([]color.RGBA(nil), p.colors...)
}

// Hex formats c the way Parse accepts it.
func Hex(c color.RGBA) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
