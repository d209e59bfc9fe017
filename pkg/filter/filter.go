package filter

import (
	"fmt"
	"image"
	"image/draw"
	"sort"

	"github.com/disintegration/imaging"
)

// Stage turns a captured frame into an editable picture. Implementations are
// pure: the same input always gives the same output, with the same size.
type Stage interface {
	Name() string
	Apply(src image.Image) *image.RGBA
}

var stages = map[string]func() Stage{
	"coloring": func() Stage { return Coloring() },
	"sketch":   func() Stage { return Sketch() },
	"none":     func() Stage { return Identity() },
}

func ByName(name string) (Stage, error) {
	if fn, ok := stages[name]; ok {
		return fn(), nil
	}
	return nil, fmt.Errorf("unknown filter %q", name)
}

func Names() []string {
	names := make([]string, 0, len(stages))
	for name := range stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Identity() Stage {
	return identity{}
}

type identity struct{}

func (identity) Name() string {
	return "none"
}

func (identity) Apply(src image.Image) *image.RGBA {
	return toRGBA(imaging.Clone(src))
}

func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
