package imop

import (
	"github.com/esimov/fractree/utils"
)

// The supported blend modes.
const (
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) {
	bModes := []string{Darken, Lighten, Multiply, Screen, Overlay}

	if utils.Contains(bModes, opType) {
		o.OpType = opType
	}
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// apply combines the composited source pixel with the backdrop pixel
// according to the active blend formula.
func (o *Blend) apply(s, b pixel) pixel {
	switch o.OpType {
	case Darken:
		return pixel{
			r: utils.Min(s.r, b.r),
			g: utils.Min(s.g, b.g),
			b: utils.Min(s.b, b.b),
			a: utils.Min(s.a, b.a),
		}
	case Lighten:
		return pixel{
			r: utils.Max(s.r, b.r),
			g: utils.Max(s.g, b.g),
			b: utils.Max(s.b, b.b),
			a: utils.Max(s.a, b.a),
		}
	case Multiply:
		return pixel{r: s.r * b.r, g: s.g * b.g, b: s.b * b.b, a: s.a * b.a}
	case Screen:
		return pixel{
			r: 1 - (1-s.r)*(1-b.r),
			g: 1 - (1-s.g)*(1-b.g),
			b: 1 - (1-s.b)*(1-b.b),
			a: 1 - (1-s.a)*(1-b.a),
		}
	case Overlay:
		ov := func(s, b float64) float64 {
			if s <= 0.5 {
				return 2 * s * b
			}
			return 1 - 2*(1-s)*(1-b)
		}
		return pixel{r: ov(s.r, b.r), g: ov(s.g, b.g), b: ov(s.b, b.b), a: ov(s.a, b.a)}
	}
	return s
}
