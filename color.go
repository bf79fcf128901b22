package fractree

import (
	"fmt"
	"image/color"
	"math"
)

// ParseHexColor converts a hex color string of the form #rrggbb or #rgb
// to its color.NRGBA representation.
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}

	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		// Double the hex digits:
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid color length")
	}
	if err != nil {
		return color.NRGBA{}, &InvalidParamError{
			Param: "color", Value: s, Min: "#000", Max: "#ffffff",
		}
	}
	return c, nil
}

// FormatHexColor converts a color back to its #rrggbb textual form.
func FormatHexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Interpolate maps t ∈ [0,1] onto the gradient running from start through
// the ordered stops sequence. A fractional index selects the two neighboring
// gradient entries and each RGB channel is blended linearly between them,
// rounded to the nearest integer. t=0 yields start and t=1 the last stop.
func Interpolate(start color.NRGBA, stops []color.NRGBA, t float64) color.NRGBA {
	grad := make([]color.NRGBA, 0, len(stops)+1)
	grad = append(grad, start)
	grad = append(grad, stops...)

	if len(grad) == 1 {
		return start
	}

	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	idx := t * float64(len(grad)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	f := idx - float64(lo)

	return lerpColor(grad[lo], grad[hi], f)
}

// lerpColor blends two colors channel-wise by the given factor.
func lerpColor(c1, c2 color.NRGBA, f float64) color.NRGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
	}
	return color.NRGBA{
		R: lerp(c1.R, c2.R),
		G: lerp(c1.G, c2.G),
		B: lerp(c1.B, c2.B),
		A: 0xff,
	}
}

// depthColor returns the stroke color of a branch at the given recursion
// depth: the trunk color at depth zero shading towards the last leaf color
// at the maximum depth.
func depthColor(trunk color.NRGBA, leaves []color.NRGBA, depth, maxDepth int) color.NRGBA {
	if maxDepth == 0 {
		return trunk
	}
	return Interpolate(trunk, leaves, float64(depth)/float64(maxDepth))
}
