package fractree

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHexColor(t *testing.T) {
	assert := assert.New(t)

	c, err := ParseHexColor("#4682B4")
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}, c)

	c, err = ParseHexColor("#fff")
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	for _, s := range []string{"", "4682B4", "#12345", "#gggggg", "steelblue"} {
		_, err = ParseHexColor(s)
		assert.Error(err, s)

		var ipe *InvalidParamError
		assert.ErrorAs(err, &ipe, s)
	}
}

func TestFormatHexColor(t *testing.T) {
	assert.Equal(t, "#4682b4", FormatHexColor(color.NRGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}))
}

func TestInterpolate_Endpoints(t *testing.T) {
	assert := assert.New(t)

	trunk := color.NRGBA{R: 0x7c, G: 0x2d, B: 0x12, A: 0xff}
	stops := []color.NRGBA{
		{R: 0x16, G: 0x65, B: 0x34, A: 0xff},
		{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
	}

	assert.Equal(trunk, Interpolate(trunk, stops, 0))
	assert.Equal(stops[1], Interpolate(trunk, stops, 1))

	// Out of range positions are pinned to the gradient ends.
	assert.Equal(trunk, Interpolate(trunk, stops, -0.5))
	assert.Equal(stops[1], Interpolate(trunk, stops, 1.5))
}

func TestInterpolate_MidpointBlend(t *testing.T) {
	black := color.NRGBA{A: 0xff}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	mid := Interpolate(black, []color.NRGBA{white}, 0.5)
	assert.Equal(t, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, mid)
}

func TestInterpolate_PiecewiseStops(t *testing.T) {
	assert := assert.New(t)

	start := color.NRGBA{A: 0xff}
	stops := []color.NRGBA{
		{R: 0x64, A: 0xff},
		{G: 0xc8, A: 0xff},
	}

	// With three gradient entries, t=0.5 lands exactly on the middle stop.
	assert.Equal(stops[0], Interpolate(start, stops, 0.5))

	// t=0.75 blends halfway between the two stops.
	assert.Equal(color.NRGBA{R: 0x32, G: 0x64, A: 0xff}, Interpolate(start, stops, 0.75))
}

func TestDepthColor_Gradient(t *testing.T) {
	assert := assert.New(t)

	trunk := color.NRGBA{R: 0x7c, G: 0x2d, B: 0x12, A: 0xff}
	leaves := []color.NRGBA{{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}}

	assert.Equal(trunk, depthColor(trunk, leaves, 0, 8))
	assert.Equal(leaves[0], depthColor(trunk, leaves, 8, 8))

	// Intermediate depths shade monotonically between the two:
	// the red channel falls while green and blue rise.
	prev := depthColor(trunk, leaves, 0, 8)
	for d := 1; d <= 8; d++ {
		cur := depthColor(trunk, leaves, d, 8)
		assert.GreaterOrEqual(prev.R, cur.R)
		assert.LessOrEqual(prev.G, cur.G)
		assert.LessOrEqual(prev.B, cur.B)
		prev = cur
	}
}
