package fractree

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

// renderParams returns a small deterministic tree kept inside a 200x200 canvas.
func renderParams() *Params {
	return &Params{
		BaseLength:      50,
		AngleVariation:  35,
		LengthFactor:    0.65,
		Depth:           3,
		TrunkThickness:  10,
		ThicknessFactor: 0.75,
		Randomness:      0,
		GrowUpward:      true,
		TrunkColor:      "#7c2d12",
		LeafColors:      []string{"#4682B4"},
		BgColor:         "#0f172a",
		CanvasWidth:     200,
		CanvasHeight:    200,
	}
}

func TestProcessor_DrawCanvasSize(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{Params: renderParams()}
	img, err := p.Draw()

	assert.NoError(err)
	assert.Equal(200, img.Bounds().Dx())
	assert.Equal(200, img.Bounds().Dy())
}

func TestProcessor_DrawsBackgroundAndTrunk(t *testing.T) {
	assert := assert.New(t)

	// Scale 1 keeps canvas and raster coordinates identical,
	// so pixel positions can be asserted directly.
	p := &Processor{Params: renderParams(), Scale: 1}
	img, err := p.Draw()
	assert.NoError(err)

	// The top corners are untouched backdrop.
	bg, _ := ParseHexColor(p.Params.BgColor)
	assert.Equal(bg, img.NRGBAAt(0, 0))
	assert.Equal(bg, img.NRGBAAt(199, 0))

	// The middle of the trunk is fully covered by the stroke.
	trunk, _ := ParseHexColor(p.Params.TrunkColor)
	got := img.NRGBAAt(100, 190)
	assert.InDelta(float64(trunk.R), float64(got.R), 1)
	assert.InDelta(float64(trunk.G), float64(got.G), 1)
	assert.InDelta(float64(trunk.B), float64(got.B), 1)
}

func TestProcessor_InvalidParamsFailBeforeRendering(t *testing.T) {
	params := renderParams()
	params.Depth = 0

	p := &Processor{Params: params}
	img, err := p.Draw()

	assert.Error(t, err)
	assert.Nil(t, img)
}

func TestProcessor_SeedReproducibility(t *testing.T) {
	assert := assert.New(t)

	params := renderParams()
	params.Randomness = 0.3

	a, err := (&Processor{Params: params, Seed: 42, Scale: 1}).Draw()
	assert.NoError(err)
	b, err := (&Processor{Params: params, Seed: 42, Scale: 1}).Draw()
	assert.NoError(err)

	assert.Equal(a.Pix, b.Pix)
}

func TestProcessor_BlendMode(t *testing.T) {
	assert := assert.New(t)

	params := renderParams()
	params.BgColor = "#ffffff"

	plain, err := (&Processor{Params: params, Scale: 1}).Draw()
	assert.NoError(err)
	screened, err := (&Processor{Params: params, Scale: 1, BlendMode: "screen"}).Draw()
	assert.NoError(err)

	// Screening against a white backdrop washes the stroke out completely.
	trunkPixel := screened.NRGBAAt(100, 190)
	assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, trunkPixel)
	assert.NotEqual(plain.Pix, screened.Pix)
}

func TestProcessor_ProcessEncodesPNG(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	p := &Processor{Params: renderParams()}
	assert.NoError(p.Process(&buf))

	img, err := png.Decode(&buf)
	assert.NoError(err)
	assert.Equal(200, img.Bounds().Dx())
	assert.Equal(200, img.Bounds().Dy())
}
