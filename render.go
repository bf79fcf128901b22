package fractree

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/disintegration/imaging"
	"github.com/esimov/fractree/imop"
	"github.com/esimov/fractree/utils"
	"github.com/pkg/errors"
	"golang.org/x/image/vector"
)

// defaultScale is the supersampling factor used when none is provided.
// The tree is stroked onto an oversized layer which gets downscaled to the
// canvas size with a Lanczos filter, smoothing out the branch edges.
const defaultScale = 2

// Processor options
type Processor struct {
	Params    *Params
	Seed      int64
	Scale     int
	BgImage   string
	BlendMode string
}

// Draw generates the tree out of the processor parameters and rasterizes it
// over the backdrop layer, returning the final canvas-sized image.
func (p *Processor) Draw() (*image.NRGBA, error) {
	if p.Params == nil {
		p.Params = DefaultParams()
	}

	var rng *rand.Rand
	if p.Seed != 0 {
		rng = rand.New(rand.NewSource(p.Seed))
	}

	branches, err := Generate(p.Params, rng)
	if err != nil {
		return nil, err
	}

	scale := p.Scale
	if scale <= 0 {
		scale = defaultScale
	}

	w, h := p.Params.CanvasWidth, p.Params.CanvasHeight
	layer := p.strokeBranches(branches, scale)
	if scale > 1 {
		layer = imaging.Resize(layer, w, h, imaging.Lanczos)
	}

	backdrop, err := p.backdrop()
	if err != nil {
		return nil, err
	}

	var blend *imop.Blend
	if len(p.BlendMode) > 0 {
		blend = imop.NewBlend()
		blend.Set(p.BlendMode)
	}

	op := imop.InitOp()
	op.Set(imop.SrcOver)

	bitmap := imop.NewBitmap(image.Rect(0, 0, w, h))
	op.Draw(bitmap, layer, backdrop, blend)

	return bitmap.Img, nil
}

// Process renders the tree and encodes the resulting image into the io.Writer.
// When the writer is a file the encoding format is inferred from its extension,
// otherwise the image is encoded as PNG.
func (p *Processor) Process(w io.Writer) error {
	img, err := p.Draw()
	if err != nil {
		return err
	}
	return encodeImg(w, img)
}

// strokeBranches rasterizes every branch in order as an antialiased thick
// line onto a transparent layer scaled up by the supersampling factor.
func (p *Processor) strokeBranches(branches []Branch, scale int) *image.NRGBA {
	sw, sh := p.Params.CanvasWidth*scale, p.Params.CanvasHeight*scale
	layer := image.NewNRGBA(image.Rect(0, 0, sw, sh))

	rast := vector.NewRasterizer(sw, sh)
	s := float64(scale)

	for _, b := range branches {
		// A branch narrower than a pixel is still stroked at unit width,
		// the same way the original renderer enforced a minimum line width.
		thickness := utils.Max(b.Thickness, 1) * s
		strokeLine(rast, layer, b.Start.X*s, b.Start.Y*s, b.End.X*s, b.End.Y*s, thickness, b.Color)
	}
	return layer
}

// strokeLine fills the quad spanned by the two line endpoints expanded by
// half the thickness on each side of the line direction.
func strokeLine(rast *vector.Rasterizer, dst *image.NRGBA, x0, y0, x1, y1, thickness float64, col color.NRGBA) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	// Unit normal of the line direction.
	nx, ny := -dy/length, dx/length
	hw := thickness / 2

	rast.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	rast.DrawOp = draw.Over

	rast.MoveTo(float32(x0+nx*hw), float32(y0+ny*hw))
	rast.LineTo(float32(x1+nx*hw), float32(y1+ny*hw))
	rast.LineTo(float32(x1-nx*hw), float32(y1-ny*hw))
	rast.LineTo(float32(x0-nx*hw), float32(y0-ny*hw))
	rast.ClosePath()

	rast.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
}

// backdrop produces the canvas-sized destination layer: the flat background
// color, or the backdrop image resized to cover the canvas when one is set.
func (p *Processor) backdrop() (*image.NRGBA, error) {
	w, h := p.Params.CanvasWidth, p.Params.CanvasHeight

	if len(p.BgImage) > 0 {
		src := p.BgImage
		if utils.IsValidUrl(src) {
			tmp, err := utils.DownloadImage(src)
			if err != nil {
				return nil, errors.Wrap(err, "could not retrieve the backdrop image")
			}
			defer os.Remove(tmp.Name())
			defer tmp.Close()
			src = tmp.Name()
		}

		img, err := decodeImg(src)
		if err != nil {
			return nil, errors.Wrap(err, "could not decode the backdrop image")
		}
		return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), nil
	}

	bg, err := ParseHexColor(p.Params.BgColor)
	if err != nil {
		return nil, err
	}

	backdrop := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(backdrop, backdrop.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	return backdrop, nil
}
