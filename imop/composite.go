// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Porter and Duff presented in their paper 12 different composition operation,
// but the image/draw core package implements only the source-over-destination and source.
// This package is aimed to overcome the missing composite operations.
//
// It is used by the renderer to merge the stroked tree layer over
// the backdrop layer, be it a flat color or a backdrop image.
package imop

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/fractree/utils"
)

// The supported composition operations.
const (
	Copy    = "copy"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap wraps the destination image a composition operation draws into.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// pixel is a premultiplied-free color normalized to the [0,1] interval.
type pixel struct {
	r, g, b, a float64
}

// NewBitmap initializes a new Bitmap of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp initializes a new compositor defaulting to the source-over operation.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Copy, SrcOver, DstOver, SrcIn, DstIn,
			SrcOut, DstOut, SrcAtop, DstAtop, Xor,
		},
	}
}

// Set activates one of the supported composition operations.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the currently active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw applies the active composition operation over the src and dst image
// and writes the result into the bitmap. When a non-nil blend is provided
// the blending formula is applied on top of the composition result.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, blend *Blend) {
	if bitmap == nil {
		bitmap = NewBitmap(src.Bounds())
	}
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()

	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			s := normalize(src.NRGBAAt(x, y))
			b := normalize(dst.NRGBAAt(x, y))

			var res pixel
			switch op.current {
			case Copy:
				res = s
			case SrcOver:
				res = pixel{
					r: s.a*s.r + b.a*b.r*(1-s.a),
					g: s.a*s.g + b.a*b.g*(1-s.a),
					b: s.a*s.b + b.a*b.b*(1-s.a),
					a: s.a + b.a*(1-s.a),
				}
			case DstOver:
				res = pixel{
					r: s.a*s.r*(1-b.a) + b.a*b.r,
					g: s.a*s.g*(1-b.a) + b.a*b.g,
					b: s.a*s.b*(1-b.a) + b.a*b.b,
					a: s.a*(1-b.a) + b.a,
				}
			case SrcIn:
				res = pixel{r: s.a * s.r * b.a, g: s.a * s.g * b.a, b: s.a * s.b * b.a, a: s.a * b.a}
			case DstIn:
				res = pixel{r: b.a * b.r * s.a, g: b.a * b.g * s.a, b: b.a * b.b * s.a, a: b.a * s.a}
			case SrcOut:
				res = pixel{r: s.a * s.r * (1 - b.a), g: s.a * s.g * (1 - b.a), b: s.a * s.b * (1 - b.a), a: s.a * (1 - b.a)}
			case DstOut:
				res = pixel{r: b.a * b.r * (1 - s.a), g: b.a * b.g * (1 - s.a), b: b.a * b.b * (1 - s.a), a: b.a * (1 - s.a)}
			case SrcAtop:
				res = pixel{
					r: s.a*s.r*b.a + (1-s.a)*b.a*b.r,
					g: s.a*s.g*b.a + (1-s.a)*b.a*b.g,
					b: s.a*s.b*b.a + (1-s.a)*b.a*b.b,
					a: s.a*b.a + b.a*(1-s.a),
				}
			case DstAtop:
				res = pixel{
					r: s.a*s.r*(1-b.a) + b.a*b.r*s.a,
					g: s.a*s.g*(1-b.a) + b.a*b.g*s.a,
					b: s.a*s.b*(1-b.a) + b.a*b.b*s.a,
					a: s.a*(1-b.a) + b.a*s.a,
				}
			case Xor:
				res = pixel{
					r: s.a*s.r*(1-b.a) + b.a*b.r*(1-s.a),
					g: s.a*s.g*(1-b.a) + b.a*b.g*(1-s.a),
					b: s.a*s.b*(1-b.a) + b.a*b.b*(1-s.a),
					a: s.a*(1-b.a) + b.a*(1-s.a),
				}
			}

			if blend != nil {
				res = blend.apply(res, b)
			}
			bitmap.Img.SetNRGBA(x, y, denormalize(res))
		}
	}
}

// normalize converts an 8bit color to its normalized, alpha-unassociated form.
func normalize(c color.NRGBA) pixel {
	return pixel{
		r: float64(c.R) / 255,
		g: float64(c.G) / 255,
		b: float64(c.B) / 255,
		a: float64(c.A) / 255,
	}
}

// denormalize converts a normalized pixel back to an 8bit color.
func denormalize(p pixel) color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(utils.Clamp(p.r, 0, 1) * 255)),
		G: uint8(math.Round(utils.Clamp(p.g, 0, 1) * 255)),
		B: uint8(math.Round(utils.Clamp(p.b, 0, 1) * 255)),
		A: uint8(math.Round(utils.Clamp(p.a, 0, 1) * 255)),
	}
}
