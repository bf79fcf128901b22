package imop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	opaqueRed   = color.NRGBA{R: 0xff, A: 0xff}
	opaqueBlue  = color.NRGBA{B: 0xff, A: 0xff}
	transparent = color.NRGBA{}
)

// uniform returns a 2x2 image filled with the given color.
func uniform(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestComposite_DefaultsToSrcOver(t *testing.T) {
	assert.Equal(t, SrcOver, InitOp().Get())
}

func TestComposite_IgnoresUnknownOps(t *testing.T) {
	op := InitOp()
	op.Set("dissolve")
	assert.Equal(t, SrcOver, op.Get())
}

func TestComposite_SrcOver(t *testing.T) {
	assert := assert.New(t)

	op := InitOp()
	op.Set(SrcOver)
	bitmap := NewBitmap(image.Rect(0, 0, 2, 2))

	// An opaque source hides the destination entirely.
	op.Draw(bitmap, uniform(opaqueRed), uniform(opaqueBlue), nil)
	assert.Equal(opaqueRed, bitmap.Img.NRGBAAt(0, 0))

	// A transparent source keeps the destination visible.
	op.Draw(bitmap, uniform(transparent), uniform(opaqueBlue), nil)
	assert.Equal(opaqueBlue, bitmap.Img.NRGBAAt(1, 1))

	// A half transparent source blends with the destination.
	semi := color.NRGBA{R: 0xff, A: 0x80}
	op.Draw(bitmap, uniform(semi), uniform(opaqueBlue), nil)
	out := bitmap.Img.NRGBAAt(0, 1)
	assert.InDelta(0x80, int(out.R), 1)
	assert.InDelta(0x7f, int(out.B), 1)
	assert.Equal(uint8(0xff), out.A)
}

func TestComposite_Copy(t *testing.T) {
	op := InitOp()
	op.Set(Copy)
	bitmap := NewBitmap(image.Rect(0, 0, 2, 2))

	op.Draw(bitmap, uniform(transparent), uniform(opaqueBlue), nil)
	assert.Equal(t, transparent, bitmap.Img.NRGBAAt(0, 0))
}

func TestComposite_PorterDuffAlphaOps(t *testing.T) {
	assert := assert.New(t)

	bitmap := NewBitmap(image.Rect(0, 0, 2, 2))
	src, dst := uniform(opaqueRed), uniform(transparent)

	tests := []struct {
		op    string
		alpha uint8
	}{
		// src_in keeps the source only where the destination is opaque.
		{SrcIn, 0x00},
		// src_out keeps the source only where the destination is transparent.
		{SrcOut, 0xff},
		// dst_over puts the empty destination in front, leaving the source visible.
		{DstOver, 0xff},
		// xor keeps the non-overlapping regions, here the whole source.
		{Xor, 0xff},
	}

	for _, tc := range tests {
		op := InitOp()
		op.Set(tc.op)
		op.Draw(bitmap, src, dst, nil)
		assert.Equal(tc.alpha, bitmap.Img.NRGBAAt(0, 0).A, tc.op)
	}
}

func TestComposite_NilBitmapAllocates(t *testing.T) {
	op := InitOp()
	// Must not panic with a nil bitmap.
	op.Draw(nil, uniform(opaqueRed), uniform(opaqueBlue), nil)
}
