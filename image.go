package fractree

import (
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/fractree/utils"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// decodeImg decodes an image file to type image.Image
func decodeImg(src string) (*image.NRGBA, error) {
	file, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrap(err, "could not open the image file")
	}
	defer file.Close()

	ctype, err := utils.DetectContentType(file.Name())
	if err != nil {
		return nil, err
	}
	if !strings.Contains(ctype, "image") {
		return nil, errors.Errorf("%s is not an image file", src)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode the image file")
	}

	return imgToNRGBA(img), nil
}

// encodeImg encodes an image to a destination of type io.Writer.
func encodeImg(w io.Writer, img image.Image) error {
	switch w := w.(type) {
	case *os.File:
		ext := filepath.Ext(w.Name())
		switch ext {
		case "", ".png":
			return png.Encode(w, img)
		case ".jpg", ".jpeg":
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
		case ".bmp":
			return bmp.Encode(w, img)
		default:
			return errors.Errorf("unsupported image format: %s", ext)
		}
	default:
		return png.Encode(w, img)
	}
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Bounds().Min == (image.Point{}) {
		return src
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}
