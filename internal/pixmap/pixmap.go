// Package pixmap bridges image.Image and the tightly packed row-major
// pixel buffers the codec works on.
package pixmap

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/mahyarmirrashed/qoi/internal/qoi"
)

// Load opens and decodes a raster file in any registered format
// (png, jpeg, gif, bmp, tiff, webp).
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// FromImage packs an image into a tight r,g,b[,a] buffer. Images with any
// non-opaque pixel pack to 4 channels, fully opaque ones to 3.
func FromImage(img image.Image) ([]byte, uint8) {
	src := toNRGBA(img)
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	if !HasAlpha(src) {
		pix := make([]byte, w*h*3)
		di := 0
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			for x := 0; x < w*4; x += 4 {
				pix[di] = row[x]
				pix[di+1] = row[x+1]
				pix[di+2] = row[x+2]
				di += 3
			}
		}
		return pix, 3
	}

	if src.Stride == w*4 {
		pix := make([]byte, w*h*4)
		copy(pix, src.Pix)
		return pix, 4
	}
	pix := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		pix = append(pix, src.Pix[y*src.Stride:y*src.Stride+w*4]...)
	}
	return pix, 4
}

// ToImage unpacks a decoded pixel buffer into an NRGBA image. 3-channel
// buffers get an opaque alpha.
func ToImage(pix []byte, desc qoi.Desc) *image.NRGBA {
	w := int(desc.Width)
	h := int(desc.Height)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	if desc.Channels == 4 {
		copy(img.Pix, pix)
		return img
	}
	di := 0
	for si := 0; si < len(pix); si += 3 {
		img.Pix[di] = pix[si]
		img.Pix[di+1] = pix[si+1]
		img.Pix[di+2] = pix[si+2]
		img.Pix[di+3] = 255
		di += 4
	}
	return img
}

// HasAlpha reports whether any pixel is less than fully opaque.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.RGBA:
		for i := 3; i < len(src.Pix); i += 4 {
			if src.Pix[i] < 255 {
				return true
			}
		}
		return false
	case *image.YCbCr, *image.Gray:
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a < 65535 {
					return true
				}
			}
		}
		return false
	}
}

// toNRGBA normalizes to a zero-origin NRGBA raster. imaging.Clone handles
// every source type, including un-premultiplying RGBA.
func toNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Rect.Min == (image.Point{}) {
		return src
	}
	return imaging.Clone(img)
}
