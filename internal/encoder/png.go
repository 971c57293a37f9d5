package encoder

import (
	"bytes"
	"image/png"

	"github.com/mahyarmirrashed/qoi/internal/pixmap"
	"github.com/mahyarmirrashed/qoi/internal/qoi"
)

// PNGEncoder writes decoded pixels back out as PNG using Go's standard
// library. PNG is lossless, so a qoi->png->qoi cycle preserves pixels.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(pix []byte, desc qoi.Desc) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(pix) / 2)

	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, pixmap.ToImage(pix, desc)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
