package encoder

import (
	"github.com/mahyarmirrashed/qoi/internal/qoi"
)

// QOIEncoder emits the QOI stream itself.
type QOIEncoder struct{}

func (e *QOIEncoder) Format() string    { return "qoi" }
func (e *QOIEncoder) Extension() string { return "qoi" }

func (e *QOIEncoder) Encode(pix []byte, desc qoi.Desc) ([]byte, error) {
	return qoi.Encode(pix, desc)
}
