// Package encoder turns decoded pixel buffers into output file formats.
// Output selection is by file suffix, mirroring the CLI contract.
package encoder

import (
	"github.com/mahyarmirrashed/qoi/internal/qoi"
)

// Encoder encodes a pixel buffer to a specific output format.
type Encoder interface {
	// Format returns the output format name (e.g. "qoi", "png").
	Format() string

	// Encode converts a tightly packed pixel buffer to file bytes.
	Encode(pix []byte, desc qoi.Desc) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
