// Package qoi implements the QOI ("Quite OK Image") lossless image format:
// a single-image codec that compresses an RGB or RGBA pixel stream with
// small per-pixel opcodes.
//
// The format is stateful: encoder and decoder carry the previous pixel, a
// 64-slot table of recently seen colors, and a run counter, and must agree
// on every state transition for streams to interoperate. The specification
// is at https://qoiformat.org/qoi-specification.pdf.
package qoi

import (
	"errors"
	"fmt"
)

// Chunk opcodes. INDEX, DIFF, LUMA and RUN are identified by their top two
// bits; RGB and RGBA occupy the two full-byte values that would otherwise
// be RUN lengths 63 and 64.
const (
	opIndex = 0x00
	opDiff  = 0x40
	opLuma  = 0x80
	opRun   = 0xc0
	opRGB   = 0xfe
	opRGBA  = 0xff

	opMask2 = 0xc0 // mask for two-bit tags
)

const (
	// magic is "qoif" read as a big-endian u32.
	magic = 0x716f6966

	headerLen = 14
	maxRun    = 62

	// MaxPixels caps width*height. Before allocating, Encode and Decode
	// reject a descriptor whose Height is at least MaxPixels/Width
	// (integer division), so an image of exactly MaxPixels is rejected too.
	MaxPixels = 400_000_000
)

// padding terminates every QOI stream. The decoder never parses these
// bytes as chunk data.
var padding = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Colorspace values carried in the header. Metadata only; neither changes
// how pixels are coded.
const (
	ColorspaceSRGB   = 0 // sRGB with linear alpha
	ColorspaceLinear = 1 // all channels linear
)

// ErrInvalidArgument is the root of all validation failures. The more
// specific sentinels below wrap it, so errors.Is(err, ErrInvalidArgument)
// matches any of them.
var ErrInvalidArgument = errors.New("qoi: invalid argument")

var (
	ErrBadMagic      = fmt.Errorf("%w: bad magic", ErrInvalidArgument)
	ErrBadDescriptor = fmt.Errorf("%w: bad descriptor", ErrInvalidArgument)
	ErrBadChannels   = fmt.Errorf("%w: channels must be 0, 3 or 4", ErrInvalidArgument)
	ErrTooLarge      = fmt.Errorf("%w: image exceeds pixel cap", ErrInvalidArgument)
	ErrTooShort      = fmt.Errorf("%w: stream too short", ErrInvalidArgument)
	ErrBufferSize    = fmt.Errorf("%w: pixel buffer size mismatch", ErrInvalidArgument)
	ErrTruncated     = fmt.Errorf("%w: chunk stream truncated", ErrInvalidArgument)
)

// Desc is the image descriptor carried in the 14-byte header.
type Desc struct {
	Width      uint32
	Height     uint32
	Channels   uint8 // 3 = RGB, 4 = RGBA
	Colorspace uint8 // ColorspaceSRGB or ColorspaceLinear
}

// validate checks the descriptor fields and the pixel cap.
func (d Desc) validate() error {
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("%w: zero dimension %dx%d", ErrBadDescriptor, d.Width, d.Height)
	}
	if d.Channels != 3 && d.Channels != 4 {
		return fmt.Errorf("%w: channels %d", ErrBadDescriptor, d.Channels)
	}
	if d.Colorspace > ColorspaceLinear {
		return fmt.Errorf("%w: colorspace %d", ErrBadDescriptor, d.Colorspace)
	}
	if d.Height >= MaxPixels/d.Width {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, d.Width, d.Height)
	}
	return nil
}

// PixelCount returns width*height.
func (d Desc) PixelCount() uint64 {
	return uint64(d.Width) * uint64(d.Height)
}

// pixel is one RGBA sample. Component-wise equality, alpha included.
type pixel struct {
	r, g, b, a uint8
}

// hash returns the table slot for p. All arithmetic wraps in uint8, the
// result is always in [0, 63].
func (p pixel) hash() uint8 {
	return (p.r*3 + p.g*5 + p.b*7 + p.a*11) % 64
}
