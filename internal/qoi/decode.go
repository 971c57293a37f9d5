package qoi

import (
	"encoding/binary"
	"fmt"
)

// Decode reconstructs the pixel buffer from a complete QOI stream.
// channels selects the output layout: 3 or 4 forces RGB/RGBA, 0 keeps the
// channel count from the header. The returned buffer holds
// Width*Height*channels tightly packed bytes and is owned by the caller.
//
// A stream whose chunks run out before every pixel is produced is rejected
// with ErrTruncated. The 8 terminator bytes are reserved and never parsed
// as chunk data; their content is not inspected here (see Inspect).
func Decode(data []byte, channels int) ([]byte, Desc, error) {
	if channels != 0 && channels != 3 && channels != 4 {
		return nil, Desc{}, ErrBadChannels
	}
	if len(data) < headerLen+len(padding) {
		return nil, Desc{}, ErrTooShort
	}

	if binary.BigEndian.Uint32(data[0:4]) != magic {
		return nil, Desc{}, ErrBadMagic
	}
	desc := Desc{
		Width:      binary.BigEndian.Uint32(data[4:8]),
		Height:     binary.BigEndian.Uint32(data[8:12]),
		Channels:   data[12],
		Colorspace: data[13],
	}
	if err := desc.validate(); err != nil {
		return nil, Desc{}, err
	}
	if channels == 0 {
		channels = int(desc.Channels)
	}

	pixLen := int(desc.PixelCount()) * channels
	out := make([]byte, pixLen)

	var index [64]pixel // zero value, all slots (0,0,0,0)
	curr := pixel{a: 255}
	run := 0
	pos := headerLen
	chunksEnd := len(data) - len(padding)

	for off := 0; off < pixLen; off += channels {
		switch {
		case run > 0:
			run--
		case pos < chunksEnd:
			b1 := data[pos]
			pos++

			switch {
			case b1 == opRGBA:
				if pos+4 > chunksEnd {
					return nil, Desc{}, fmt.Errorf("%w: rgba chunk at %d", ErrTruncated, pos-1)
				}
				curr.r = data[pos]
				curr.g = data[pos+1]
				curr.b = data[pos+2]
				curr.a = data[pos+3]
				pos += 4
			case b1 == opRGB:
				if pos+3 > chunksEnd {
					return nil, Desc{}, fmt.Errorf("%w: rgb chunk at %d", ErrTruncated, pos-1)
				}
				curr.r = data[pos]
				curr.g = data[pos+1]
				curr.b = data[pos+2]
				pos += 3
			case b1&opMask2 == opIndex:
				// The tag bits are zero, so b1 is the slot itself.
				curr = index[b1]
			case b1&opMask2 == opDiff:
				// Deltas are stored with a +2 bias. Addition wraps in uint8.
				curr.r += b1>>4&0x03 - 2
				curr.g += b1>>2&0x03 - 2
				curr.b += b1 & 0x03 - 2
			case b1&opMask2 == opLuma:
				if pos >= chunksEnd {
					return nil, Desc{}, fmt.Errorf("%w: luma chunk at %d", ErrTruncated, pos-1)
				}
				b2 := data[pos]
				pos++
				dg := b1&0x3f - 32
				curr.r += dg + b2>>4&0x0f - 8
				curr.g += dg
				curr.b += dg + b2&0x0f - 8
			default: // opRun
				// Stored with a -1 bias; this pixel is the first of the
				// run, the rest replay through the run>0 branch above.
				run = int(b1 & 0x3f)
			}

			// RUN repeats a pixel whose slot is already current, so the
			// redundant store is harmless and keeps both loops identical
			// to the reference.
			index[curr.hash()] = curr
		default:
			return nil, Desc{}, fmt.Errorf("%w: %d of %d pixels decoded",
				ErrTruncated, off/channels, desc.PixelCount())
		}

		out[off] = curr.r
		out[off+1] = curr.g
		out[off+2] = curr.b
		if channels == 4 {
			out[off+3] = curr.a
		}
	}

	return out, desc, nil
}
