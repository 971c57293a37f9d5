package qoi

import "encoding/binary"

// Encode compresses a tightly packed row-major pixel buffer into a complete
// QOI stream: 14-byte header, chunk stream, 8-byte terminator. pix holds
// Width*Height*Channels bytes in r,g,b[,a] order with no row padding.
//
// The returned slice is freshly allocated and owned by the caller. All
// codec state lives on the stack of this call, so concurrent encodes over
// independent buffers need no synchronization.
func Encode(pix []byte, desc Desc) ([]byte, error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}
	channels := int(desc.Channels)
	pixLen := int(desc.PixelCount()) * channels
	if len(pix) != pixLen {
		return nil, ErrBufferSize
	}

	// Worst case is one RGBA chunk (5 bytes) per 4-channel pixel, so the
	// stream can never outgrow this single allocation.
	out := make([]byte, 0, pixLen/channels*(channels+1)+headerLen+len(padding))

	out = binary.BigEndian.AppendUint32(out, magic)
	out = binary.BigEndian.AppendUint32(out, desc.Width)
	out = binary.BigEndian.AppendUint32(out, desc.Height)
	out = append(out, desc.Channels, desc.Colorspace)

	var index [64]pixel // zero value, all slots (0,0,0,0)
	prev := pixel{a: 255}
	curr := prev
	run := 0
	lastOff := pixLen - channels

	for off := 0; off < pixLen; off += channels {
		curr.r = pix[off]
		curr.g = pix[off+1]
		curr.b = pix[off+2]
		if channels == 4 {
			curr.a = pix[off+3]
		}

		if curr == prev {
			run++
			// A run chunk holds at most 62 repeats. The final pixel
			// also forces a flush so no run survives the loop.
			if run == maxRun || off == lastOff {
				out = append(out, opRun|byte(run-1))
				run = 0
			}
			prev = curr
			continue
		}

		if run > 0 {
			out = append(out, opRun|byte(run-1))
			run = 0
		}

		if slot := curr.hash(); index[slot] == curr {
			out = append(out, opIndex|slot)
		} else {
			// The table only learns pixels coded on this path, never
			// on RUN or INDEX chunks. The decoder updates identically.
			index[slot] = curr

			if curr.a == prev.a {
				// uint8 subtraction wraps, the int8 conversion
				// reinterprets it as a signed two's-complement delta.
				dr := int8(curr.r - prev.r)
				dg := int8(curr.g - prev.g)
				db := int8(curr.b - prev.b)

				switch {
				case dr >= -2 && dr <= 1 && dg >= -2 && dg <= 1 && db >= -2 && db <= 1:
					out = append(out, opDiff|byte(dr+2)<<4|byte(dg+2)<<2|byte(db+2))
				case dg >= -32 && dg <= 31 && dr-dg >= -8 && dr-dg <= 7 && db-dg >= -8 && db-dg <= 7:
					out = append(out,
						opLuma|byte(dg+32),
						byte(dr-dg+8)<<4|byte(db-dg+8))
				default:
					out = append(out, opRGB, curr.r, curr.g, curr.b)
				}
			} else {
				out = append(out, opRGBA, curr.r, curr.g, curr.b, curr.a)
			}
		}

		prev = curr
	}

	out = append(out, padding[:]...)
	return out, nil
}
