package qoi

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// OpStat aggregates one opcode class over a stream.
type OpStat struct {
	Chunks int // chunks of this class
	Bytes  int // stream bytes they occupy
	Pixels uint64
}

// Stats summarizes a QOI stream without producing pixels.
type Stats struct {
	Desc       Desc
	Index      OpStat
	Diff       OpStat
	Luma       OpStat
	Run        OpStat
	RGB        OpStat
	RGBA       OpStat
	Pixels     uint64 // pixels the chunk stream covers
	ChunkBytes int    // bytes between header and terminator
	ValidEnd   bool   // last 8 bytes equal the terminator
}

// Inspect walks the chunk stream of a QOI file and returns per-opcode
// counts. It frames chunks exactly like Decode but keeps no pixel state,
// so it runs in O(stream) with no output allocation.
//
// Unlike Decode, Inspect also compares the reserved trailing bytes against
// the terminator and reports the result in Stats.ValidEnd.
func Inspect(data []byte) (Stats, error) {
	if len(data) < headerLen+len(padding) {
		return Stats{}, ErrTooShort
	}
	if binary.BigEndian.Uint32(data[0:4]) != magic {
		return Stats{}, ErrBadMagic
	}

	s := Stats{
		Desc: Desc{
			Width:      binary.BigEndian.Uint32(data[4:8]),
			Height:     binary.BigEndian.Uint32(data[8:12]),
			Channels:   data[12],
			Colorspace: data[13],
		},
	}
	if err := s.Desc.validate(); err != nil {
		return Stats{}, err
	}

	pos := headerLen
	chunksEnd := len(data) - len(padding)
	s.ChunkBytes = chunksEnd - headerLen
	s.ValidEnd = bytes.Equal(data[chunksEnd:], padding[:])

	for pos < chunksEnd {
		b1 := data[pos]
		var st *OpStat
		size := 1
		pixels := uint64(1)

		switch {
		case b1 == opRGBA:
			st, size = &s.RGBA, 5
		case b1 == opRGB:
			st, size = &s.RGB, 4
		case b1&opMask2 == opIndex:
			st = &s.Index
		case b1&opMask2 == opDiff:
			st = &s.Diff
		case b1&opMask2 == opLuma:
			st, size = &s.Luma, 2
		default: // opRun
			st, pixels = &s.Run, uint64(b1&0x3f)+1
		}

		if pos+size > chunksEnd {
			return Stats{}, fmt.Errorf("%w: chunk at %d", ErrTruncated, pos)
		}
		st.Chunks++
		st.Bytes += size
		st.Pixels += pixels
		s.Pixels += pixels
		pos += size
	}

	return s, nil
}
