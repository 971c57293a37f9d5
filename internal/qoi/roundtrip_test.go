package qoi

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// makePix builds a deterministic pixel buffer that exercises every chunk
// class: long flat stretches for runs, small steps for DIFF/LUMA,
// recurring colors for INDEX and hard jumps for RGB/RGBA.
func makePix(w, h, channels int) []byte {
	pix := make([]byte, w*h*channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * channels
			switch {
			case y%7 == 0: // flat rows become runs
				pix[off] = 32
				pix[off+1] = 32
				pix[off+2] = 32
			case x%11 == 0: // hard jumps
				pix[off] = byte(x * 251)
				pix[off+1] = byte(y * 179)
				pix[off+2] = byte((x + y) * 113)
			default: // gentle gradient, DIFF and LUMA territory
				pix[off] = byte(32 + x/4)
				pix[off+1] = byte(32 + x/4)
				pix[off+2] = byte(30 + x/4)
			}
			if channels == 4 {
				a := byte(255)
				if x%13 == 0 && y%3 == 1 {
					a = byte(64 + y)
				}
				pix[off+3] = a
			}
		}
	}
	return pix
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		w, h     int
		channels uint8
	}{
		{"rgb 64x48", 64, 48, 3},
		{"rgba 64x48", 64, 48, 4},
		{"rgb single column", 1, 100, 3},
		{"rgba single row", 100, 1, 4},
		{"rgba 3x3", 3, 3, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc := Desc{
				Width:    uint32(tc.w),
				Height:   uint32(tc.h),
				Channels: tc.channels,
			}
			src := makePix(tc.w, tc.h, int(tc.channels))

			enc, err := Encode(src, desc)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, gotDesc, err := Decode(enc, 0)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			if gotDesc != desc {
				t.Errorf("descriptor: got %+v, want %+v", gotDesc, desc)
			}
			if !bytes.Equal(got, src) {
				t.Fatalf("pixels differ after round trip (%d bytes)", len(src))
			}
		})
	}
}

func TestRoundTrip_TableCoherence(t *testing.T) {
	// A sequence designed to hit the same hash slots repeatedly. If
	// encoder and decoder ever disagree on a table update the INDEX
	// chunks resolve to the wrong colors and the round trip breaks.
	colors := [][4]byte{
		{10, 20, 30, 255},
		{74, 20, 30, 255}, // hash collision candidates
		{10, 20, 30, 255},
		{0, 0, 0, 0},
		{10, 20, 30, 255},
		{0, 0, 0, 0},
		{138, 20, 30, 255},
	}
	src := make([]byte, 0, len(colors)*4)
	for _, c := range colors {
		src = append(src, c[:]...)
	}
	desc := Desc{Width: uint32(len(colors)), Height: 1, Channels: 4}

	enc, err := Encode(src, desc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, _, err := Decode(enc, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("pixels:\n got  %v\n want %v", got, src)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(uint8(8), uint8(8), true, []byte{0, 0, 0, 255, 10, 20, 30, 40})
	f.Add(uint8(3), uint8(1), false, []byte{1, 1, 1})
	f.Fuzz(func(t *testing.T, w, h uint8, alpha bool, seed []byte) {
		if w == 0 || h == 0 || len(seed) == 0 {
			return
		}
		channels := 3
		if alpha {
			channels = 4
		}
		desc := Desc{Width: uint32(w), Height: uint32(h), Channels: uint8(channels)}

		pix := make([]byte, int(w)*int(h)*channels)
		for i := range pix {
			pix[i] = seed[i%len(seed)]
		}

		enc, err := Encode(pix, desc)
		if err != nil {
			t.Fatalf("encode valid input: %v", err)
		}
		got, gotDesc, err := Decode(enc, 0)
		if err != nil {
			t.Fatalf("decode own output: %v", err)
		}
		if gotDesc != desc {
			t.Fatalf("descriptor: got %+v, want %+v", gotDesc, desc)
		}
		if !bytes.Equal(got, pix) {
			t.Fatal("pixels differ after round trip")
		}
	})
}

func FuzzDecode(f *testing.F) {
	enc, _ := Encode(makePix(8, 8, 4), Desc{Width: 8, Height: 8, Channels: 4})
	f.Add(enc)
	f.Add([]byte("qoif"))
	f.Fuzz(func(t *testing.T, data []byte) {
		// Keep fuzz allocations sane; the cap alone still allows
		// headers promising hundreds of megabytes.
		if len(data) >= 12 {
			w := binary.BigEndian.Uint32(data[4:8])
			h := binary.BigEndian.Uint32(data[8:12])
			if uint64(w)*uint64(h) > 1<<20 {
				return
			}
		}

		// Must never panic, whatever the input.
		pix, desc, err := Decode(data, 0)
		if err != nil {
			return
		}
		if want := desc.PixelCount() * uint64(desc.Channels); uint64(len(pix)) != want {
			t.Fatalf("output size %d, want %d", len(pix), want)
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	desc := Desc{Width: 256, Height: 256, Channels: 4}
	pix := makePix(256, 256, 4)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(pix, desc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	desc := Desc{Width: 256, Height: 256, Channels: 4}
	enc, err := Encode(makePix(256, 256, 4), desc)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := Decode(enc, 0); err != nil {
			b.Fatal(err)
		}
	}
}
