package qoi

import (
	"fmt"
	"os"
)

// ReadFile reads a QOI file and decodes it. channels has the same meaning
// as in Decode: 0 keeps the header's channel count.
func ReadFile(path string, channels int) ([]byte, Desc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Desc{}, fmt.Errorf("read %s: %w", path, err)
	}
	pix, desc, err := Decode(data, channels)
	if err != nil {
		return nil, Desc{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return pix, desc, nil
}

// WriteFile encodes a pixel buffer and writes the stream to path,
// returning the number of bytes written.
func WriteFile(path string, pix []byte, desc Desc) (int, error) {
	data, err := Encode(pix, desc)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(data), nil
}
