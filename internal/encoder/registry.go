package encoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry maps output file suffixes to encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with all built-in encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{
		&QOIEncoder{},
		&PNGEncoder{},
	} {
		r.encoders[enc.Extension()] = enc
	}
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(format)]
}

// ForPath resolves an encoder from a file path's suffix.
func (r *Registry) ForPath(path string) (Encoder, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	enc := r.encoders[ext]
	if enc == nil {
		return nil, fmt.Errorf("unsupported output format %q (want .qoi or .png)", filepath.Ext(path))
	}
	return enc, nil
}

// Available returns all output format names.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"qoi", "png"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}
