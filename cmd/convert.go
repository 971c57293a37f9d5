package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mahyarmirrashed/qoi/internal/encoder"
	"github.com/mahyarmirrashed/qoi/internal/hasher"
	"github.com/mahyarmirrashed/qoi/internal/pixmap"
	"github.com/mahyarmirrashed/qoi/internal/qoi"
)

// channelName maps a channel count to its format name.
func channelName(c uint8) string {
	if c == 4 {
		return "RGBA"
	}
	return "RGB"
}

func runConvert(_ *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	pix, desc, err := loadPixels(inPath)
	if err != nil {
		return err
	}
	logVerbose("input:  %s (%dx%d %s)", inPath, desc.Width, desc.Height, channelName(desc.Channels))

	registry := encoder.NewRegistry()
	enc, err := registry.ForPath(outPath)
	if err != nil {
		return err
	}

	data, err := enc.Encode(pix, desc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	logVerbose("output: %s (%s, xxh64 %s)", outPath, enc.Format(), hasher.ContentHash(data, 16))

	fmt.Printf("%s (%dx%d %s) → %s (%s)\n",
		filepath.Base(inPath), desc.Width, desc.Height, channelName(desc.Channels),
		filepath.Base(outPath), formatBytes(int64(len(data))))
	return nil
}

// loadPixels reads the input into a packed pixel buffer, dispatching on
// the file suffix: .qoi decodes natively, anything else goes through the
// registered image decoders.
func loadPixels(path string) ([]byte, qoi.Desc, error) {
	if strings.EqualFold(filepath.Ext(path), ".qoi") {
		return qoi.ReadFile(path, 0)
	}

	img, format, err := pixmap.Load(path)
	if err != nil {
		return nil, qoi.Desc{}, err
	}
	logVerbose("decoded %s as %s", path, format)

	pix, channels := pixmap.FromImage(img)
	desc := qoi.Desc{
		Width:      uint32(img.Bounds().Dx()),
		Height:     uint32(img.Bounds().Dy()),
		Channels:   channels,
		Colorspace: qoi.ColorspaceSRGB,
	}
	return pix, desc, nil
}
