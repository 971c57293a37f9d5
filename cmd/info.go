package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahyarmirrashed/qoi/internal/hasher"
	"github.com/mahyarmirrashed/qoi/internal/qoi"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.qoi>",
	Short: "Show header fields and chunk statistics for a QOI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	s, err := qoi.Inspect(data)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", path, err)
	}

	colorspace := "sRGB, linear alpha"
	if s.Desc.Colorspace == qoi.ColorspaceLinear {
		colorspace = "all channels linear"
	}
	rawSize := int64(s.Desc.PixelCount()) * int64(s.Desc.Channels)

	fmt.Println()
	fmt.Printf("  File:        %s (%s)\n", path, formatBytes(int64(len(data))))
	fmt.Printf("  Dimensions:  %dx%d %s\n", s.Desc.Width, s.Desc.Height, channelName(s.Desc.Channels))
	fmt.Printf("  Colorspace:  %s\n", colorspace)
	fmt.Printf("  Raw pixels:  %s\n", formatBytes(rawSize))
	fmt.Printf("  Ratio:       %.1f%% of raw\n", float64(len(data))/float64(rawSize)*100)
	fmt.Printf("  xxHash64:    %s\n", hasher.ContentHash(data, 16))
	fmt.Println()

	fmt.Println("  Chunk breakdown:")
	rows := []struct {
		name string
		st   qoi.OpStat
	}{
		{"INDEX", s.Index},
		{"DIFF", s.Diff},
		{"LUMA", s.Luma},
		{"RUN", s.Run},
		{"RGB", s.RGB},
		{"RGBA", s.RGBA},
	}
	for _, row := range rows {
		if row.st.Chunks == 0 {
			continue
		}
		fmt.Printf("    %-6s %8d chunks  %10s  %9d px\n",
			row.name, row.st.Chunks, formatBytes(int64(row.st.Bytes)), row.st.Pixels)
	}
	fmt.Println()

	// Warnings.
	if want := s.Desc.PixelCount(); s.Pixels != want {
		fmt.Printf("  ⚠ chunk stream covers %d pixels, header promises %d\n", s.Pixels, want)
	}
	if !s.ValidEnd {
		fmt.Println("  ⚠ reserved trailing bytes are not the standard terminator")
	}
	if s.Pixels == s.Desc.PixelCount() && s.ValidEnd {
		fmt.Println("  ✓ stream is well formed")
	}
	fmt.Println()

	return nil
}
