// Package cmd wires up the qoi command-line interface.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "qoi <infile> <outfile>",
	Short: "Convert between QOI and common raster image formats",
	Long: `qoi — lossless converter for the "Quite OK Image" format.

Dispatches on file suffix: a .qoi input is decoded, anything else is read
as a regular raster image (png, jpeg, gif, bmp, tiff, webp); the output
suffix picks the target format (.qoi or .png).

Examples:
  qoi input.png output.qoi
  qoi input.qoi output.png`,
	Version: version,
	Args:    cobra.ExactArgs(2),
	RunE:    runConvert,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"qoi %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[qoi] "+format+"\n", args...)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
