package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mahyarmirrashed/qoi/internal/batch"
)

var (
	batchWorkers int
	batchReport  string
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir> <output_dir>",
	Short: "Convert a directory of images to QOI in parallel",
	Long: `Scans the input directory for raster images (png, jpg, jpeg, gif,
bmp, tiff, webp) and converts each to a .qoi file under the output
directory, preserving the relative layout.`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().StringVar(&batchReport, "report", "", "write a JSON run report to this path")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	report, err := batch.Run(batch.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Workers:   batchWorkers,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	if batchReport != "" {
		if err := report.WriteJSON(batchReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logVerbose("report: %s", batchReport)
	}

	printBatchReport(report, time.Since(start))
	return nil
}

func printBatchReport(r *batch.Report, elapsed time.Duration) {
	stats := r.Stats
	ratio := float64(0)
	if stats.TotalInputBytes > 0 {
		ratio = float64(stats.TotalOutputBytes) / float64(stats.TotalInputBytes) * 100
	}

	fmt.Println()
	fmt.Printf("  Converted:   %d files\n", stats.TotalFiles)
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d files\n", stats.Failed)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()
}
