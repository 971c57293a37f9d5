package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/mahyarmirrashed/qoi/internal/hasher"
	"github.com/mahyarmirrashed/qoi/internal/pixmap"
	"github.com/mahyarmirrashed/qoi/internal/qoi"
)

// Config holds all parameters for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Workers   int // 0 = NumCPU
	Verbose   bool
}

// Run scans InputDir, converts every image to QOI under OutputDir and
// returns the aggregated report. Individual file failures are reported
// and tolerated; Run fails only when nothing converts.
func Run(cfg Config) (*Report, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	sources, err := Scan(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", cfg.InputDir)
	}
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[qoi] found %d images, %d workers\n", len(sources), cfg.Workers)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// Encodes are pure functions over independent buffers, so the fan-out
	// needs no locking beyond the WaitGroup and the slot semaphore.
	results := make([]result, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[qoi] processing: %s\n", s.RelPath)
			}
			results[idx] = convertOne(s, cfg.OutputDir)
		}(i, src)
	}
	wg.Wait()

	report := NewReport()
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		report.Files = append(report.Files, r.entry)
	}
	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Source < report.Files[j].Source
	})

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[qoi] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to convert", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[qoi] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	report.Stats.Failed = len(errs)
	report.ComputeStats()
	return report, nil
}

// result holds the outcome of converting a single source image.
type result struct {
	entry FileEntry
	err   error
}

// convertOne decodes one source image, packs it and writes the QOI file.
func convertOne(src Source, outputDir string) result {
	img, _, err := pixmap.Load(src.AbsPath)
	if err != nil {
		return result{err: err}
	}

	pix, channels := pixmap.FromImage(img)
	desc := qoi.Desc{
		Width:      uint32(img.Bounds().Dx()),
		Height:     uint32(img.Bounds().Dy()),
		Channels:   channels,
		Colorspace: qoi.ColorspaceSRGB,
	}

	data, err := qoi.Encode(pix, desc)
	if err != nil {
		return result{err: fmt.Errorf("encode %s: %w", src.RelPath, err)}
	}

	relOut := src.Key + ".qoi"
	outPath := filepath.Join(outputDir, filepath.FromSlash(relOut))
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return result{err: fmt.Errorf("create %s: %w", dir, err)}
		}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return result{err: fmt.Errorf("write %s: %w", relOut, err)}
	}

	return result{entry: FileEntry{
		Source:     src.RelPath,
		Output:     relOut,
		Width:      desc.Width,
		Height:     desc.Height,
		Channels:   desc.Channels,
		InputSize:  src.Size,
		OutputSize: int64(len(data)),
		Hash:       hasher.ContentHash(data, 16),
	}}
}
