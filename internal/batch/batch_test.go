package batch

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mahyarmirrashed/qoi/internal/qoi"
)

// writePNG drops a small deterministic PNG fixture at path.
func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: byte(x * 251), G: byte(y * 179), B: byte((x + y) * 113), A: 255,
			})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "cards", "b.png"), 4, 4)
	writePNG(t, filepath.Join(dir, ".hidden", "c.png"), 4, 4)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := Scan(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("sources: got %d, want 2", len(sources))
	}
	keys := map[string]bool{}
	for _, s := range sources {
		keys[s.Key] = true
		if s.Format != "png" {
			t.Errorf("format of %s: got %s", s.RelPath, s.Format)
		}
	}
	if !keys["a"] || !keys["cards/b"] {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestRun(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writePNG(t, filepath.Join(inDir, "one.png"), 8, 8)
	writePNG(t, filepath.Join(inDir, "sub", "two.png"), 16, 4)

	report, err := Run(Config{InputDir: inDir, OutputDir: outDir, Workers: 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Stats.TotalFiles != 2 {
		t.Fatalf("total files: got %d, want 2", report.Stats.TotalFiles)
	}
	if report.Stats.Failed != 0 {
		t.Errorf("failed: got %d, want 0", report.Stats.Failed)
	}

	for _, f := range report.Files {
		outPath := filepath.Join(outDir, filepath.FromSlash(f.Output))
		pix, desc, err := qoi.ReadFile(outPath, 0)
		if err != nil {
			t.Fatalf("decode %s: %v", f.Output, err)
		}
		if desc.Width != f.Width || desc.Height != f.Height {
			t.Errorf("%s: descriptor %dx%d, report %dx%d",
				f.Output, desc.Width, desc.Height, f.Width, f.Height)
		}
		if want := int(desc.Width) * int(desc.Height) * int(desc.Channels); len(pix) != want {
			t.Errorf("%s: pixel bytes %d, want %d", f.Output, len(pix), want)
		}
		if f.Hash == "" {
			t.Errorf("%s: missing content hash", f.Output)
		}
	}
}

func TestRun_PartialFailure(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writePNG(t, filepath.Join(inDir, "good.png"), 4, 4)
	if err := os.WriteFile(filepath.Join(inDir, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Run(Config{InputDir: inDir, OutputDir: outDir, Workers: 1})
	if err != nil {
		t.Fatalf("run should tolerate partial failure: %v", err)
	}
	if report.Stats.TotalFiles != 1 {
		t.Errorf("total files: got %d, want 1", report.Stats.TotalFiles)
	}
	if report.Stats.Failed != 1 {
		t.Errorf("failed: got %d, want 1", report.Stats.Failed)
	}
}

func TestRun_EmptyDir(t *testing.T) {
	if _, err := Run(Config{InputDir: t.TempDir(), OutputDir: t.TempDir()}); err == nil {
		t.Fatal("expected error for empty input dir")
	}
}

func TestReport_WriteJSON(t *testing.T) {
	r := NewReport()
	r.Files = []FileEntry{{
		Source: "a.png", Output: "a.qoi",
		Width: 8, Height: 8, Channels: 4,
		InputSize: 100, OutputSize: 60, Hash: "abcd1234abcd1234",
	}}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := r.WriteJSON(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var back Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Version != SupportedReportVersion {
		t.Errorf("version: got %d, want %d", back.Version, SupportedReportVersion)
	}
	if back.Stats.TotalFiles != 1 || back.Stats.TotalInputBytes != 100 || back.Stats.TotalOutputBytes != 60 {
		t.Errorf("stats: got %+v", back.Stats)
	}
	if len(back.Files) != 1 || back.Files[0].Output != "a.qoi" {
		t.Errorf("files: got %+v", back.Files)
	}
}
