// Package batch walks a folder of photos and watermarks each one through
// the pipeline, one photo per job across a small worker pool.
package batch

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"photostamp/internal/config"
	"photostamp/internal/pipeline"
	"photostamp/internal/storage"
)

// supportedExts are the photo extensions that get processed; anything else
// in the folder is ignored and not counted.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// Result is the end-of-run tally. Total counts supported image files found;
// Processed counts the ones whose watermarked copy was written.
type Result struct {
	Processed int
	Total     int
}

// Run watermarks every supported photo directly inside inputDir, writing
// results to the configured output subdirectory. Per-photo failures are
// logged and counted but never abort the run. Cancelling ctx stops
// scheduling new photos; output already written stays.
func Run(ctx context.Context, cfg *config.Config, inputDir string) (Result, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return Result{}, fmt.Errorf("read input folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if supportedExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}

	outDir := filepath.Join(inputDir, cfg.OutputSubdir)
	if err := storage.EnsureDir(outDir); err != nil {
		return Result{}, fmt.Errorf("create output folder: %w", err)
	}
	storage.CleanStaleTemp(outDir)

	col := stampColor(cfg.Color)
	opts := pipeline.Options{
		FontPath: cfg.FontPath,
		Color:    col,
		Quality:  cfg.JPEGQuality,
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan string)
	var processed atomic.Int64
	var wg sync.WaitGroup

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for name := range jobs {
				inPath := filepath.Join(inputDir, name)
				outPath := storage.OutputPath(inputDir, cfg.OutputSubdir, cfg.OutputPrefix, name)
				res, err := pipeline.Process(inPath, outPath, opts)
				if err != nil {
					log.Printf("failed %s: %v", name, err)
					continue
				}
				processed.Add(1)
				log.Printf("processed %s -> %s (font %dpx)", name, res.Text, res.FontSize)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, name := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- name:
			}
		}
	}()

	wg.Wait()
	return Result{Processed: int(processed.Load()), Total: len(files)}, nil
}

func stampColor(hex string) color.Color {
	c, err := pipeline.ParseHexColor(hex)
	if err != nil {
		log.Printf("bad watermark color %q, using gold: %v", hex, err)
		return pipeline.DefaultColor
	}
	return c
}
