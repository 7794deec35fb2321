// Command photostamp stamps each photo in a folder with its capture time,
// bottom-right as displayed, preserving format and metadata. Results go to
// a "mask" subdirectory next to the originals.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	flag "github.com/spf13/pflag"

	"photostamp/internal/batch"
	"photostamp/internal/config"
)

func main() {
	cfg := config.Load()

	inputDir := flag.String("input_folder", "", "folder containing the photos to watermark")
	fontPath := flag.String("font", cfg.FontPath, "path to a .ttf font file (optional)")
	workers := flag.IntP("workers", "w", cfg.Workers, "number of concurrent workers")
	flag.Parse()

	if *inputDir == "" {
		flag.Usage()
		log.Fatal("--input_folder is required")
	}
	fi, err := os.Stat(*inputDir)
	if err != nil {
		log.Fatalf("folder %q does not exist", *inputDir)
	}
	if !fi.IsDir() {
		log.Fatalf("%q is not a folder", *inputDir)
	}

	cfg.FontPath = *fontPath
	cfg.Workers = *workers

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("processing folder: %s", *inputDir)
	log.Printf("output folder: %s", filepath.Join(*inputDir, cfg.OutputSubdir))

	res, err := batch.Run(ctx, cfg, *inputDir)
	if err != nil {
		log.Fatalf("batch failed: %v", err)
	}
	log.Printf("done: %d of %d photos watermarked", res.Processed, res.Total)
}
