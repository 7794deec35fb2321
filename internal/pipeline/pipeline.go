package pipeline

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"photostamp/internal/fontload"
	"photostamp/internal/storage"
)

// Options carries the per-run knobs of the watermark pipeline. The zero
// value is usable: gold text, default JPEG quality, wall-clock fallback.
type Options struct {
	FontPath string
	Color    color.Color
	Quality  int
	Now      func() time.Time
}

// Result reports what was stamped onto a photo, for the status line.
type Result struct {
	Text     string
	FontSize int
}

// Process runs the full per-photo pipeline: decode, resolve timestamp, size
// the font, compute the orientation-aware position, composite the watermark
// and write the output atomically. The photo is either fully written to
// outPath or not written at all.
func Process(inPath, outPath string, opts Options) (Result, error) {
	p, err := DecodePhoto(inPath)
	if err != nil {
		return Result{}, err
	}

	taken := ResolveTimestamp(p.Meta, inPath, opts.Now)
	text := WatermarkText(taken)

	size := FontSize(len(text), p.Width(), p.Height())
	face := fontload.Load(opts.FontPath, size)
	textW, textH := fontload.Measure(face, text)

	x, y := Position(p.Orientation, p.Width(), p.Height(), textW, textH)
	spec := DrawSpec{X: x, Y: y, Angle: p.Orientation.GlyphRotation(), FontSize: size}

	DrawWatermark(p.Canvas, text, face, opts.Color, spec)

	var buf bytes.Buffer
	if err := EncodePhoto(p, &buf, opts.Quality); err != nil {
		return Result{}, err
	}
	if err := storage.AtomicWrite(outPath, &buf); err != nil {
		return Result{}, fmt.Errorf("write output: %w", err)
	}

	return Result{Text: text, FontSize: size}, nil
}
