package pipeline

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"

	"photostamp/internal/jpegmeta"
	"photostamp/internal/tiffmeta"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 95

// EncodePhoto writes the photo's pixel buffer to w in its original format.
// Metadata captured at decode time is spliced back in: for JPEG the raw
// APPn/COM segments byte-for-byte, for TIFF the carried IFD0 entries, so
// the orientation tag and capture metadata survive the re-encode.
func EncodePhoto(p *Photo, w io.Writer, quality int) error {
	if p == nil || p.Canvas == nil {
		return ErrNilPhoto
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	if quality > 100 {
		quality = 100
	}

	switch p.Format {
	case imaging.JPEG:
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, p.Canvas, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
		if _, err := w.Write(jpegmeta.Splice(buf.Bytes(), p.Segments)); err != nil {
			return fmt.Errorf("write jpeg: %w", err)
		}
		return nil
	case imaging.TIFF:
		var buf bytes.Buffer
		opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
		if err := tiff.Encode(&buf, p.Canvas, opts); err != nil {
			return fmt.Errorf("encode tiff: %w", err)
		}
		if _, err := w.Write(tiffmeta.Splice(buf.Bytes(), p.Tags)); err != nil {
			return fmt.Errorf("write tiff: %w", err)
		}
		return nil
	}

	if err := imaging.Encode(w, p.Canvas, p.Format); err != nil {
		return fmt.Errorf("encode %v: %w", p.Format, err)
	}
	return nil
}
