// Package testutil synthesizes image fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/tiff"

	"photostamp/internal/tiffmeta"
)

// GradientImage builds a width x height RGBA test image with a smooth
// gradient, so re-encodes stay visually plausible and drawn pixels stand
// out against known background values.
func GradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			img.Set(x, y, color.RGBA{R: r, G: g, B: 128, A: 255})
		}
	}
	return img
}

// JPEGBytes encodes img as a plain JPEG (no metadata).
func JPEGBytes(img image.Image) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteJPEG writes img to path as a JPEG.
func WriteJPEG(path string, img image.Image) error {
	return os.WriteFile(path, JPEGBytes(img), 0o644)
}

// WritePNG writes img to path as a PNG.
func WritePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// TIFFBytes encodes img as a TIFF carrying an orientation tag in IFD0.
func TIFFBytes(img image.Image, orientation int) []byte {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, nil); err != nil {
		panic(err)
	}
	val := make([]byte, 2)
	binary.LittleEndian.PutUint16(val, uint16(orientation))
	entry := tiffmeta.Entry{Tag: 0x0112, Type: 3, Count: 1, Data: val}
	return tiffmeta.Splice(buf.Bytes(), []tiffmeta.Entry{entry})
}

// WriteTIFF writes img to path as a TIFF with the given orientation tag.
func WriteTIFF(path string, img image.Image, orientation int) error {
	return os.WriteFile(path, TIFFBytes(img, orientation), 0o644)
}

