package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"photostamp/internal/fontload"
)

// DefaultColor is the stamp color, opaque gold.
var DefaultColor = color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}

// ParseHexColor parses "#RRGGBB" (or "RRGGBB") into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// DrawWatermark composites text onto the canvas according to spec. For the
// unrotated orientations the glyphs go straight onto the canvas at
// (spec.X, spec.Y). For the rotated ones the glyphs are rendered into a
// transparent tile, the tile is rotated losslessly by the spec angle, and
// the result is alpha-composited so the text reads upright after the viewer
// applies the orientation tag. Only pixels are touched.
func DrawWatermark(canvas *image.NRGBA, text string, face font.Face, col color.Color, spec DrawSpec) {
	if canvas == nil || text == "" {
		return
	}
	if col == nil {
		col = DefaultColor
	}

	if spec.Angle == 0 {
		// For the dimension-swapping flip orientations (5, 7) the mapped
		// slot is only text-height wide, so a long stamp can run past the
		// right canvas edge and clip.
		drawText(canvas, text, face, col, spec.X, spec.Y)
		return
	}

	textW, textH := fontload.Measure(face, text)
	tile := image.NewNRGBA(image.Rect(0, 0, textW, textH))
	drawText(tile, text, face, col, 0, 0)

	var rotated *image.NRGBA
	switch spec.Angle {
	case 90:
		rotated = imaging.Rotate90(tile)
	case -90:
		rotated = imaging.Rotate270(tile)
	case 180:
		rotated = imaging.Rotate180(tile)
	default:
		rotated = tile
	}

	target := rotated.Rect.Add(image.Pt(spec.X, spec.Y))
	draw.Draw(canvas, target, rotated, image.Point{}, draw.Over)
}

// drawText renders one line of text with its bounding box top-left at (x, y).
func drawText(dst draw.Image, text string, face font.Face, col color.Color, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
