package pipeline

import "math"

// Empirical constants for the font sizing heuristic: the watermark should
// cover roughly 3% of the image area, assuming an average glyph
// width-to-height ratio of 0.6 and a text density factor of 2.
const (
	textAreaFraction = 0.03
	charWidthRatio   = 0.6
	textDensity      = 2.0
	minFontSize      = 20
)

// FontSize computes the watermark font size in pixels for a text of
// textLen characters on an imgWidth x imgHeight canvas. The result is
// clamped to [minFontSize, min(w,h)/10]; the lower bound wins when the
// image is too small for both to hold. Exact text measurement happens
// later, this only picks the face size.
func FontSize(textLen, imgWidth, imgHeight int) int {
	if textLen <= 0 {
		textLen = 1
	}
	targetArea := float64(imgWidth) * float64(imgHeight) * textAreaFraction
	size := int(math.Sqrt(targetArea / (float64(textLen) * charWidthRatio * textDensity)))

	maxSize := min(imgWidth, imgHeight) / 10
	if size > maxSize {
		size = maxSize
	}
	if size < minFontSize {
		size = minFontSize
	}
	return size
}
