package pipeline

import (
	"github.com/rwcarlsen/goexif/exif"
)

// Orientation is the EXIF flag that records the transform a viewer must
// apply to the raw pixel buffer to display the photo upright. Values are
// named after the correcting operation, matching the imaging package.
type Orientation int

const (
	Normal     Orientation = 1
	FlipH      Orientation = 2
	Rotate180  Orientation = 3
	FlipV      Orientation = 4
	Transpose  Orientation = 5
	Rotate270  Orientation = 6 // camera rotated right: viewer rotates 90 CW
	Transverse Orientation = 7
	Rotate90   Orientation = 8 // camera rotated left: viewer rotates 90 CCW
)

// ParseOrientation normalizes a raw tag value. Anything outside 1-8
// (including a missing tag) is treated as Normal.
func ParseOrientation(v int) Orientation {
	if v < 1 || v > 8 {
		return Normal
	}
	return Orientation(v)
}

// ReadOrientation pulls the orientation tag out of decoded EXIF. A nil or
// corrupt EXIF block yields Normal.
func ReadOrientation(x *exif.Exif) Orientation {
	if x == nil {
		return Normal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return Normal
	}
	v, err := tag.Int(0)
	if err != nil {
		return Normal
	}
	return ParseOrientation(v)
}

// SwapsDimensions reports whether the displayed width/height are the raw
// height/width.
func (o Orientation) SwapsDimensions() bool {
	switch o {
	case Transpose, Rotate270, Transverse, Rotate90:
		return true
	}
	return false
}

// VisualDims returns the dimensions of the photo as a viewer sees it.
func (o Orientation) VisualDims(rawW, rawH int) (int, int) {
	if o.SwapsDimensions() {
		return rawH, rawW
	}
	return rawW, rawH
}

// MapVisualRectToRaw maps the top-left corner of a textW x textH rectangle
// anchored at (vx, vy) in visual space to the top-left corner of its
// bounding box in raw pixel space. Each case is the inverse of one EXIF
// display transform applied to the rectangle's corners; for the
// dimension-swapping orientations the raw bounding box is textH wide and
// textW tall.
func (o Orientation) MapVisualRectToRaw(vx, vy, textW, textH, rawW, rawH int) (int, int) {
	switch o {
	case FlipH:
		return rawW - textW - vx, vy
	case Rotate180:
		return rawW - textW - vx, rawH - textH - vy
	case FlipV:
		return vx, rawH - textH - vy
	case Transpose:
		return vy, vx
	case Rotate270:
		return vy, rawH - textW - vx
	case Transverse:
		return rawW - textH - vy, rawH - textW - vx
	case Rotate90:
		return rawW - textH - vy, vx
	default:
		return vx, vy
	}
}

// GlyphRotation returns the rotation, in degrees counter-clockwise, that
// the rendered glyphs need in raw space so they read upright once the
// viewer applies the orientation. Only the pure rotations get a correction;
// the flip orientations (2, 4, 5, 7) draw unrotated text, since mirrored
// glyphs would be unreadable.
func (o Orientation) GlyphRotation() int {
	switch o {
	case Rotate180:
		return 180
	case Rotate270:
		return 90
	case Rotate90:
		return -90
	default:
		return 0
	}
}
