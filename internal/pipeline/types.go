package pipeline

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	"photostamp/internal/tiffmeta"
)

var (
	ErrNotAnImage = errors.New("file is not a supported image")
	ErrNilPhoto   = errors.New("nil photo")
)

// Photo holds one decoded image for the duration of a single pipeline run.
// The pixel buffer stays in raw (sensor) order; the orientation tag is kept
// so viewers apply the rotation themselves, and the source metadata is
// carried through to the encoder untouched.
type Photo struct {
	Path        string
	Canvas      *image.NRGBA
	Format      imaging.Format
	Orientation Orientation
	Meta        *exif.Exif       // nil when the file carries no EXIF
	Segments    [][]byte         // raw APPn/COM segments from a source JPEG
	Tags        []tiffmeta.Entry // descriptive IFD0 entries from a source TIFF
}

// Width returns the raw (pre-orientation) pixel width.
func (p *Photo) Width() int { return p.Canvas.Rect.Dx() }

// Height returns the raw (pre-orientation) pixel height.
func (p *Photo) Height() int { return p.Canvas.Rect.Dy() }

// DrawSpec is the computed placement for one watermark: a raw-space draw
// origin, the rotation applied to the glyphs, and the font size used.
type DrawSpec struct {
	X        int
	Y        int
	Angle    int // degrees counter-clockwise: 0, 90, -90 or 180
	FontSize int
}
