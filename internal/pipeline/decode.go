package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	"photostamp/internal/jpegmeta"
	"photostamp/internal/tiffmeta"
)

var formatByName = map[string]imaging.Format{
	"jpeg": imaging.JPEG,
	"png":  imaging.PNG,
	"bmp":  imaging.BMP,
	"tiff": imaging.TIFF,
}

var formatByExt = map[string]imaging.Format{
	".jpg":  imaging.JPEG,
	".jpeg": imaging.JPEG,
	".png":  imaging.PNG,
	".bmp":  imaging.BMP,
	".tiff": imaging.TIFF,
	".tif":  imaging.TIFF,
}

// InferFormat resolves the output encoding: the decoded format name wins,
// then the file extension, then JPEG.
func InferFormat(name, ext string) imaging.Format {
	if f, ok := formatByName[name]; ok {
		return f
	}
	if f, ok := formatByExt[strings.ToLower(ext)]; ok {
		return f
	}
	return imaging.JPEG
}

// DecodePhoto reads and decodes the image at path into a Photo. The pixel
// buffer is left in raw order; orientation and capture-time metadata are
// parsed from the same bytes. For JPEGs the original metadata segments are
// captured verbatim, for TIFFs the descriptive IFD0 entries are lifted out,
// so the encoder can restore them.
func DecodePhoto(path string) (*Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), ErrNotAnImage)
	}

	p := &Photo{
		Path:   path,
		Canvas: imaging.Clone(img),
		Format: InferFormat(name, filepath.Ext(path)),
	}

	// EXIF decode failure just means no metadata; not an error for PNG/BMP.
	if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
		p.Meta = x
	}
	p.Orientation = ReadOrientation(p.Meta)

	switch p.Format {
	case imaging.JPEG:
		p.Segments = jpegmeta.ExtractSegments(data)
	case imaging.TIFF:
		p.Tags = tiffmeta.CollectTags(data)
	}
	return p, nil
}
