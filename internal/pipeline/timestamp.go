package pipeline

import (
	"log"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the fixed capture-time pattern cameras write.
const exifTimeLayout = "2006:01:02 15:04:05"

// watermarkLayout is the display format of the stamp.
const watermarkLayout = "2006-01-02 15:04:05"

// ResolveTimestamp derives the capture time for the photo at path.
// Preference order: EXIF DateTimeOriginal, EXIF DateTime, file modification
// time, now(). It never fails; unusable sources are logged and skipped.
func ResolveTimestamp(x *exif.Exif, path string, now func() time.Time) time.Time {
	if x != nil {
		for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime} {
			tag, err := x.Get(field)
			if err != nil {
				continue
			}
			s, err := tag.StringVal()
			if err != nil {
				continue
			}
			t, err := time.ParseInLocation(exifTimeLayout, s, time.Local)
			if err != nil {
				log.Printf("unparseable %s %q in %s: %v", field, s, path, err)
				continue
			}
			return t
		}
	}

	if fi, err := os.Stat(path); err == nil {
		return fi.ModTime()
	} else {
		log.Printf("no file time for %s: %v", path, err)
	}

	if now == nil {
		now = time.Now
	}
	return now()
}

// WatermarkText renders a timestamp as the stamp string.
func WatermarkText(t time.Time) string {
	return t.Format(watermarkLayout)
}
