package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"photostamp/internal/testutil"
)

func TestResolveTimestamp_EXIF(t *testing.T) {
	img := testutil.GradientImage(64, 48)
	data := testutil.JPEGWithEXIF(img, 1, "2024:03:15 10:30:00")

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exif decode: %v", err)
	}

	got := ResolveTimestamp(x, "does-not-matter.jpg", nil)
	want := time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveTimestamp_ModTimeFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := testutil.WriteJPEG(path, testutil.GradientImage(32, 32)); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	mtime := time.Date(2020, 6, 1, 12, 0, 0, 0, time.Local)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got := ResolveTimestamp(nil, path, nil)
	if !got.Equal(mtime) {
		t.Fatalf("got %v, want mtime %v", got, mtime)
	}
}

func TestResolveTimestamp_NowFallback(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)
	got := ResolveTimestamp(nil, filepath.Join(t.TempDir(), "missing.jpg"), func() time.Time { return fixed })
	if !got.Equal(fixed) {
		t.Fatalf("got %v, want now() %v", got, fixed)
	}
}

func TestWatermarkText(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)
	if got := WatermarkText(ts); got != "2024-03-15 10:30:00" {
		t.Fatalf("got %q", got)
	}
}
