package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestLoad_NeverNil(t *testing.T) {
	if Load("", 24) == nil {
		t.Fatal("Load with no path returned nil")
	}
	if Load(filepath.Join(t.TempDir(), "missing.ttf"), 24) == nil {
		t.Fatal("Load with a bad path returned nil")
	}
}

func TestLoad_EmbeddedFallback(t *testing.T) {
	// no caller font, no system fonts: the embedded face must kick in
	origFonts, origDirs := SystemFonts, FontDirs
	SystemFonts = nil
	FontDirs = func() []string { return nil }
	defer func() {
		SystemFonts, FontDirs = origFonts, origDirs
	}()

	face := Load("", 32)
	if face == nil {
		t.Fatal("no face from embedded fallback")
	}
	if face == basicfont.Face7x13 {
		t.Fatal("embedded TTF should win over the bitmap face")
	}

	w, h := Measure(face, "2024-03-15 10:30:00")
	if w <= 0 || h <= 0 {
		t.Fatalf("bad metrics %dx%d", w, h)
	}
}

func TestLoad_NotAFont(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.ttf")
	if err := os.WriteFile(path, []byte("definitely not a font"), 0o644); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if Load(path, 20) == nil {
		t.Fatal("unparseable font file must still fall back")
	}
}

func TestMeasure_Bitmap(t *testing.T) {
	w, h := Measure(basicfont.Face7x13, "stamp")
	if w != 5*7 {
		t.Fatalf("width %d, want 35", w)
	}
	if h != 13 {
		t.Fatalf("height %d, want 13", h)
	}
}

func TestLoad_SizeScales(t *testing.T) {
	small := Load("", 20)
	large := Load("", 80)
	ws, _ := Measure(small, "2024-03-15 10:30:00")
	wl, _ := Measure(large, "2024-03-15 10:30:00")
	if wl <= ws {
		t.Fatalf("80px text (%d) should measure wider than 20px text (%d)", wl, ws)
	}
}
