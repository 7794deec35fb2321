// Package fontload resolves a usable font face for the watermark through an
// ordered fallback chain. Loading never fails: the chain bottoms out in the
// embedded Go Regular typeface and, past that, a fixed bitmap face.
package fontload

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// SystemFonts is the ordered list of well-known typeface filenames tried
// after the caller-supplied path. Package-level so tests can substitute it.
var SystemFonts = []string{
	"arial.ttf",
	"times.ttf",
	"calibri.ttf",
	"verdana.ttf",
	"tahoma.ttf",
}

// FontDirs returns the directories searched for SystemFonts entries.
// Overridable for tests.
var FontDirs = systemFontDirs

// Load returns a font face of the given pixel size. Candidates are tried in
// order: the caller path, each SystemFonts entry found in an OS font
// directory, the embedded Go Regular data, and finally the built-in bitmap
// face, which cannot fail.
func Load(path string, size int) font.Face {
	for _, candidate := range candidates(path) {
		b, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if face, err := newFace(b, size); err == nil {
			return face
		}
	}
	if face, err := newFace(goregular.TTF, size); err == nil {
		return face
	}
	return basicfont.Face7x13
}

// Measure returns the pixel width and height of text rendered in face.
func Measure(face font.Face, text string) (int, int) {
	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	m := face.Metrics()
	return w, (m.Ascent + m.Descent).Ceil()
}

func newFace(ttf []byte, size int) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func candidates(path string) []string {
	var out []string
	if path != "" {
		out = append(out, path)
	}
	for _, name := range SystemFonts {
		if p := findSystemFont(name); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// findSystemFont looks for filename (case-insensitively) in the OS font
// directories.
func findSystemFont(filename string) string {
	lower := strings.ToLower(filename)
	for _, dir := range FontDirs() {
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if strings.ToLower(e.Name()) == lower {
				return filepath.Join(dir, e.Name())
			}
		}
	}
	return ""
}

func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts`}
	case "darwin":
		return []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
			filepath.Join(os.Getenv("HOME"), "Library/Fonts"),
		}
	default:
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(os.Getenv("HOME"), ".fonts"),
		}
	}
}
