package tiffmeta

import (
	"bytes"
	"encoding/binary"
	"image"
	"testing"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

func encodedTIFF(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	if err := tiff.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func orientationEntry(v int) Entry {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, uint16(v))
	return Entry{Tag: 0x0112, Type: 3, Count: 1, Data: data}
}

func dateTimeEntry(s string) Entry {
	data := append([]byte(s), 0)
	return Entry{Tag: 0x0132, Type: 2, Count: uint32(len(data)), Data: data}
}

func TestSplice_AddsOrientation(t *testing.T) {
	out := Splice(encodedTIFF(t), []Entry{orientationEntry(6)})

	x, err := exif.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("exif decode: %v", err)
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		t.Fatalf("orientation tag missing: %v", err)
	}
	if v, _ := tag.Int(0); v != 6 {
		t.Fatalf("orientation = %d, want 6", v)
	}
}

func TestSplice_OutputStillDecodes(t *testing.T) {
	out := Splice(encodedTIFF(t), []Entry{
		orientationEntry(8),
		dateTimeEntry("2023:07:14 10:30:00"),
	})

	img, err := tiff.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("tiff decode after splice: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("bounds = %v, want 8x8", b)
	}
}

func TestSplice_ExistingTagWins(t *testing.T) {
	first := Splice(encodedTIFF(t), []Entry{orientationEntry(6)})
	second := Splice(first, []Entry{orientationEntry(3)})

	x, err := exif.Decode(bytes.NewReader(second))
	if err != nil {
		t.Fatalf("exif decode: %v", err)
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		t.Fatalf("orientation tag missing: %v", err)
	}
	if v, _ := tag.Int(0); v != 6 {
		t.Fatalf("orientation = %d, want the already-present 6", v)
	}
}

func TestSplice_NoEntries(t *testing.T) {
	encoded := encodedTIFF(t)
	if got := Splice(encoded, nil); !bytes.Equal(got, encoded) {
		t.Fatal("no-op splice changed the stream")
	}
}

func TestSplice_NotTIFF(t *testing.T) {
	in := []byte("plain text, not a tiff")
	if got := Splice(in, []Entry{orientationEntry(1)}); !bytes.Equal(got, in) {
		t.Fatal("non-TIFF input should come back unchanged")
	}
}

func TestCollectTags(t *testing.T) {
	const date = "2023:07:14 10:30:00"
	src := Splice(encodedTIFF(t), []Entry{
		orientationEntry(6),
		dateTimeEntry(date),
	})

	tags := CollectTags(src)
	if len(tags) != 2 {
		t.Fatalf("got %d carried tags, want 2", len(tags))
	}

	byTag := map[uint16]Entry{}
	for _, e := range tags {
		byTag[e.Tag] = e
	}
	o, ok := byTag[0x0112]
	if !ok {
		t.Fatal("orientation not collected")
	}
	if v := binary.LittleEndian.Uint16(o.Data); v != 6 {
		t.Fatalf("orientation value = %d, want 6", v)
	}
	d, ok := byTag[0x0132]
	if !ok {
		t.Fatal("datetime not collected")
	}
	if got := string(d.Data); got != date+"\x00" {
		t.Fatalf("datetime value = %q", got)
	}
}

func TestCollectTags_SkipsStructuralTags(t *testing.T) {
	for _, e := range CollectTags(encodedTIFF(t)) {
		t.Errorf("collected tag 0x%04X from a bare encode", e.Tag)
	}
}

func TestCollectTags_BigEndian(t *testing.T) {
	var b bytes.Buffer
	be := binary.BigEndian
	b.WriteString("MM")
	binary.Write(&b, be, uint16(42))
	binary.Write(&b, be, uint32(8)) // IFD right after the header
	binary.Write(&b, be, uint16(1))
	binary.Write(&b, be, uint16(0x0112)) // orientation, SHORT, count 1
	binary.Write(&b, be, uint16(3))
	binary.Write(&b, be, uint32(1))
	binary.Write(&b, be, uint16(6))
	binary.Write(&b, be, uint16(0)) // value padding
	binary.Write(&b, be, uint32(0)) // no next IFD

	tags := CollectTags(b.Bytes())
	if len(tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(tags))
	}
	if v := binary.LittleEndian.Uint16(tags[0].Data); v != 6 {
		t.Fatalf("orientation value = %d, want 6 normalized to little-endian", v)
	}
}

func TestCollectTags_NotTIFF(t *testing.T) {
	if tags := CollectTags([]byte("nope")); tags != nil {
		t.Fatalf("expected nil for non-TIFF, got %d tags", len(tags))
	}
}
