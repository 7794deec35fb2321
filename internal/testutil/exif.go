package testutil

import (
	"bytes"
	"encoding/binary"
	"image"

	"photostamp/internal/jpegmeta"
)

// TIFF tags used when synthesizing EXIF fixtures.
const (
	tagOrientation      = 0x0112
	tagExifIFDPointer   = 0x8769
	tagDateTimeOriginal = 0x9003

	typeShort = 3
	typeLong  = 4
	typeASCII = 2
)

// ExifAPP1 builds a minimal but well-formed EXIF APP1 segment (marker,
// length, "Exif\0\0" header and a little-endian TIFF body) carrying an
// orientation tag in IFD0 and a DateTimeOriginal string in the Exif IFD.
// takenAt must use the camera layout "YYYY:MM:DD HH:MM:SS".
func ExifAPP1(orientation int, takenAt string) []byte {
	le := binary.LittleEndian

	// fixed layout: IFD0 at 8 (2 entries), Exif IFD at 38 (1 entry),
	// DateTimeOriginal string data at 56
	const (
		ifd0Offset    = 8
		exifIFDOffset = 38
		dateOffset    = 56
	)

	date := make([]byte, 20)
	copy(date, takenAt)

	var tiff bytes.Buffer
	tiff.WriteString("II")
	binary.Write(&tiff, le, uint16(42))
	binary.Write(&tiff, le, uint32(ifd0Offset))

	// IFD0
	binary.Write(&tiff, le, uint16(2))
	writeEntry(&tiff, le, tagOrientation, typeShort, 1, uint32(orientation))
	writeEntry(&tiff, le, tagExifIFDPointer, typeLong, 1, exifIFDOffset)
	binary.Write(&tiff, le, uint32(0))

	// Exif IFD
	binary.Write(&tiff, le, uint16(1))
	writeEntry(&tiff, le, tagDateTimeOriginal, typeASCII, uint32(len(date)), dateOffset)
	binary.Write(&tiff, le, uint32(0))

	tiff.Write(date)

	var seg bytes.Buffer
	seg.Write([]byte{0xFF, 0xE1})
	binary.Write(&seg, binary.BigEndian, uint16(2+6+tiff.Len()))
	seg.WriteString("Exif\x00\x00")
	seg.Write(tiff.Bytes())
	return seg.Bytes()
}

func writeEntry(buf *bytes.Buffer, order binary.ByteOrder, tag, typ uint16, count, value uint32) {
	binary.Write(buf, order, tag)
	binary.Write(buf, order, typ)
	binary.Write(buf, order, count)
	if typ == typeShort {
		binary.Write(buf, order, uint16(value))
		binary.Write(buf, order, uint16(0))
		return
	}
	binary.Write(buf, order, value)
}

// JPEGWithEXIF encodes img as JPEG and splices in a synthesized EXIF block.
func JPEGWithEXIF(img image.Image, orientation int, takenAt string) []byte {
	return jpegmeta.Splice(JPEGBytes(img), [][]byte{ExifAPP1(orientation, takenAt)})
}
