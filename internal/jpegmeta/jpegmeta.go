// Package jpegmeta shuffles raw JPEG marker segments so metadata written by
// a camera can be carried byte-for-byte into a re-encoded file.
package jpegmeta

import "encoding/binary"

const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8
	markerEOI    = 0xD9
	markerSOS    = 0xDA
	markerAPP0   = 0xE0
	markerAPP1   = 0xE1
	markerAPP15  = 0xEF
	markerCOM    = 0xFE
	markerTEM    = 0x01
	markerRST0   = 0xD0
	markerRST7   = 0xD7
)

// ExtractSegments walks the marker stream of a JPEG file and returns every
// APP0..APP15 and COM segment (marker bytes, length and payload) found
// before the scan data. Segments are returned in file order, so a JFIF
// APP0 keeps its mandated first position through a later Splice. A
// non-JPEG or truncated input yields whatever was collected so far,
// possibly nil.
func ExtractSegments(data []byte) [][]byte {
	if len(data) < 4 || data[0] != markerPrefix || data[1] != markerSOI {
		return nil
	}

	var segs [][]byte
	i := 2
	for i+4 <= len(data) {
		if data[i] != markerPrefix {
			return segs
		}
		m := data[i+1]
		switch {
		case m == markerSOS || m == markerEOI:
			// entropy-coded data starts; nothing left to collect
			return segs
		case m == markerTEM || (m >= markerRST0 && m <= markerRST7):
			// standalone marker, no length field
			i += 2
			continue
		}

		length := int(binary.BigEndian.Uint16(data[i+2:]))
		if length < 2 || i+2+length > len(data) {
			return segs
		}
		if (m >= markerAPP0 && m <= markerAPP15) || m == markerCOM {
			seg := make([]byte, 2+length)
			copy(seg, data[i:i+2+length])
			segs = append(segs, seg)
		}
		i += 2 + length
	}
	return segs
}

// Splice inserts segments into a freshly encoded JPEG, directly after the
// SOI marker (and after an encoder-written APP0, when present, so a JFIF
// header keeps its mandated first position). The input slices are not
// modified; the result is a new buffer.
func Splice(encoded []byte, segments [][]byte) []byte {
	if len(segments) == 0 {
		return encoded
	}
	if len(encoded) < 2 || encoded[0] != markerPrefix || encoded[1] != markerSOI {
		return encoded
	}

	insert := 2
	if len(encoded) >= 6 && encoded[2] == markerPrefix && encoded[3] == markerAPP0 {
		insert += 2 + int(binary.BigEndian.Uint16(encoded[4:]))
		if insert > len(encoded) {
			insert = 2
		}
	}

	total := 0
	for _, s := range segments {
		total += len(s)
	}

	out := make([]byte, 0, len(encoded)+total)
	out = append(out, encoded[:insert]...)
	for _, s := range segments {
		out = append(out, s...)
	}
	out = append(out, encoded[insert:]...)
	return out
}
