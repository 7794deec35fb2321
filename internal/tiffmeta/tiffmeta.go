// Package tiffmeta carries descriptive IFD0 entries from a source TIFF into
// a freshly encoded one, so tags like Orientation and DateTime survive a
// re-encode that rebuilds the file from pixel data.
package tiffmeta

import (
	"encoding/binary"
	"sort"
)

// Descriptive IFD0 tags worth carrying. Structural tags (dimensions,
// compression, strip layout) belong to the new encode and stay out.
// Sub-IFD pointers (Exif, GPS) reference offsets inside the source file
// and cannot be copied without rewriting the whole tree.
var carried = map[uint16]bool{
	0x010E: true, // ImageDescription
	0x010F: true, // Make
	0x0110: true, // Model
	0x0112: true, // Orientation
	0x0131: true, // Software
	0x0132: true, // DateTime
	0x013B: true, // Artist
	0x8298: true, // Copyright
}

// bytes per element for each TIFF field type
var typeSize = map[uint16]uint32{
	1: 1, 2: 1, 3: 2, 4: 4, 5: 8, 6: 1, 7: 1, 8: 2, 9: 4, 10: 8, 11: 4, 12: 8,
}

// maxValueLen caps the value payload of a carried entry; anything larger is
// skipped rather than carried.
const maxValueLen = 1 << 16

// Entry is one IFD entry lifted out of a source file. Data holds the value
// bytes with multi-byte elements in little-endian order regardless of the
// source byte order.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Data  []byte
}

func parseHeader(data []byte) (binary.ByteOrder, int, bool) {
	if len(data) < 8 {
		return nil, 0, false
	}
	var order binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, 0, false
	}
	if order.Uint16(data[2:4]) != 42 {
		return nil, 0, false
	}
	return order, int(order.Uint32(data[4:8])), true
}

// elemWidth is the byte-swap unit for a field type. Rationals are pairs of
// longs, so they swap in 4-byte units.
func elemWidth(typ uint16) int {
	switch typ {
	case 3, 8:
		return 2
	case 4, 5, 9, 10, 11:
		return 4
	case 12:
		return 8
	default:
		return 1
	}
}

// reorder flips the byte order of every element in a value payload. The
// same operation converts either direction.
func reorder(data []byte, typ uint16) []byte {
	w := elemWidth(typ)
	if w == 1 {
		return data
	}
	out := make([]byte, len(data))
	for i := 0; i+w <= len(data); i += w {
		for j := 0; j < w; j++ {
			out[i+j] = data[i+w-1-j]
		}
	}
	return out
}

// CollectTags parses the first IFD of a TIFF file and returns the carried
// descriptive entries found there. Malformed input yields nil.
func CollectTags(src []byte) []Entry {
	order, off, ok := parseHeader(src)
	if !ok || off < 8 || off+2 > len(src) {
		return nil
	}
	n := int(order.Uint16(src[off : off+2]))

	var out []Entry
	for i := 0; i < n; i++ {
		e := off + 2 + i*12
		if e+12 > len(src) {
			return out
		}
		tag := order.Uint16(src[e : e+2])
		if !carried[tag] {
			continue
		}
		typ := order.Uint16(src[e+2 : e+4])
		size, ok := typeSize[typ]
		if !ok {
			continue
		}
		count := order.Uint32(src[e+4 : e+8])
		total := int64(size) * int64(count)
		if total <= 0 || total > maxValueLen {
			continue
		}

		var val []byte
		if total <= 4 {
			val = src[e+8 : e+8+int(total)]
		} else {
			vo := int64(order.Uint32(src[e+8 : e+12]))
			if vo < 8 || vo+total > int64(len(src)) {
				continue
			}
			val = src[vo : vo+total]
		}
		data := make([]byte, len(val))
		copy(data, val)
		if order == binary.BigEndian {
			data = reorder(data, typ)
		}
		out = append(out, Entry{Tag: tag, Type: typ, Count: count, Data: data})
	}
	return out
}

// Splice merges carried entries into the first IFD of a freshly encoded
// TIFF. The IFD is rewritten at the end of the file with the header
// repointed at it; no original byte moves, so the value offsets of the
// encoder's own entries stay valid. Entries already present in the encode
// win over carried ones with the same tag. The input slices are not
// modified; input that is not a parseable TIFF comes back unchanged.
func Splice(encoded []byte, entries []Entry) []byte {
	if len(entries) == 0 {
		return encoded
	}
	order, off, ok := parseHeader(encoded)
	if !ok || off < 8 || off+2 > len(encoded) {
		return encoded
	}
	n := int(order.Uint16(encoded[off : off+2]))
	if off+2+n*12+4 > len(encoded) {
		return encoded
	}

	type rawEntry struct {
		tag uint16
		raw []byte
	}
	merged := make([]rawEntry, 0, n+len(entries))
	present := make(map[uint16]bool, n)
	for i := 0; i < n; i++ {
		e := off + 2 + i*12
		tag := order.Uint16(encoded[e : e+2])
		present[tag] = true
		merged = append(merged, rawEntry{tag: tag, raw: encoded[e : e+12]})
	}

	out := make([]byte, len(encoded), len(encoded)+len(entries)*12+64)
	copy(out, encoded)

	added := 0
	for _, e := range entries {
		size, ok := typeSize[e.Type]
		if present[e.Tag] || !ok || int(size)*int(e.Count) != len(e.Data) {
			continue
		}
		data := e.Data
		if order == binary.BigEndian {
			data = reorder(data, e.Type)
		}

		raw := make([]byte, 12)
		order.PutUint16(raw[0:2], e.Tag)
		order.PutUint16(raw[2:4], e.Type)
		order.PutUint32(raw[4:8], e.Count)
		if len(data) <= 4 {
			copy(raw[8:], data)
		} else {
			if len(out)%2 == 1 {
				out = append(out, 0)
			}
			order.PutUint32(raw[8:12], uint32(len(out)))
			out = append(out, data...)
		}
		merged = append(merged, rawEntry{tag: e.Tag, raw: raw})
		present[e.Tag] = true
		added++
	}
	if added == 0 {
		return encoded
	}

	// TIFF requires IFD entries in ascending tag order
	sort.Slice(merged, func(i, j int) bool { return merged[i].tag < merged[j].tag })

	if len(out)%2 == 1 {
		out = append(out, 0)
	}
	newOff := len(out)
	var count [2]byte
	order.PutUint16(count[:], uint16(len(merged)))
	out = append(out, count[:]...)
	for _, m := range merged {
		out = append(out, m.raw...)
	}
	out = append(out, 0, 0, 0, 0) // no next IFD

	order.PutUint32(out[4:8], uint32(newOff))
	return out
}
