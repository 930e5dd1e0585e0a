package profsave

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"strings"
)

// Magic is the fixed header that identifies a binary profile.
var Magic = []byte("PROFSAVE")

// minBinaryLen is the smallest input that could hold the magic, version,
// and record count.
const minBinaryLen = 16

// maxKeyLen bounds the declared key length of a record. Anything larger is
// treated as stream corruption and stops record iteration.
const maxKeyLen = 1000

// Binary record type tags. All multi-byte values are little-endian; this
// layout is a compatibility contract with pre-existing profile files.
const (
	tagBool        = 0  // 1 byte
	tagUint32      = 1  // 4 bytes
	tagFloat32     = 2  // 4 bytes
	tagString      = 3  // u32 length + bytes
	tagFloat64     = 4  // 8 bytes
	tagUint64      = 5  // 8 bytes
	tagUint16      = 6  // 2 bytes
	tagUint8       = 7  // 1 byte
	tagChar        = 8  // 1 byte
	tagBoolArray   = 9  // u32 count + count bytes
	tagIntArray    = 10 // u32 count + count*4 bytes
	tagFloatArray  = 11 // u32 count + count*4 bytes
	tagStringArray = 12 // u32 count + count*(u32 length + bytes)
)

// parseBinary decodes a binary profile. A missing magic header re-routes to
// the text parser, since the file is probably not binary at all. Any
// out-of-bounds read or implausible length stops record iteration and
// returns whatever was decoded so far; partial success is expected, never a
// failure. An unrecognized type tag also stops iteration: guessing the
// width of an unknown field would desynchronize every record after it.
// The third return reports whether all declared records were decoded; a
// false value means the stream holds records the caller cannot see.
func parseBinary(raw []byte) (map[string]string, []string, bool) {
	if len(raw) < minBinaryLen {
		return map[string]string{}, nil, true
	}
	if !bytes.HasPrefix(raw, Magic) {
		entries, order := parseText(raw)
		return entries, order, true
	}

	entries := make(map[string]string)
	var order []string

	r := newByteReader(raw, len(Magic))
	_ = r.uint32() // version, informational only
	count := r.uint32()
	if !r.ok {
		return entries, order, false
	}

	complete := true
	for i := uint32(0); i < count; i++ {
		keyLen := r.uint32()
		if !r.ok || keyLen == 0 || keyLen > maxKeyLen {
			complete = false
			break
		}
		key := string(r.bytes(int(keyLen)))
		tag := r.uint8()
		if !r.ok {
			complete = false
			break
		}

		val, ok := decodeValue(r, tag)
		if !ok {
			complete = false
			break
		}

		if _, seen := entries[key]; !seen {
			order = append(order, key)
		}
		entries[key] = val
	}

	return entries, order, complete
}

// decodeValue decodes one record value for the given type tag and renders
// it as a string. Returns false when the tag is unrecognized or the buffer
// ran out.
func decodeValue(r *byteReader, tag uint8) (string, bool) {
	switch tag {
	case tagBool:
		b := r.uint8()
		return formatBool(b), r.ok
	case tagUint32:
		v := r.uint32()
		return strconv.FormatUint(uint64(v), 10), r.ok
	case tagFloat32:
		v := r.float32()
		return strconv.FormatFloat(float64(v), 'f', -1, 32), r.ok
	case tagString:
		return r.lpString()
	case tagFloat64:
		v := r.float64()
		return strconv.FormatFloat(v, 'f', -1, 64), r.ok
	case tagUint64:
		v := r.uint64()
		return strconv.FormatUint(v, 10), r.ok
	case tagUint16:
		v := r.uint16()
		return strconv.FormatUint(uint64(v), 10), r.ok
	case tagUint8:
		v := r.uint8()
		return strconv.FormatUint(uint64(v), 10), r.ok
	case tagChar:
		v := r.uint8()
		return string(rune(v)), r.ok
	case tagBoolArray:
		return decodeArray(r, 1, func() string { return formatBool(r.uint8()) })
	case tagIntArray:
		return decodeArray(r, 4, func() string { return strconv.FormatUint(uint64(r.uint32()), 10) })
	case tagFloatArray:
		return decodeArray(r, 4, func() string {
			return strconv.FormatFloat(float64(r.float32()), 'f', -1, 32)
		})
	case tagStringArray:
		return decodeStringArray(r)
	default:
		return "", false
	}
}

// decodeArray decodes a u32-counted array of fixed-width elements and joins
// the rendered elements with commas.
func decodeArray(r *byteReader, elemSize int, next func() string) (string, bool) {
	count := r.uint32()
	if !r.ok || !r.fits(int(count)*elemSize) {
		return "", false
	}

	elems := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		elems = append(elems, next())
	}
	return strings.Join(elems, ","), r.ok
}

// decodeStringArray decodes a u32-counted array of length-prefixed strings.
func decodeStringArray(r *byteReader) (string, bool) {
	count := r.uint32()
	if !r.ok {
		return "", false
	}

	elems := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		s, ok := r.lpString()
		if !ok {
			return "", false
		}
		elems = append(elems, s)
	}
	return strings.Join(elems, ","), true
}

func formatBool(b uint8) string {
	if b != 0 {
		return "1"
	}
	return "0"
}

// byteReader is a bounds-checked little-endian reader. Once any read runs
// past the end of the buffer, ok latches false and every subsequent read
// returns the zero value.
type byteReader struct {
	data []byte
	off  int
	ok   bool
}

func newByteReader(data []byte, off int) *byteReader {
	return &byteReader{data: data, off: off, ok: true}
}

func (r *byteReader) fits(n int) bool {
	if n < 0 {
		return false
	}
	return r.off+n <= len(r.data)
}

func (r *byteReader) bytes(n int) []byte {
	if !r.takeOK(n) {
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// takeOK checks that n more bytes are available, latching ok false if not.
func (r *byteReader) takeOK(n int) bool {
	if !r.ok || !r.fits(n) {
		r.ok = false
		return false
	}
	return true
}

func (r *byteReader) uint8() uint8 {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *byteReader) uint16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *byteReader) uint32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *byteReader) uint64() uint64 {
	b := r.bytes(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *byteReader) float32() float32 {
	bits := r.uint32()
	if !r.ok {
		return 0
	}
	return math.Float32frombits(bits)
}

func (r *byteReader) float64() float64 {
	bits := r.uint64()
	if !r.ok {
		return 0
	}
	return math.Float64frombits(bits)
}

// lpString reads a u32 length-prefixed string.
func (r *byteReader) lpString() (string, bool) {
	n := r.uint32()
	if !r.ok || !r.fits(int(n)) {
		r.ok = false
		return "", false
	}
	return string(r.bytes(int(n))), r.ok
}
