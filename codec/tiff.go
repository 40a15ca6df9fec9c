// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/image/tiff"
)

// Tag identifies a TIFF field.
type Tag uint16

// Baseline TIFF tags.
const (
	TagImageWidth      Tag = 256
	TagImageLength     Tag = 257
	TagBitsPerSample   Tag = 258
	TagCompression     Tag = 259
	TagPhotometric     Tag = 262
	TagStripOffsets    Tag = 273
	TagOrientation     Tag = 274
	TagSamplesPerPixel Tag = 277
	TagRowsPerStrip    Tag = 278
	TagStripByteCounts Tag = 279
	TagXResolution     Tag = 282
	TagYResolution     Tag = 283
	TagResolutionUnit  Tag = 296
)

// Field data types.
const (
	dtByte      = 1
	dtShort     = 3
	dtLong      = 4
	dtRational  = 5
	dtSByte     = 6
	dtUndefined = 7
	dtSShort    = 8
	dtSLong     = 9
	dtSRational = 10
)

const (
	tiffHeaderLen = 8
	ifdEntryLen   = 12

	// maxDirectories bounds the directory chain of corrupt files.
	maxDirectories = 1 << 12
)

// TIFF errors.
var (
	ErrNotTIFF          = errors.New("codec: not a TIFF file")
	ErrFieldNotFound    = errors.New("codec: TIFF field not found")
	ErrFieldType        = errors.New("codec: unsupported TIFF field type")
	ErrDirectoryInvalid = errors.New("codec: TIFF directory out of range")
)

// TIFF reads the directories (IFDs) of a TIFF file.
//
// A multi-page TIFF holds one image per directory. SetDirectory selects
// the directory that Field, Width, Height and Decode operate on; the first
// directory is selected initially.
type TIFF struct {
	data  []byte
	order binary.ByteOrder
	dirs  []uint32 // IFD offsets in file order
	cur   int
}

// OpenTIFF parses the header and directory chain of data.
// data is retained, not copied.
func OpenTIFF(data []byte) (*TIFF, error) {
	if len(data) < tiffHeaderLen {
		return nil, ErrNotTIFF
	}

	var order binary.ByteOrder
	switch string(data[:4]) {
	case "II\x2A\x00":
		order = binary.LittleEndian
	case "MM\x00\x2A":
		order = binary.BigEndian
	default:
		return nil, ErrNotTIFF
	}

	t := &TIFF{data: data, order: order}
	off := order.Uint32(data[4:8])
	for off != 0 {
		if len(t.dirs) == maxDirectories || slices.Contains(t.dirs, off) {
			return nil, fmt.Errorf("%w: directory chain loops or is too long", ErrNotTIFF)
		}
		n, ok := t.entryCount(off)
		if !ok {
			return nil, fmt.Errorf("%w: directory at %d is truncated", ErrNotTIFF, off)
		}
		t.dirs = append(t.dirs, off)
		off = order.Uint32(data[int(off)+2+n*ifdEntryLen:])
	}
	if len(t.dirs) == 0 {
		return nil, fmt.Errorf("%w: no directories", ErrNotTIFF)
	}
	return t, nil
}

// entryCount returns the number of entries of the IFD at off and whether
// the IFD, including its next-IFD offset, lies within the file.
func (t *TIFF) entryCount(off uint32) (int, bool) {
	start := int(off)
	if start < tiffHeaderLen || start+2 > len(t.data) {
		return 0, false
	}
	n := int(t.order.Uint16(t.data[start:]))
	return n, start+2+n*ifdEntryLen+4 <= len(t.data)
}

// CountDirectories returns the number of directories (pages).
func (t *TIFF) CountDirectories() int {
	return len(t.dirs)
}

// CurrentDirectory returns the index of the selected directory.
func (t *TIFF) CurrentDirectory() int {
	return t.cur
}

// SetDirectory selects directory n, counting from 0.
func (t *TIFF) SetDirectory(n int) error {
	if n < 0 || n >= len(t.dirs) {
		return fmt.Errorf("%w: %d of %d", ErrDirectoryInvalid, n, len(t.dirs))
	}
	t.cur = n
	return nil
}

// Width returns the ImageWidth field of the selected directory.
func (t *TIFF) Width() (int, error) {
	return t.Field(TagImageWidth)
}

// Height returns the ImageLength field of the selected directory.
func (t *TIFF) Height() (int, error) {
	return t.Field(TagImageLength)
}

// Field returns the first value of tag in the selected directory.
// Rational values are returned as their truncated quotient.
func (t *TIFF) Field(tag Tag) (int, error) {
	off := int(t.dirs[t.cur])
	n := int(t.order.Uint16(t.data[off:]))
	for i := range n {
		e := t.data[off+2+i*ifdEntryLen : off+2+(i+1)*ifdEntryLen]
		if Tag(t.order.Uint16(e[0:2])) != tag {
			continue
		}
		return t.value(tag, t.order.Uint16(e[2:4]), t.order.Uint32(e[4:8]), e[8:12])
	}
	return 0, fmt.Errorf("%w: tag %d in directory %d", ErrFieldNotFound, tag, t.cur)
}

// value decodes the first value of an entry. Values of up to four bytes
// are stored inline in field; larger ones at the offset held there.
func (t *TIFF) value(tag Tag, typ uint16, count uint32, field []byte) (int, error) {
	var size int
	switch typ {
	case dtByte, dtSByte, dtUndefined:
		size = 1
	case dtShort, dtSShort:
		size = 2
	case dtLong, dtSLong:
		size = 4
	case dtRational, dtSRational:
		size = 8
	default:
		return 0, fmt.Errorf("%w: tag %d has type %d", ErrFieldType, tag, typ)
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: tag %d has no values", ErrFieldNotFound, tag)
	}

	p := field
	if uint64(size)*uint64(count) > 4 {
		off := int(t.order.Uint32(field))
		if off < 0 || off+size > len(t.data) {
			return 0, fmt.Errorf("%w: tag %d points outside the file", ErrNotTIFF, tag)
		}
		p = t.data[off : off+size]
	}

	switch typ {
	case dtByte, dtUndefined:
		return int(p[0]), nil
	case dtSByte:
		return int(int8(p[0])), nil
	case dtShort:
		return int(t.order.Uint16(p)), nil
	case dtSShort:
		return int(int16(t.order.Uint16(p))), nil
	case dtLong:
		return int(t.order.Uint32(p)), nil
	case dtSLong:
		return int(int32(t.order.Uint32(p))), nil
	case dtRational:
		num, den := t.order.Uint32(p[0:4]), t.order.Uint32(p[4:8])
		if den == 0 {
			return 0, nil
		}
		return int(num / den), nil
	default: // dtSRational
		num, den := int32(t.order.Uint32(p[0:4])), int32(t.order.Uint32(p[4:8]))
		if den == 0 {
			return 0, nil
		}
		return int(num / den), nil
	}
}

// Decode decodes the image of the selected directory.
func (t *TIFF) Decode() (*Image, error) {
	w, err := t.Width()
	if err != nil {
		return nil, &DecodeError{Format: "tiff", Err: err}
	}
	h, err := t.Height()
	if err != nil {
		return nil, &DecodeError{Format: "tiff", Err: err}
	}
	if err := checkSize(w, h); err != nil {
		return nil, &DecodeError{Format: "tiff", Err: err}
	}

	// The decoder reads the directory the header points at, so point the
	// header of a copy at the selected one.
	data := t.data
	if t.cur != 0 {
		data = slices.Clone(t.data)
		t.order.PutUint32(data[4:8], t.dirs[t.cur])
	}
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: "tiff", Err: err}
	}
	return FromImage(img, "tiff"), nil
}

// ReadField returns the first value of tag in the first directory of the
// TIFF file in data.
func ReadField(data []byte, tag Tag) (int, error) {
	t, err := OpenTIFF(data)
	if err != nil {
		return 0, err
	}
	return t.Field(tag)
}
