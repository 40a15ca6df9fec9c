// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// rgbz layout: the magic, big-endian uint32 width and height, then one
// zstd frame holding width*height*4 RGBA8 samples.
const (
	rgbzMagic     = "RGBZ"
	rgbzHeaderLen = 12
)

// ErrRGBZ is returned for malformed rgbz data.
var ErrRGBZ = errors.New("codec: malformed rgbz data")

func init() {
	image.RegisterFormat("rgbz", rgbzMagic, decodeRGBZ, decodeRGBZConfig)
}

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(MaxPixels*4),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

// WriteRaw writes img to w in the rgbz format.
func WriteRaw(w io.Writer, img *Image) error {
	if err := checkSize(img.Width, img.Height); err != nil {
		return fmt.Errorf("codec: write rgbz: %w", err)
	}
	if len(img.Pix) != img.Width*img.Height*4 {
		return fmt.Errorf("codec: write rgbz: %d bytes for %dx%d", len(img.Pix), img.Width, img.Height)
	}

	out := make([]byte, rgbzHeaderLen, rgbzHeaderLen+len(img.Pix)/4)
	copy(out, rgbzMagic)
	binary.BigEndian.PutUint32(out[4:8], uint32(img.Width))   //nolint:gosec // bounded by MaxPixels
	binary.BigEndian.PutUint32(out[8:12], uint32(img.Height)) //nolint:gosec // bounded by MaxPixels

	enc := zstdEncPool.Get().(*zstd.Encoder)
	out = enc.EncodeAll(img.Pix, out)
	zstdEncPool.Put(enc)

	_, err := w.Write(out)
	return err
}

// ReadRaw reads an rgbz image from r.
func ReadRaw(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	width, height, err := parseRGBZHeader(data)
	if err != nil {
		return nil, err
	}

	dec := zstdDecPool.Get().(*zstd.Decoder)
	pix, err := dec.DecodeAll(data[rgbzHeaderLen:], nil)
	zstdDecPool.Put(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRGBZ, err)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrRGBZ, len(pix), width, height)
	}
	return &Image{Width: width, Height: height, Pix: pix, Format: "rgbz"}, nil
}

// parseRGBZHeader validates the header and returns the dimensions.
func parseRGBZHeader(data []byte) (width, height int, err error) {
	if len(data) < rgbzHeaderLen || string(data[:4]) != rgbzMagic {
		return 0, 0, fmt.Errorf("%w: bad header", ErrRGBZ)
	}
	width = int(binary.BigEndian.Uint32(data[4:8]))
	height = int(binary.BigEndian.Uint32(data[8:12]))
	if err := checkSize(width, height); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrRGBZ, err)
	}
	return width, height, nil
}

func decodeRGBZ(r io.Reader) (image.Image, error) {
	m, err := ReadRaw(r)
	if err != nil {
		return nil, err
	}
	return m.NRGBA(), nil
}

func decodeRGBZConfig(r io.Reader) (image.Config, error) {
	var hdr [rgbzHeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return image.Config{}, fmt.Errorf("%w: %w", ErrRGBZ, err)
	}
	width, height, err := parseRGBZHeader(hdr[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: width, Height: height}, nil
}
