// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"golang.org/x/image/bmp"
)

// opaque returns a w×h test pattern with full alpha.
func opaque(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), 0x80, 0xFF})
		}
	}
	return img
}

func TestDecode_Formats(t *testing.T) {
	src := opaque(8, 6)

	tests := []struct {
		name   string
		encode func(io.Writer, image.Image) error
		exact  bool
	}{
		{"png", png.Encode, true},
		{"bmp", bmp.Encode, true},
		{"jpeg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }, false},
		{"gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf, src); err != nil {
				t.Fatalf("encode: %v", err)
			}

			m, err := Decode(buf.Bytes())
			if err != nil {
				t.Fatalf("Decode() = %v", err)
			}
			if m.Format != tt.name {
				t.Errorf("Format = %q, want %q", m.Format, tt.name)
			}
			if m.Width != 8 || m.Height != 6 {
				t.Errorf("size = %dx%d, want 8x6", m.Width, m.Height)
			}
			if len(m.Pix) != 8*6*4 {
				t.Fatalf("len(Pix) = %d, want %d", len(m.Pix), 8*6*4)
			}
			if tt.exact && !bytes.Equal(m.Pix, src.Pix) {
				t.Error("decoded pixels differ from the source")
			}
			for i := 3; i < len(m.Pix); i += 4 {
				if m.Pix[i] != 0xFF {
					t.Fatalf("alpha at %d = %d, want 255", i/4, m.Pix[i])
				}
			}
		})
	}
}

func TestDecode_TranslucentPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 77})
	src.SetNRGBA(1, 0, color.NRGBA{1, 2, 3, 0})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	m, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if !bytes.Equal(m.Pix[:4], []byte{200, 100, 50, 77}) {
		t.Errorf("pixel = %v, want non-premultiplied [200 100 50 77]", m.Pix[:4])
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		wantFormat string
		wantErr    error
	}{
		{"empty", nil, "", ErrEmpty},
		{"unknown", []byte("definitely not an image"), "", image.ErrFormat},
		{"too large", []byte("RGBZ\x00\x01\x00\x00\x00\x01\x00\x00"), "rgbz", ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)

			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("Decode() = %v (%T), want *DecodeError", err, err)
			}
			if de.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", de.Format, tt.wantFormat)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, opaque(16, 16)); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()/2]

	_, err := Decode(data)
	var de *DecodeError
	if !errors.As(err, &de) || de.Format != "png" {
		t.Errorf("Decode(truncated) = %v, want png *DecodeError", err)
	}
}

func TestDecodeError_Message(t *testing.T) {
	err := &DecodeError{Format: "tiff", Err: errors.New("boom")}
	if got := err.Error(); got != "codec: decode tiff: boom" {
		t.Errorf("Error() = %q", got)
	}
	err = &DecodeError{Err: errors.New("boom")}
	if got := err.Error(); got != "codec: decode: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFromImage_Offset(t *testing.T) {
	src := opaque(10, 10).SubImage(image.Rect(2, 3, 6, 5))

	m := FromImage(src, "test")
	if m.Width != 4 || m.Height != 2 {
		t.Fatalf("size = %dx%d, want 4x2", m.Width, m.Height)
	}
	want := src.At(2, 3).(color.NRGBA)
	if got := m.Pix[:4]; !bytes.Equal(got, []byte{want.R, want.G, want.B, want.A}) {
		t.Errorf("first pixel = %v, want %v", got, want)
	}
	if n := m.NRGBA(); n.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Errorf("NRGBA().Bounds() = %v", n.Bounds())
	}
}
