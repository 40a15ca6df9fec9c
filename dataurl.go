package ggscale

import (
	"bytes"
	"encoding/base64"
	"image/png"
)

// dataURLPrefix is the header of a base64 PNG data URL.
const dataURLPrefix = "data:image/png;base64,"

// EncodeDataURL encodes p as a PNG data URL, the form browsers accept for
// an <img> src.
func EncodeDataURL(p *PixelBuffer) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.ToImage()); err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
