//go:build js && wasm

// Command wasm exposes ggscale to the browser.
//
// It registers renderImage(bytes, canvas[, options]) on the global object.
// The image is decoded, then drawn on the canvas at the largest size the
// device can actually display. The result object carries width, height,
// scale and attempts, or error.
package main

import (
	"context"
	"syscall/js"

	"github.com/gogpu/ggscale"
	"github.com/gogpu/ggscale/codec"
	"github.com/gogpu/ggscale/surface"
)

func main() {
	// ids names renders in the browser console log.
	ids := ggscale.NewSequence("", ".tiff")
	js.Global().Set("renderImage", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return renderImage(ids, args)
	}))
	js.Global().Set("imageField", js.FuncOf(imageField))
	select {} // block forever
}

func renderImage(ids ggscale.IDGenerator, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("usage: renderImage(fileBytes, canvas, options)")
	}

	fileBytes := copyBytes(args[0])

	directory := 0
	maxScale := 0
	if len(args) >= 3 && args[2].Type() == js.TypeObject {
		if v := args[2].Get("directory"); v.Type() == js.TypeNumber {
			directory = v.Int()
		}
		if v := args[2].Get("maxScale"); v.Type() == js.TypeNumber {
			maxScale = v.Int()
		}
	}

	img, err := decode(fileBytes, directory)
	if err != nil {
		return errorResult(err.Error())
	}

	ua := ggscale.UserAgent(js.Global().Get("navigator").Get("userAgent").String())
	canvas, err := surface.NewCanvasSurface(args[1], ua.IsConstrainedDevice())
	if err != nil {
		return errorResult(err.Error())
	}

	r := ggscale.NewRenderer(
		ggscale.WithDevice(ua),
		ggscale.WithMaxScale(maxScale),
		ggscale.WithIDs(ids),
	)
	defer r.Close()

	src, err := ggscale.WrapPixels(img.Pix, img.Width, img.Height)
	if err != nil {
		return errorResult(err.Error())
	}
	res, err := r.Render(context.Background(), src, canvas)
	if err != nil {
		return errorResult("render error: " + err.Error())
	}

	return js.ValueOf(map[string]interface{}{
		"id":       res.ID,
		"width":    res.Width,
		"height":   res.Height,
		"scale":    res.Scale,
		"attempts": res.Attempts,
		"dataURL":  canvas.DataURL(),
	})
}

// imageField(fileBytes, tag[, directory]) returns a numeric TIFF field.
func imageField(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("usage: imageField(fileBytes, tag, directory)")
	}
	t, err := codec.OpenTIFF(copyBytes(args[0]))
	if err != nil {
		return errorResult(err.Error())
	}
	if len(args) >= 3 && args[2].Type() == js.TypeNumber {
		if err := t.SetDirectory(args[2].Int()); err != nil {
			return errorResult(err.Error())
		}
	}
	v, err := t.Field(codec.Tag(args[1].Int())) //nolint:gosec // tags are 16-bit
	if err != nil {
		return errorResult(err.Error())
	}
	return js.ValueOf(v)
}

func decode(data []byte, directory int) (*codec.Image, error) {
	t, err := codec.OpenTIFF(data)
	if err != nil {
		return codec.Decode(data)
	}
	if err := t.SetDirectory(directory); err != nil {
		return nil, err
	}
	return t.Decode()
}

func copyBytes(v js.Value) []byte {
	b := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(b, v)
	return b
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
