//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	mandel "github.com/marben/mandelplane"
)

// canvasSurface blits RGBA buffers onto a 2D canvas context.
type canvasSurface struct {
	ctx js.Value
}

func newCanvasSurface(id string, width, height int, color string) canvasSurface {
	canvas := js.Global().Get("document").Call("getElementById", id)
	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
	return canvasSurface{ctx: ctx}
}

// PutImageData implements mandel.Surface.
// ImageData throws when the buffer does not match the dimensions, so this is checked up front.
func (s canvasSurface) PutImageData(pix []byte, w, h, x, y int) error {
	if w <= 0 || h <= 0 || len(pix) != w*h*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", mandel.ErrDimensions, len(pix), w, h)
	}

	// The length is width * height * 4 (RGBA)
	jsData := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(jsData, pix)

	imageData := js.Global().Get("ImageData").New(jsData, w, h)
	s.ctx.Call("putImageData", imageData, x, y)
	return nil
}
