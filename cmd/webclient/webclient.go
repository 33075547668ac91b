//go:build js && wasm

// webclient.go is a WASM web client for the Mandelbrot renderer.
// It renders in the browser and offers one button per palette.

package main

import (
	"fmt"
	"log"
	"strconv"
	"syscall/js"
	"time"

	mandel "github.com/marben/mandelplane"
)

const (
	width  = 1000
	height = 1000
)

// main is the entry point for the WASM web client.
func main() {
	logScreenf("Starting WASM web client...")

	surface := newCanvasSurface("canvas", width, height, "#3a3a6e")
	doc := js.Global().Get("document")

	for _, p := range mandel.Palettes {
		doc.Call("getElementById", p.String()).Call("addEventListener", "click",
			js.FuncOf(func(js.Value, []js.Value) any {
				draw(surface, p.String())
				return nil
			}))
	}

	draw(surface, mandel.Basic.String())

	// Block main goroutine to keep WASM running
	select {}
}

// draw renders the region and iteration cap chosen in the page with palette.
func draw(s mandel.Surface, palette string) {
	doc := js.Global().Get("document")

	region, err := mandel.LookupRegion(doc.Call("getElementById", "region").Get("value").String())
	if err != nil {
		logScreenf("%v", err)
		return
	}
	iters, err := strconv.Atoi(doc.Call("getElementById", "iters").Get("value").String())
	if err != nil {
		logScreenf("iterations: %v", err)
		return
	}

	start := time.Now()
	if err := mandel.Render(s, width, height, palette, region, iters); err != nil {
		logScreenf("render: %v", err)
		return
	}
	logScreenf("%s %v took %s", palette, region, time.Since(start))
}

// logScreenf appends a formatted message to the log element in the DOM,
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	log.Print(msg)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}
