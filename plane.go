package mandel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Plane computes Mandelbrot rasters.
// The zero value renders sequentially in a single pass.
type Plane struct {
	// Workers > 1 splits the raster into row bands computed in parallel.
	// Output is byte-identical to the sequential pass. Negative means GOMAXPROCS.
	Workers int
}

// Render computes the image described by req and hands it to s at (0, 0).
func Render(s Surface, w, h int, palette string, r Region, iters int) error {
	return Plane{}.Render(context.Background(), s, RenderRequest{
		Width:      w,
		Height:     h,
		Palette:    palette,
		Region:     r,
		Iterations: iters,
	})
}

// Compute returns the row-major RGBA buffer of a w×h raster over r.
func Compute(w, h int, p Palette, r Region, iters int) ([]byte, error) {
	return Plane{}.Compute(context.Background(), w, h, p, r, iters)
}

// Render implements Renderer.
func (pl Plane) Render(ctx context.Context, s Surface, req RenderRequest) error {
	p, err := ParsePalette(req.Palette)
	if err != nil {
		return err
	}
	w, h := max(req.Width, 0), max(req.Height, 0)
	pix, err := pl.Compute(ctx, w, h, p, req.Region, req.Iterations)
	if err != nil {
		return err
	}
	if err := s.PutImageData(pix, w, h, 0, 0); err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	return nil
}

// Compute returns the row-major RGBA buffer of a w×h raster over r.
// Non-positive dimensions yield an empty buffer.
func (pl Plane) Compute(ctx context.Context, w, h int, p Palette, r Region, iters int) ([]byte, error) {
	if iters < 1 {
		return nil, fmt.Errorf("%w: %d", ErrIterations, iters)
	}
	if w <= 0 || h <= 0 {
		return []byte{}, nil
	}

	pix := make([]byte, w*h*4)
	workers := pl.workers(h)
	if workers == 1 {
		if err := computeRows(ctx, pix, 0, h, w, h, p, r, iters); err != nil {
			return nil, err
		}
		return pix, nil
	}

	bands := splitRows(h, (h+workers-1)/workers)
	errs := make([]error, len(bands))
	var wg sync.WaitGroup
	wg.Add(len(bands))
	for i, b := range bands {
		go func() {
			defer wg.Done()
			errs[i] = computeRows(ctx, pix[b.y0*w*4:b.y1*w*4], b.y0, b.y1, w, h, p, r, iters)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return pix, nil
}

func (pl Plane) workers(h int) int {
	n := pl.Workers
	if n < 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return max(min(n, h), 1)
}

// computeRows fills dst with rows [y0, y1) of the raster.
func computeRows(ctx context.Context, dst []byte, y0, y1, w, h int, p Palette, r Region, iters int) error {
	o := 0
	for row := y0; row < y1; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for col := 0; col < w; col++ {
			c, err := p.Color(Escape(r.Point(row, col, w, h), iters), iters)
			if err != nil {
				return fmt.Errorf("pixel (%d, %d): %w", row, col, err)
			}
			dst[o], dst[o+1], dst[o+2], dst[o+3] = c.R, c.G, c.B, c.A
			o += 4
		}
	}
	return nil
}

type rowBand struct {
	y0, y1 int
}

// splitRows splits h rows into bands of bandH rows.
// The last band is smaller if h is not divisible.
func splitRows(h, bandH int) []rowBand {
	if bandH <= 0 {
		panic("band height must be positive")
	}

	var bands []rowBand
	for y := 0; y < h; y += bandH {
		bands = append(bands, rowBand{y0: y, y1: min(y+bandH, h)})
	}
	return bands
}
