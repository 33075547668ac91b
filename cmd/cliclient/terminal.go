package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	mandel "github.com/marben/mandelplane"
)

// upperHalf paints the upper pixel as foreground and the lower one as background.
const upperHalf = '▀'

// terminalSurface draws RGBA buffers on a tcell screen, two pixel rows per cell.
// Pixel offsets are rounded down to whole cells.
type terminalSurface struct {
	screen tcell.Screen
}

// rasterSize is the pixel size of a screen of the given cells, minus the status line.
func rasterSize(cols, rows int) (w, h int) {
	return cols, max(rows-1, 0) * 2
}

func (s *terminalSurface) PutImageData(pix []byte, w, h, x, y int) error {
	if w < 0 || h < 0 || len(pix) != w*h*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", mandel.ErrDimensions, len(pix), w, h)
	}
	cols, rows := s.screen.Size()
	if x < 0 || y < 0 || x+w > cols || (y+h+1)/2 > rows {
		return fmt.Errorf("%w: %dx%d at (%d, %d) on a %dx%d cell screen", mandel.ErrDimensions, w, h, x, y, cols, rows)
	}

	at := func(row, col int) tcell.Color {
		o := (row*w + col) * 4
		return tcell.NewRGBColor(int32(pix[o]), int32(pix[o+1]), int32(pix[o+2]))
	}
	for row := 0; row < h; row += 2 {
		for col := 0; col < w; col++ {
			style := tcell.StyleDefault.Foreground(at(row, col))
			if row+1 < h {
				style = style.Background(at(row+1, col))
			} else {
				style = style.Background(tcell.ColorBlack)
			}
			s.screen.SetContent(x+col, y/2+row/2, upperHalf, nil, style)
		}
	}
	return nil
}
