package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	mandel "github.com/marben/mandelplane"
)

const (
	panStep  = 0.1
	zoomStep = 0.8
)

// viewer is the interactive state of the terminal client.
type viewer struct {
	screen   tcell.Screen
	renderer mandel.Renderer

	palette mandel.Palette
	region  mandel.Region
	iters   int

	status string
}

// draw renders the current view and the status line.
// Render failures are shown on the status line, not returned.
func (v *viewer) draw(ctx context.Context) {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	w, h := rasterSize(cols, rows)

	req := mandel.RenderRequest{
		Width:      w,
		Height:     h,
		Palette:    v.palette.String(),
		Region:     v.region,
		Iterations: v.iters,
	}
	start := time.Now()
	if err := v.renderer.Render(ctx, &terminalSurface{screen: v.screen}, req); err != nil {
		v.status = fmt.Sprintf("error: %v", err)
	} else {
		v.status = fmt.Sprintf("%s  iters %d  %v  %s", v.palette, v.iters, v.region, time.Since(start).Round(time.Millisecond))
	}

	for i, r := range []rune(v.status) {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, rows-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

// handleKey applies a key press to the view. It reports whether the view changed and whether to quit.
func (v *viewer) handleKey(ev *tcell.EventKey) (changed, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false, true
	case tcell.KeyLeft:
		v.region = v.region.Pan(-panStep, 0)
	case tcell.KeyRight:
		v.region = v.region.Pan(panStep, 0)
	case tcell.KeyUp:
		v.region = v.region.Pan(0, -panStep)
	case tcell.KeyDown:
		v.region = v.region.Pan(0, panStep)
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	default:
		return false, false
	}
	return true, false
}

func (v *viewer) handleRune(r rune) (changed, quit bool) {
	switch r {
	case 'q':
		return false, true
	case '+', '=':
		v.region = v.region.Zoom(zoomStep)
	case '-':
		v.region = v.region.Zoom(1 / zoomStep)
	case '1', 'b':
		v.palette = mandel.Basic
	case '2', 'h':
		v.palette = mandel.HSV
	case '3', 'r':
		v.palette = mandel.RGB
	case '4', 'l':
		v.palette = mandel.LCH
	case '[':
		v.iters = max(v.iters/2, 1)
	case ']':
		v.iters *= 2
	case '0':
		v.region = mandel.FullSet
	default:
		return false, false
	}
	return true, false
}

// loop redraws on every change until the user quits.
func (v *viewer) loop(ctx context.Context) {
	v.draw(ctx)
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
			v.draw(ctx)
		case *tcell.EventKey:
			changed, quit := v.handleKey(ev)
			if quit {
				return
			}
			if changed {
				v.draw(ctx)
			}
		}
	}
}
