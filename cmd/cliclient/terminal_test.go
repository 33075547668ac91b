package main

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	mandel "github.com/marben/mandelplane"
)

func newTestScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func cellColors(t *testing.T, s tcell.Screen, x, y int) (r rune, fg, bg tcell.Color) {
	t.Helper()
	r, _, style, _ := s.GetContent(x, y)
	fg, bg, _ = style.Decompose()
	return r, fg, bg
}

func TestRasterSize(t *testing.T) {
	testCases := []struct{ cols, rows, w, h int }{
		{80, 25, 80, 48},
		{10, 1, 10, 0},
		{0, 0, 0, 0},
	}
	for _, tc := range testCases {
		if w, h := rasterSize(tc.cols, tc.rows); w != tc.w || h != tc.h {
			t.Errorf("rasterSize(%d, %d) = %d, %d, want %d, %d", tc.cols, tc.rows, w, h, tc.w, tc.h)
		}
	}
}

func TestTerminalSurfaceHalfBlocks(t *testing.T) {
	screen := newTestScreen(t, 4, 4)
	s := &terminalSurface{screen: screen}

	// 2x3 pixels: two full cells on row 0, a half-filled row 1
	pix := []byte{
		10, 0, 0, 255, 20, 0, 0, 255,
		0, 10, 0, 255, 0, 20, 0, 255,
		0, 0, 10, 255, 0, 0, 20, 255,
	}
	if err := s.PutImageData(pix, 2, 3, 1, 0); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		x, y   int
		fg, bg tcell.Color
	}{
		{1, 0, tcell.NewRGBColor(10, 0, 0), tcell.NewRGBColor(0, 10, 0)},
		{2, 0, tcell.NewRGBColor(20, 0, 0), tcell.NewRGBColor(0, 20, 0)},
		{1, 1, tcell.NewRGBColor(0, 0, 10), tcell.ColorBlack},
		{2, 1, tcell.NewRGBColor(0, 0, 20), tcell.ColorBlack},
	}
	for _, tc := range testCases {
		r, fg, bg := cellColors(t, screen, tc.x, tc.y)
		if r != upperHalf || fg != tc.fg || bg != tc.bg {
			t.Errorf("cell (%d, %d) = %q %v/%v, want %q %v/%v", tc.x, tc.y, r, fg, bg, upperHalf, tc.fg, tc.bg)
		}
	}
	if r, _, _ := cellColors(t, screen, 0, 0); r == upperHalf {
		t.Errorf("cell (0, 0) was painted")
	}
}

func TestTerminalSurfaceRejects(t *testing.T) {
	s := &terminalSurface{screen: newTestScreen(t, 4, 2)}
	testCases := []struct {
		name       string
		n          int
		w, h, x, y int
	}{
		{"buffer mismatch", 4, 2, 2, 0, 0},
		{"too wide", 5 * 4, 5, 1, 0, 0},
		{"too tall", 4 * 5, 1, 5, 0, 0},
		{"negative offset", 4, 1, 1, -1, 0},
	}
	for _, tc := range testCases {
		if err := s.PutImageData(make([]byte, tc.n), tc.w, tc.h, tc.x, tc.y); !errors.Is(err, mandel.ErrDimensions) {
			t.Errorf("%s: err = %v, want ErrDimensions", tc.name, err)
		}
	}
}
