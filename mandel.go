package mandel

import (
	"fmt"
	"sort"
)

// Region within the complex plane that is mapped onto the raster.
// Bounds are not validated: an inverted or zero-area region gives a degenerate image.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Point returns the sample point of pixel (row, col) in a w×h raster.
// The sample sits on the pixel's top/left edge, not its center.
func (r Region) Point(row, col, w, h int) complex128 {
	dx := (r.Xmax - r.Xmin) / float64(w)
	dy := (r.Ymax - r.Ymin) / float64(h)
	return complex(r.Xmin+float64(float64(col)*dx), r.Ymin+float64(float64(row)*dy))
}

// Zoom scales the region around its center. f < 1 zooms in.
func (r Region) Zoom(f float64) Region {
	cx, cy := (r.Xmin+r.Xmax)/2, (r.Ymin+r.Ymax)/2
	hw, hh := (r.Xmax-r.Xmin)/2*f, (r.Ymax-r.Ymin)/2*f
	return Region{Xmin: cx - hw, Xmax: cx + hw, Ymin: cy - hh, Ymax: cy + hh}
}

// Pan moves the region by fractions of its own width and height.
func (r Region) Pan(fx, fy float64) Region {
	dx, dy := (r.Xmax-r.Xmin)*fx, (r.Ymax-r.Ymin)*fy
	return Region{Xmin: r.Xmin + dx, Xmax: r.Xmax + dx, Ymin: r.Ymin + dy, Ymax: r.Ymax + dy}
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", r.Xmin, r.Xmax, r.Ymin, r.Ymax)
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Full set, the default view
	FullSet = Region{
		Xmin: -2,
		Xmax: 1,
		Ymin: -1,
		Ymax: 1,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

var landmarks = map[string]Region{
	"full":     FullSet,
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"spiral":   SpiralMinibrot,
	"triple":   TripleSpiral,
	"dragon":   ValleyOfTheDragon,
	"minibrot": MinibrotInMiniSpiral,
}

// LookupRegion returns the landmark registered under name.
func LookupRegion(name string) (Region, error) {
	r, ok := landmarks[name]
	if !ok {
		return Region{}, fmt.Errorf("unknown region %q (known: %v)", name, RegionNames())
	}
	return r, nil
}

// RegionNames lists landmark names in sorted order.
func RegionNames() []string {
	names := make([]string, 0, len(landmarks))
	for n := range landmarks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
