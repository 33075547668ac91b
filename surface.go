package mandel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// ImageSurface is a Surface backed by an in-memory RGBA image.
type ImageSurface struct {
	Img *image.RGBA
}

// NewImageSurface returns a w×h surface filled with the hex color background, e.g. "#3a3a6e".
func NewImageSurface(w, h int, background string) (*ImageSurface, error) {
	bg, err := colorful.Hex(background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	r, g, b := bg.RGB255()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{r, g, b, 255}}, image.Point{}, draw.Src)
	return &ImageSurface{Img: img}, nil
}

// PutImageData implements Surface.
// The blit must lie entirely within the image.
func (s *ImageSurface) PutImageData(pix []byte, w, h, x, y int) error {
	if err := checkBuffer(pix, w, h); err != nil {
		return err
	}
	dst := image.Rect(x, y, x+w, y+h)
	if !dst.In(s.Img.Bounds()) {
		return fmt.Errorf("%w: %v outside %v", ErrDimensions, dst, s.Img.Bounds())
	}
	src := &image.RGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	draw.Draw(s.Img, dst, src, image.Point{}, draw.Src)
	return nil
}
