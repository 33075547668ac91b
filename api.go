package mandel

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrDimensions = errors.New("buffer does not match dimensions")
	ErrIterations = errors.New("iteration cap must be positive")
	ErrFrame      = errors.New("malformed frame")
)

// Surface accepts a row-major RGBA buffer of w×h pixels and blits it at (x, y).
type Surface interface {
	PutImageData(pix []byte, w, h, x, y int) error
}

// Renderer renders req onto s.
type Renderer interface {
	Render(ctx context.Context, s Surface, req RenderRequest) error
}

// RenderRequest carries every input of one render call.
type RenderRequest struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Palette    string `json:"palette"`
	Region     Region `json:"region"`
	Iterations int    `json:"iterations"`
}

// RenderReply is sent instead of a frame when a render fails.
type RenderReply struct {
	Error string `json:"error,omitempty"`
}

const (
	frameHeaderLen = 8
	maxFrameSide   = 1 << 16
)

// EncodeFrame prefixes pix with its big-endian width and height.
func EncodeFrame(w, h int, pix []byte) []byte {
	b := make([]byte, frameHeaderLen+len(pix))
	binary.BigEndian.PutUint32(b[0:4], uint32(w))
	binary.BigEndian.PutUint32(b[4:8], uint32(h))
	copy(b[frameHeaderLen:], pix)
	return b
}

// DecodeFrame splits a frame into its dimensions and pixels.
// The returned pixels alias b.
func DecodeFrame(b []byte) (w, h int, pix []byte, err error) {
	if len(b) < frameHeaderLen {
		return 0, 0, nil, fmt.Errorf("%w: %d byte header", ErrFrame, len(b))
	}
	w = int(binary.BigEndian.Uint32(b[0:4]))
	h = int(binary.BigEndian.Uint32(b[4:8]))
	pix = b[frameHeaderLen:]
	if w > maxFrameSide || h > maxFrameSide || len(pix) != w*h*4 {
		return 0, 0, nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrFrame, w, h, len(pix))
	}
	return w, h, pix, nil
}

func checkBuffer(pix []byte, w, h int) error {
	if w < 0 || h < 0 || len(pix) != w*h*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrDimensions, len(pix), w, h)
	}
	return nil
}
