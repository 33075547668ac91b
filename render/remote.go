// Package render provides renderers that compute images outside this process.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/mandelplane"
)

// MaxMessageBytes bounds a single reply; 4096×4096 RGBA plus the frame header fits.
const MaxMessageBytes = 4096*4096*4 + 8

// ServerError is a render failure reported by the server.
type ServerError struct {
	Msg string
}

func (e *ServerError) Error() string {
	return "server: " + e.Msg
}

// Remote renders on a mandel server over a websocket.
// Calls are serialized; one connection carries one render at a time.
type Remote struct {
	conn *websocket.Conn
	m    sync.Mutex
}

// Dial connects to the websocket endpoint at url, e.g. "ws://localhost:8080/ws".
func Dial(ctx context.Context, url string) (*Remote, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %q: %w", url, err)
	}
	c.SetReadLimit(MaxMessageBytes)
	return &Remote{conn: c}, nil
}

// Render implements mandel.Renderer.
func (r *Remote) Render(ctx context.Context, s mandel.Surface, req mandel.RenderRequest) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := wsjson.Write(ctx, r.conn, req); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	typ, msg, err := r.conn.Read(ctx)
	if err != nil {
		return fmt.Errorf("read reply: %w", err)
	}

	if typ == websocket.MessageText {
		var reply mandel.RenderReply
		if err := json.Unmarshal(msg, &reply); err != nil {
			return fmt.Errorf("decode reply: %w", err)
		}
		return &ServerError{Msg: reply.Error}
	}

	w, h, pix, err := mandel.DecodeFrame(msg)
	if err != nil {
		return err
	}
	if w != max(req.Width, 0) || h != max(req.Height, 0) {
		return fmt.Errorf("%w: asked %dx%d, got %dx%d", mandel.ErrFrame, req.Width, req.Height, w, h)
	}
	if err := s.PutImageData(pix, w, h, 0, 0); err != nil {
		return fmt.Errorf("surface: %w", err)
	}
	return nil
}

// Close closes the connection.
func (r *Remote) Close() error {
	return r.conn.Close(websocket.StatusNormalClosure, "")
}

var _ mandel.Renderer = (*Remote)(nil)
