package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/mandelplane"
)

// maxRequestBytes bounds a single JSON render request.
const maxRequestBytes = 4096

// webServer creates server serving files in staticDir
// along with the websocket render endpoint on /ws
func webServer(addr, staticDir string, configs *configStore) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           newMux(staticDir, configs),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func newMux(staticDir string, configs *configStore) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(configs))
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	return mux
}

// websocketHandler upgrades the connection and serves render requests on it until the client leaves
func websocketHandler(configs *configStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: restrict to the served origin once deployed behind a known host
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()
		c.SetReadLimit(maxRequestBytes)

		log.Printf("got connection from: %s", r.RemoteAddr)
		err = serveConn(r.Context(), c, configs)
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			log.Printf("connection closed: %s", r.RemoteAddr)
		default:
			log.Printf("connection %s: %v", r.RemoteAddr, err)
		}
	}
}

// serveConn answers each request with either a frame or an error reply.
// It returns when reading from the connection fails.
func serveConn(ctx context.Context, c *websocket.Conn, configs *configStore) error {
	for {
		var req mandel.RenderRequest
		if err := wsjson.Read(ctx, c, &req); err != nil {
			return err
		}

		start := time.Now()
		err := handleRequest(ctx, c, configs.Get(), req)
		var we *writeError
		if errors.As(err, &we) {
			return we.err
		}
		if err != nil {
			log.Printf("render %dx%d %s: %v", req.Width, req.Height, req.Palette, err)
			if err := wsjson.Write(ctx, c, mandel.RenderReply{Error: err.Error()}); err != nil {
				return err
			}
			continue
		}
		log.Printf("rendered %dx%d %s %v in %s", req.Width, req.Height, req.Palette, req.Region, time.Since(start))
	}
}

func handleRequest(ctx context.Context, c *websocket.Conn, cfg Config, req mandel.RenderRequest) error {
	if err := cfg.check(req); err != nil {
		return err
	}
	plane := mandel.Plane{Workers: cfg.Workers}
	return plane.Render(ctx, &websocketSurface{ctx: ctx, conn: c}, req)
}

// websocketSurface delivers a rendered buffer as one binary frame.
type websocketSurface struct {
	ctx  context.Context
	conn *websocket.Conn
}

// writeError marks failures of the connection itself, as opposed to render failures.
type writeError struct {
	err error
}

func (e *writeError) Error() string { return fmt.Sprintf("write frame: %v", e.err) }
func (e *writeError) Unwrap() error { return e.err }

func (s *websocketSurface) PutImageData(pix []byte, w, h, x, y int) error {
	if x != 0 || y != 0 {
		return fmt.Errorf("%w: offset (%d, %d)", mandel.ErrDimensions, x, y)
	}
	if err := s.conn.Write(s.ctx, websocket.MessageBinary, mandel.EncodeFrame(w, h, pix)); err != nil {
		return &writeError{err: err}
	}
	return nil
}
