package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mandel "github.com/marben/mandelplane"
	"github.com/marben/mandelplane/render"
)

func startServer(t *testing.T, cfg Config) (httpURL string, remote *render.Remote) {
	t.Helper()
	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "index.html"), []byte("<canvas></canvas>"), 0o644); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(newMux(static, newConfigStore(cfg)))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	remote, err := render.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { remote.Close() })
	return srv.URL, remote
}

func TestServerRenders(t *testing.T) {
	_, remote := startServer(t, Config{MaxWidth: 64, MaxHeight: 64, MaxIterations: 1000, Workers: 3})

	for _, p := range mandel.Palettes {
		s, err := mandel.NewImageSurface(64, 40, "#000000")
		if err != nil {
			t.Fatal(err)
		}
		req := mandel.RenderRequest{Width: 64, Height: 40, Palette: p.String(), Region: mandel.ValleyOfTheDragon, Iterations: 400}
		if err := remote.Render(context.Background(), s, req); err != nil {
			t.Fatalf("%v: %v", p, err)
		}
		want, _ := mandel.Compute(64, 40, p, mandel.ValleyOfTheDragon, 400)
		if !bytes.Equal(s.Img.Pix, want) {
			t.Errorf("%v: served pixels differ from local render", p)
		}
	}
}

func TestServerRejects(t *testing.T) {
	_, remote := startServer(t, Config{MaxWidth: 16, MaxHeight: 16, MaxIterations: 100})
	s, _ := mandel.NewImageSurface(32, 32, "#000000")

	testCases := []struct {
		req  mandel.RenderRequest
		want string
	}{
		{mandel.RenderRequest{Width: 32, Height: 8, Palette: "basic", Iterations: 10}, "exceeds limit"},
		{mandel.RenderRequest{Width: 8, Height: 8, Palette: "basic", Iterations: 101}, "exceeds limit"},
		{mandel.RenderRequest{Width: 8, Height: 8, Palette: "sepia", Iterations: 10}, "unknown palette"},
		{mandel.RenderRequest{Width: 8, Height: 8, Palette: "basic", Iterations: 0}, "iteration cap"},
	}
	for _, tc := range testCases {
		err := remote.Render(context.Background(), s, tc.req)
		var se *render.ServerError
		if !errors.As(err, &se) || !strings.Contains(se.Msg, tc.want) {
			t.Errorf("%+v: err = %v, want server error containing %q", tc.req, err, tc.want)
		}
	}
}

func TestServerStatic(t *testing.T) {
	url, _ := startServer(t, defaultConfig)
	resp, err := http.Get(url + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "<canvas></canvas>" {
		t.Errorf("GET / = %d %q", resp.StatusCode, body)
	}
}
