package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mandel "github.com/marben/mandelplane"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{"full", `{"max_width": 100, "max_height": 50, "max_iterations": 500, "workers": 2}`, Config{100, 50, 500, 2}, false},
		{"partial", `{"max_iterations": 20}`, Config{1920, 1080, 20, -1}, false},
		{"empty object", `{}`, defaultConfig, false},
		{"not json", `Listen 8080`, Config{}, true},
		{"zero limit", `{"max_width": 0}`, Config{}, true},
	}
	for _, tc := range testCases {
		name := filepath.Join(dir, tc.name+".json")
		writeFile(t, name, tc.content)
		got, err := loadConfig(name)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: err = %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("missing file: no error")
	}
}

func TestConfigCheck(t *testing.T) {
	cfg := Config{MaxWidth: 100, MaxHeight: 50, MaxIterations: 500}
	testCases := []struct {
		req mandel.RenderRequest
		ok  bool
	}{
		{mandel.RenderRequest{Width: 100, Height: 50, Iterations: 500}, true},
		{mandel.RenderRequest{Width: 0, Height: 0, Iterations: 1}, true},
		{mandel.RenderRequest{Width: 101, Height: 50, Iterations: 500}, false},
		{mandel.RenderRequest{Width: 100, Height: 51, Iterations: 500}, false},
		{mandel.RenderRequest{Width: 100, Height: 50, Iterations: 501}, false},
	}
	for _, tc := range testCases {
		if err := cfg.check(tc.req); (err == nil) != tc.ok {
			t.Errorf("check(%+v) = %v", tc.req, err)
		}
	}
}

func TestWatchConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, name, `{"max_iterations": 10}`)
	cfg, err := loadConfig(name)
	if err != nil {
		t.Fatal(err)
	}
	store := newConfigStore(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- watchConfig(ctx, name, store) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watchConfig: %v", err)
		}
	}()

	// a broken write keeps the previous config, a valid one replaces it
	deadline := time.Now().Add(5 * time.Second)
	for store.Get().MaxIterations != 99 {
		if time.Now().After(deadline) {
			t.Fatalf("config not reloaded: %+v", store.Get())
		}
		writeFile(t, name, `{"max_iterations": `)
		time.Sleep(20 * time.Millisecond)
		if got := store.Get().MaxIterations; got != 10 && got != 99 {
			t.Fatalf("broken file loaded: %+v", store.Get())
		}
		writeFile(t, name, `{"max_iterations": 99}`)
		time.Sleep(50 * time.Millisecond)
	}
}
