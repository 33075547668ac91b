package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	mandel "github.com/marben/mandelplane"
)

// Config limits what clients may ask the server to render.
type Config struct {
	MaxWidth      int `json:"max_width"`
	MaxHeight     int `json:"max_height"`
	MaxIterations int `json:"max_iterations"`
	// Workers is passed to mandel.Plane; negative uses every CPU.
	Workers int `json:"workers"`
}

var defaultConfig = Config{
	MaxWidth:      1920,
	MaxHeight:     1080,
	MaxIterations: 10000,
	Workers:       -1,
}

// loadConfig reads a JSON config file. Fields missing from the file keep their defaults.
func loadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := defaultConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", filename, err)
	}
	if cfg.MaxWidth <= 0 || cfg.MaxHeight <= 0 || cfg.MaxIterations <= 0 {
		return Config{}, fmt.Errorf("config %q: limits must be positive", filename)
	}
	return cfg, nil
}

// check rejects requests above the configured limits.
func (c Config) check(req mandel.RenderRequest) error {
	if req.Width > c.MaxWidth || req.Height > c.MaxHeight {
		return fmt.Errorf("%dx%d exceeds limit %dx%d", req.Width, req.Height, c.MaxWidth, c.MaxHeight)
	}
	if req.Iterations > c.MaxIterations {
		return fmt.Errorf("%d iterations exceeds limit %d", req.Iterations, c.MaxIterations)
	}
	return nil
}

// configStore holds the live config, swapped on reload.
type configStore struct {
	cfg Config
	mu  sync.RWMutex
}

func newConfigStore(cfg Config) *configStore {
	return &configStore{cfg: cfg}
}

func (s *configStore) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *configStore) Update(cfg Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// watchConfig reloads filename into store whenever it is written, until ctx is done.
// A file that fails to load leaves the previous config in place.
func watchConfig(ctx context.Context, filename string, store *configStore) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("watch %q: %w", filename, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := loadConfig(filename)
			if err != nil {
				log.Printf("config reload failed: %v", err)
				continue
			}
			store.Update(cfg)
			log.Printf("config reloaded: %+v", cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config watcher error: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}
