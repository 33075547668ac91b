package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/profile"
)

// main is the entry point for the Mandelbrot server.
// It renders on behalf of websocket clients and serves the web client's static files.
func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configFile = flag.String("config", "", "JSON config file with render limits, reloaded on change")
		staticDir  = flag.String("static", "./static", "directory served on /")
		cpuProfile = flag.String("cpuprofile", "", "write a CPU profile into this directory")
	)
	flag.Parse()

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile)).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := defaultConfig
	if *configFile != "" {
		var err error
		if cfg, err = loadConfig(*configFile); err != nil {
			return err
		}
	}
	configs := newConfigStore(cfg)

	if *configFile != "" {
		go func() {
			if err := watchConfig(ctx, *configFile, configs); err != nil {
				log.Printf("config watcher stopped: %v", err)
			}
		}()
	}

	srv := webServer(*addr, *staticDir, configs)
	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on http://localhost%s", *addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("httpServer: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
