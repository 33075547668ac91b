// cliclient is a terminal client for the Mandelbrot renderer.
// It draws the set on the terminal, rendering in-process or on a server.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"

	mandel "github.com/marben/mandelplane"
	"github.com/marben/mandelplane/render"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run() error {
	var (
		server     = flag.String("server", "", "websocket endpoint to render on, e.g. ws://localhost:8080/ws; empty renders locally")
		palette    = flag.String("palette", "basic", "palette: basic, hsv, rgb or lch")
		region     = flag.String("region", "full", fmt.Sprintf("starting region: %v", mandel.RegionNames()))
		iters      = flag.Int("iters", 256, "iteration cap")
		workers    = flag.Int("workers", -1, "local render goroutines; negative uses every CPU")
		cpuProfile = flag.String("cpuprofile", "", "write a CPU profile into this directory")
	)
	flag.Parse()

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.Quiet).Stop()
	}

	p, err := mandel.ParsePalette(*palette)
	if err != nil {
		return err
	}
	r, err := mandel.LookupRegion(*region)
	if err != nil {
		return err
	}
	if *iters < 1 {
		return fmt.Errorf("%w: %d", mandel.ErrIterations, *iters)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var renderer mandel.Renderer = mandel.Plane{Workers: *workers}
	if *server != "" {
		remote, err := render.Dial(ctx, *server)
		if err != nil {
			return err
		}
		defer remote.Close()
		renderer = remote
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell.NewScreen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen.Init: %w", err)
	}
	defer screen.Fini()

	v := &viewer{
		screen:   screen,
		renderer: renderer,
		palette:  p,
		region:   r,
		iters:    *iters,
	}
	v.loop(ctx)
	return nil
}
