//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"gridca/internal/app"
	"gridca/internal/config"
	"gridca/pkg/engine"
	_ "gridca/pkg/rules/diffuse"
	_ "gridca/pkg/rules/drift"
	_ "gridca/pkg/rules/life"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	scenario, err := config.Load(cfg.Scenario)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Seed != 0 {
		scenario.Seed = cfg.Seed
	}

	set, err := scenario.BuildSet()
	if err != nil {
		log.Fatal(err)
	}
	grid, err := scenario.BuildInit()
	if err != nil {
		log.Fatal(err)
	}

	fps := scenario.FPS
	if cfg.FPS > 0 {
		fps = cfg.FPS
	}

	live := app.NewLive()
	run, err := engine.Start(live, set, engine.Options{
		Init:       grid,
		TSpan:      scenario.TSpan,
		FPS:        fps,
		Replicates: scenario.Replicates,
	})
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(live, run, grid.Size(), cfg.Scale)
	size := grid.Size()

	ebiten.SetWindowTitle("gridca")
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	if err := run.Wait(); err != nil && !errors.Is(err, engine.ErrCancelled) {
		log.Fatal(err)
	}
}
