package main

import (
	"flag"
	"log"
	"time"

	"github.com/pkg/errors"

	"gridca/internal/config"
	"gridca/pkg/engine"
	_ "gridca/pkg/rules/diffuse"
	_ "gridca/pkg/rules/drift"
	_ "gridca/pkg/rules/life"
)

func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "scenario file to run")
	fps := flag.Float64("fps", 0, "frame pacing target, 0 uses the scenario's fps")
	flag.Parse()

	scenario, err := config.Load(*scenarioPath)
	if err != nil {
		log.Fatal(err)
	}

	set, err := scenario.BuildSet()
	if err != nil {
		log.Fatal(err)
	}
	grid, err := scenario.BuildInit()
	if err != nil {
		log.Fatal(err)
	}
	out, closeOut, err := scenario.BuildSink()
	if err != nil {
		log.Fatal(err)
	}

	pace := scenario.FPS
	if *fps > 0 {
		pace = *fps
	}

	started := time.Now()
	run, err := engine.Start(out, set, engine.Options{
		Init:       grid,
		TSpan:      scenario.TSpan,
		FPS:        pace,
		Replicates: scenario.Replicates,
	})
	if err != nil && !errors.Is(err, engine.ErrCancelled) {
		log.Fatal(err)
	}
	if err := closeOut(); err != nil {
		log.Fatal(err)
	}

	log.Printf("rendered %d frames in %s", run.Data().Frame+1, time.Since(started).Round(time.Millisecond))
}
