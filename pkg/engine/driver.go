// Package engine contains the simulation driver: it advances time over a
// ruleset, sweeps double-buffered grids, honours frame pacing and
// cooperative cancellation, and pushes completed frames to a sink.
package engine

import (
	"log"
	"math"
	"time"

	"github.com/pkg/errors"

	"gridca/pkg/core"
	"gridca/pkg/rule"
	"gridca/pkg/sink"
)

// Options parameterize Start and Resume.
type Options struct {
	// Init is the explicit initial grid; it overrides a ruleset-carried
	// init. One of the two must be present for Start.
	Init *core.Grid

	// TSpan is the simulated time range (Start only).
	TSpan [2]float64

	// TStop is the simulated time to continue to (Resume only).
	TStop float64

	// FPS is the frame pacing target. Zero or negative runs unpaced.
	FPS float64

	// Replicates carries this many independent grid instances; the sink
	// receives their cell-wise mean. Values below 1 mean one.
	Replicates int

	// Data reuses prepared per-run state instead of building it (Start
	// only). Its shape must match the init grid.
	Data *SimData

	// Logf receives driver warnings. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// Run is a handle on a simulation run. For synchronous sinks the run has
// already finished when Start returns; for asynchronous sinks use Wait.
type Run struct {
	s    sink.Sink
	data *SimData
	done chan struct{}
	err  error
}

// Data exposes the per-run state.
func (r *Run) Data() *SimData { return r.data }

// Stop requests a cooperative stop. The driver notices after the current
// frame completes.
func (r *Run) Stop() { r.s.SetRunning(false) }

// Wait blocks until the run finishes and returns its terminal state: nil,
// ErrCancelled, or a failure.
func (r *Run) Wait() error {
	<-r.done
	return r.err
}

// Done reports without blocking whether the run has finished.
func (r *Run) Done() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Start begins a fresh run: it resolves the init grid, builds or reuses the
// SimData, resets the sink's frame storage, pushes frame 0, and drives the
// loop. When the sink is asynchronous the loop runs on a goroutine and
// Start returns immediately.
func Start(s sink.Sink, set rule.Set, opts Options) (*Run, error) {
	logf := opts.Logf
	if logf == nil {
		logf = log.Printf
	}
	if s.Running() {
		return nil, ErrAlreadyRunning
	}

	init := opts.Init
	if init == nil {
		init = set.Init
	} else if set.Init != nil && !init.SameShape(set.Init) {
		logf("engine: explicit init %dx%d overrides ruleset init %dx%d",
			init.W, init.H, set.Init.W, set.Init.H)
	}
	if init == nil {
		return nil, ErrNoInit
	}

	sd := opts.Data
	if sd == nil {
		var err error
		sd, err = NewSimData(set, init, opts.Replicates)
		if err != nil {
			return nil, err
		}
	} else if sd.Size() != init.Size() {
		return nil, errors.Wrapf(ErrShapeMismatch, "simdata %dx%d vs init %dx%d",
			sd.Size().W, sd.Size().H, init.W, init.H)
	}

	dt := set.Timestep()
	steps := stepCount(opts.TSpan[0], opts.TSpan[1], dt)

	if !s.SetRunning(true) {
		return nil, ErrSinkRejectedStart
	}
	s.SetFPS(opts.FPS)
	s.SetStartTime(time.Now())
	s.Reset()

	sd.Frame = 0
	sd.Time = opts.TSpan[0]
	s.PushFrame(sd.Aggregate(), sd.Time)

	return launch(s, sd, opts.TSpan[0], 0, steps, opts.FPS)
}

// Resume continues a finished run from the sink's last stored frame: frame
// numbering and simulation time pick up where the previous run ended.
func Resume(s sink.Sink, set rule.Set, opts Options) (*Run, error) {
	if s.Running() {
		return nil, ErrAlreadyRunning
	}
	m := s.Len()
	if m == 0 {
		return nil, ErrNoHistory
	}

	last := s.At(m - 1)
	tLast := s.TimeAt(m - 1)
	sd, err := NewSimData(set, last.Clone(), opts.Replicates)
	if err != nil {
		return nil, err
	}

	dt := set.Timestep()
	steps := stepCount(tLast, opts.TStop, dt)

	if !s.SetRunning(true) {
		return nil, ErrSinkRejectedStart
	}
	s.SetFPS(opts.FPS)
	s.SetStartTime(time.Now())

	sd.Frame = m - 1
	sd.Time = tLast

	return launch(s, sd, tLast, m-1, steps, opts.FPS)
}

func launch(s sink.Sink, sd *SimData, tBase float64, fBase, steps int, fps float64) (*Run, error) {
	run := &Run{s: s, data: sd, done: make(chan struct{})}
	if s.Async() {
		go run.loop(tBase, fBase, steps, fps)
		return run, nil
	}
	run.loop(tBase, fBase, steps, fps)
	return run, run.err
}

// loop is the frame loop: advance time, precompute, sweep each ruleset
// entry, deliver the frame, pace, check for cancellation.
func (r *Run) loop(tBase float64, fBase, steps int, fps float64) {
	defer close(r.done)

	sd := r.data
	dt := sd.set.Timestep()
	wall := time.Now()
	var period time.Duration
	if fps > 0 {
		period = time.Duration(float64(time.Second) / fps)
	}

	for i := 1; i <= steps; i++ {
		sd.Frame = fBase + i
		sd.Time = tBase + float64(i)*dt

		if err := sd.precompute(); err != nil {
			r.err = r.finish(err)
			return
		}
		for _, entry := range sd.set.Rules {
			sd.runEntry(entry)
		}
		r.s.PushFrame(sd.Aggregate(), sd.Time)

		if period > 0 {
			time.Sleep(time.Until(wall.Add(time.Duration(i) * period)))
		}
		if !r.s.Running() {
			r.err = r.finish(ErrCancelled)
			return
		}
	}
	r.err = r.finish(nil)
}

// finish clears the running flag, records the stop time, finalizes the sink
// and combines the terminal state with any finalize failure.
func (r *Run) finish(cause error) error {
	r.s.SetRunning(false)
	r.s.SetStopTime(time.Now())
	ferr := r.s.Finalize()
	if cause != nil {
		return cause
	}
	return ferr
}

// stepCount converts a time span into the number of frames after frame 0:
// the count of dt-sized steps that fit into [t0, t1].
func stepCount(t0, t1, dt float64) int {
	if t1 <= t0 || dt <= 0 {
		return 0
	}
	return int(math.Floor((t1-t0)/dt + 1e-9))
}
