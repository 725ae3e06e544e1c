// Package sink defines the output collaborator contract of the simulation
// driver plus the reference sinks. A sink passively receives completed
// frames; the driver owns it for the duration of a run.
package sink

import (
	"sync"
	"time"

	"gridca/pkg/core"
)

// Sink receives completed frames and carries the run's pacing state. All
// methods must be safe for concurrent use when Async reports true.
type Sink interface {
	// PushFrame stores or renders a frame at simulation time t. The sink
	// takes ownership of the grid.
	PushFrame(g *core.Grid, t float64)
	// Len reports the number of stored frames.
	Len() int
	// At retrieves the i-th stored frame, used to seed a resumed run.
	At(i int) *core.Grid
	// TimeAt retrieves the simulation time of the i-th stored frame.
	TimeAt(i int) float64
	// Reset discards stored frames before a fresh run.
	Reset()

	// Running is the cooperative cancellation flag: the driver reads it
	// once per frame and stops gracefully when it turns false.
	Running() bool
	// SetRunning requests a flag transition and reports whether the sink
	// accepted it.
	SetRunning(on bool) bool

	StartTime() time.Time
	SetStartTime(time.Time)
	StopTime() time.Time
	SetStopTime(time.Time)

	FPS() float64
	SetFPS(float64)

	// Async reports whether the driver loop must run on a background
	// goroutine so the sink can service interaction.
	Async() bool

	// Finalize is called exactly once when the run ends.
	Finalize() error
}

// Base implements the bookkeeping half of the Sink contract. Concrete sinks
// embed it and override what they need.
type Base struct {
	mu      sync.Mutex
	frames  []*core.Grid
	times   []float64
	running bool
	start   time.Time
	stop    time.Time
	fps     float64
}

// PushFrame appends the frame to the in-memory history.
func (b *Base) PushFrame(g *core.Grid, t float64) {
	b.mu.Lock()
	b.frames = append(b.frames, g)
	b.times = append(b.times, t)
	b.mu.Unlock()
}

// Len reports the number of stored frames.
func (b *Base) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.frames)
}

// At returns the i-th stored frame.
func (b *Base) At(i int) *core.Grid {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames[i]
}

// TimeAt returns the simulation time of the i-th stored frame.
func (b *Base) TimeAt(i int) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.times[i]
}

// Reset discards the frame history.
func (b *Base) Reset() {
	b.mu.Lock()
	b.frames = nil
	b.times = nil
	b.mu.Unlock()
}

// Running reports the cooperative run flag.
func (b *Base) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

// SetRunning transitions the run flag. A transition to the current state is
// rejected.
func (b *Base) SetRunning(on bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running == on {
		return false
	}
	b.running = on
	return true
}

// StartTime returns the recorded wall-clock start of the run.
func (b *Base) StartTime() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.start
}

// SetStartTime records the wall-clock start of the run.
func (b *Base) SetStartTime(t time.Time) {
	b.mu.Lock()
	b.start = t
	b.mu.Unlock()
}

// StopTime returns the recorded wall-clock end of the run.
func (b *Base) StopTime() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stop
}

// SetStopTime records the wall-clock end of the run.
func (b *Base) SetStopTime(t time.Time) {
	b.mu.Lock()
	b.stop = t
	b.mu.Unlock()
}

// FPS returns the pacing target.
func (b *Base) FPS() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fps
}

// SetFPS records the pacing target.
func (b *Base) SetFPS(fps float64) {
	b.mu.Lock()
	b.fps = fps
	b.mu.Unlock()
}

// Async reports false; interactive sinks override it.
func (b *Base) Async() bool { return false }

// Finalize is a no-op for pure in-memory storage.
func (b *Base) Finalize() error { return nil }
