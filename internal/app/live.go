package app

import (
	"gridca/pkg/core"
	"gridca/pkg/sink"
)

// Live is the interactive window sink. It declares itself asynchronous so
// the driver loop runs on a background goroutine while the GUI thread draws
// the latest stored frame and services input.
type Live struct {
	sink.Base
}

// NewLive returns an empty interactive sink.
func NewLive() *Live { return &Live{} }

// Async reports true: the GUI owns the foreground.
func (l *Live) Async() bool { return true }

// Latest returns the most recent frame and its simulation time, or nil
// before frame 0 arrives.
func (l *Live) Latest() (*core.Grid, float64) {
	n := l.Len()
	if n == 0 {
		return nil, 0
	}
	return l.At(n - 1), l.TimeAt(n - 1)
}
