package engine

import "github.com/pkg/errors"

// Error kinds surfaced by the driver. They are never recovered silently;
// callers test them with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start or Resume is called on an
	// active sink.
	ErrAlreadyRunning = errors.New("sink already running")

	// ErrNoInit is returned when neither the ruleset nor the options
	// supplied an init grid.
	ErrNoInit = errors.New("no init grid supplied")

	// ErrNoHistory is returned by Resume when the sink has no stored
	// frames to continue from.
	ErrNoHistory = errors.New("sink has no stored frames")

	// ErrSinkRejectedStart is returned when the sink refuses the
	// running-flag transition.
	ErrSinkRejectedStart = errors.New("sink rejected start")

	// ErrShapeMismatch is returned when a mask, aux array, or named init
	// grid disagrees with the init grid shape.
	ErrShapeMismatch = errors.New("grid shape mismatch")

	// ErrBadRule is returned when a rule's declared wiring is unusable:
	// nil apply functions, manual rules inside chains, or chain members
	// bound to different grids.
	ErrBadRule = errors.New("bad rule")

	// ErrCancelled reports a cooperative stop during the run. It is a
	// distinct terminal state rather than a failure.
	ErrCancelled = errors.New("run cancelled")
)
