package sink

// Memory stores every frame in memory. It backs resumable runs and is the
// sink of choice for tests and parameter sweeps.
type Memory struct {
	Base
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory { return &Memory{} }
