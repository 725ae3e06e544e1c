package rule

import "gridca/pkg/core"

// Context is the per-cell view handed to a rule's apply function. The engine
// owns and reuses one Context per sweep; rules must not retain it.
//
// Sources and Dests are the pre-sweep and destination grid views by name;
// AuxData are the read-only auxiliary arrays. These fields are populated by
// the engine before a sweep starts.
type Context struct {
	// X, Y are the coordinates of the cell being computed.
	X, Y int

	// T and DT are the current simulation time and ruleset timestep.
	T  float64
	DT float64

	// Frame is the current frame index.
	Frame int

	// Overflow is the active boundary policy.
	Overflow core.Overflow

	// W, H are the grid dimensions, shared by every named grid and aux
	// array in the run.
	W, H int

	// Hood is the neighborhood reduction computed from the unmodified
	// source grid. Only meaningful for neighborhood rules and for chains
	// led by one.
	Hood float64

	// Mask excludes cells from rule application; nil means all active.
	Mask *core.Mask

	Sources map[string]*core.Grid
	Dests   map[string]*core.Grid
	AuxData map[string][]float64
}

// Read returns the source value of the named grid at the current cell.
func (c *Context) Read(name string) float64 {
	return c.Sources[name].At(c.X, c.Y)
}

// ReadAt resolves (x, y) on the named source grid through the overflow
// policy. ok is false for absent cells under Skip.
func (c *Context) ReadAt(name string, x, y int) (float64, bool) {
	return c.Sources[name].Read(x, y, c.Overflow)
}

// Aux returns the named auxiliary value at the current cell.
func (c *Context) Aux(name string) float64 {
	return c.AuxData[name][c.Y*c.W+c.X]
}

// AuxAt returns the named auxiliary value at (x, y) without overflow
// resolution; coordinates must be in bounds.
func (c *Context) AuxAt(name string, x, y int) float64 {
	return c.AuxData[name][y*c.W+x]
}

// Write stores v into the named destination grid, resolving (x, y) through
// the overflow policy. Under Skip, out-of-bounds writes are dropped, as are
// writes targeting masked cells. Only manual rules may call Write; last
// writer wins.
func (c *Context) Write(name string, x, y int, v float64) {
	g := c.Dests[name]
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		if c.Overflow == core.Skip {
			return
		}
		x, y = g.Wrap(x, y)
	}
	if c.Mask != nil && !c.Mask.Active(x, y) {
		return
	}
	g.Set(x, y, v)
}
