package engine

import (
	"github.com/pkg/errors"

	"gridca/pkg/core"
	"gridca/pkg/rule"
)

// bufferPair is one double-buffered grid: src is read during a sweep, dst is
// written. swap exchanges the roles in O(1).
type bufferPair struct {
	src, dst *core.Grid
}

func (p *bufferPair) swap() { p.src, p.dst = p.dst, p.src }

// replicate is one independent instance of every named grid pair. Replicates
// never share storage.
type replicate struct {
	pairs map[string]*bufferPair
}

// SimData is the mutable per-run state: the current frame index and time,
// the working ruleset (updated by pre-computation), and the double-buffered
// grids of every replicate.
type SimData struct {
	// Frame is the index of the most recently completed frame.
	Frame int
	// Time is the simulation time of that frame.
	Time float64
	// Swaps counts logical buffer swaps since construction, one per
	// written grid per ruleset entry per frame.
	Swaps int

	set  rule.Set
	size core.Size
	mask *core.Mask
	aux  map[string][]float64
	reps []*replicate
	ctxs []*rule.Context
}

// NewSimData builds the per-run state for the given ruleset, init grid and
// replicate count. Named grids beyond the default start from set.Inits when
// present and from zero otherwise.
func NewSimData(set rule.Set, init *core.Grid, replicates int) (*SimData, error) {
	if err := set.Validate(); err != nil {
		return nil, errors.Wrap(ErrBadRule, err.Error())
	}
	if init == nil {
		return nil, ErrNoInit
	}
	if replicates < 1 {
		replicates = 1
	}
	size := init.Size()
	total := size.W * size.H

	if m := set.Mask; m != nil && (m.W != size.W || m.H != size.H) {
		return nil, errors.Wrapf(ErrShapeMismatch, "mask %dx%d vs init %dx%d", m.W, m.H, size.W, size.H)
	}
	for name, a := range set.Aux {
		if len(a) != total {
			return nil, errors.Wrapf(ErrShapeMismatch, "aux %q has %d cells, want %d", name, len(a), total)
		}
	}
	for name, g := range set.Inits {
		if !g.SameShape(init) {
			return nil, errors.Wrapf(ErrShapeMismatch, "init grid %q %dx%d vs init %dx%d", name, g.W, g.H, size.W, size.H)
		}
	}

	sd := &SimData{
		set:  set,
		size: size,
		mask: set.Mask,
		aux:  set.Aux,
	}
	names := set.GridNames()
	for r := 0; r < replicates; r++ {
		rep := &replicate{pairs: make(map[string]*bufferPair, len(names))}
		for _, name := range names {
			var src *core.Grid
			switch {
			case name == rule.DefaultGrid:
				src = init.Clone()
			case set.Inits[name] != nil:
				src = set.Inits[name].Clone()
			default:
				src = core.NewGrid(size.W, size.H)
			}
			rep.pairs[name] = &bufferPair{src: src, dst: core.NewGrid(size.W, size.H)}
		}
		sd.reps = append(sd.reps, rep)
		sd.ctxs = append(sd.ctxs, &rule.Context{
			DT:       set.Timestep(),
			Overflow: set.Overflow,
			W:        size.W,
			H:        size.H,
			Mask:     set.Mask,
			Sources:  make(map[string]*core.Grid, len(names)),
			Dests:    make(map[string]*core.Grid, len(names)),
			AuxData:  set.Aux,
		})
	}
	return sd, nil
}

// Size returns the grid dimensions of the run.
func (sd *SimData) Size() core.Size { return sd.size }

// Replicates returns the number of independent grid instances.
func (sd *SimData) Replicates() int { return len(sd.reps) }

// Ruleset returns the current working ruleset, including any precomputed
// rule replacements.
func (sd *SimData) Ruleset() rule.Set { return sd.set }

// Source exposes the current source buffer of a named grid in one
// replicate. Intended for sinks, tests and tooling; sweeps hold their own
// references.
func (sd *SimData) Source(name string, rep int) *core.Grid {
	return sd.reps[rep].pairs[name].src
}

// Aggregate reduces the default grid across replicates into one frame. With
// a single replicate this is a plain copy; otherwise the cell-wise mean.
func (sd *SimData) Aggregate() *core.Grid {
	out := sd.reps[0].pairs[rule.DefaultGrid].src.Clone()
	if len(sd.reps) == 1 {
		return out
	}
	cells := out.Cells()
	for _, rep := range sd.reps[1:] {
		for i, v := range rep.pairs[rule.DefaultGrid].src.Cells() {
			cells[i] += v
		}
	}
	inv := 1 / float64(len(sd.reps))
	for i := range cells {
		cells[i] *= inv
	}
	return out
}

// precompute replaces every rule in the working set with its precomputed
// value for the current frame.
func (sd *SimData) precompute() error {
	in := rule.PrecomputeInput{
		T:     sd.Time,
		DT:    sd.set.Timestep(),
		Frame: sd.Frame,
		Size:  sd.size,
		Aux:   sd.aux,
	}
	next, err := sd.set.Precomputed(in)
	if err != nil {
		return err
	}
	sd.set = next
	return nil
}
