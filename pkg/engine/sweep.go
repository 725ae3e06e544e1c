package engine

import (
	"golang.org/x/sync/errgroup"

	"gridca/pkg/rule"
)

// runEntry performs one sweep of a top-level ruleset entry over every
// replicate, then swaps the written buffer pairs. Replicates are independent
// by construction, so they fan out concurrently; results are identical to a
// sequential run.
func (sd *SimData) runEntry(r rule.Rule) {
	if len(sd.reps) == 1 {
		sd.sweep(r, sd.reps[0], sd.ctxs[0])
	} else {
		var eg errgroup.Group
		for i := range sd.reps {
			rep, ctx := sd.reps[i], sd.ctxs[i]
			eg.Go(func() error {
				sd.sweep(r, rep, ctx)
				return nil
			})
		}
		_ = eg.Wait()
	}
	writes := r.WriteGrids()
	for _, rep := range sd.reps {
		for _, name := range writes {
			rep.pairs[name].swap()
		}
	}
	sd.Swaps += len(writes)
}

// sweep applies one rule (or chain) to every cell of one replicate.
func (sd *SimData) sweep(r rule.Rule, rep *replicate, ctx *rule.Context) {
	for name, p := range rep.pairs {
		ctx.Sources[name] = p.src
		ctx.Dests[name] = p.dst
	}
	ctx.T = sd.Time
	ctx.Frame = sd.Frame

	switch r.Kind {
	case rule.KindCell:
		sd.sweepCell(r, rep, ctx)
	case rule.KindNeighborhood:
		sd.sweepHood(r, rep, ctx)
	case rule.KindChain:
		if r.Rules[0].Kind == rule.KindNeighborhood {
			sd.sweepHood(r, rep, ctx)
		} else {
			sd.sweepCell(r, rep, ctx)
		}
	case rule.KindManual:
		sd.sweepManual(r, rep, ctx)
	}
}

// applyChain threads the intermediate cell value through the chain without
// materialising it to the grid. Plain rules are a chain of one.
func applyChain(r rule.Rule, ctx *rule.Context, v float64) float64 {
	if r.Kind != rule.KindChain {
		return r.Cell(ctx, v)
	}
	for i := range r.Rules {
		v = r.Rules[i].Cell(ctx, v)
	}
	return v
}

// sweepCell handles cell rules and chains of cell rules: one read, one write
// per cell, no stencil.
func (sd *SimData) sweepCell(r rule.Rule, rep *replicate, ctx *rule.Context) {
	src := rep.pairs[r.PrimaryRead()].src
	wp := rep.pairs[r.PrimaryWrite()]
	carry, dst := wp.src, wp.dst
	w, h := sd.size.W, sd.size.H
	mask := sd.mask

	for y := 0; y < h; y++ {
		ctx.Y = y
		for x := 0; x < w; x++ {
			if mask != nil && !mask.Active(x, y) {
				dst.Set(x, y, carry.At(x, y))
				continue
			}
			ctx.X = x
			dst.Set(x, y, applyChain(r, ctx, src.At(x, y)))
		}
	}
}

// sweepHood handles neighborhood rules and chains led by one. The stencil is
// read through row buffers with overflow resolved per row; radial stencils
// with invertible reducers additionally keep a moving-window accumulator.
func (sd *SimData) sweepHood(r rule.Rule, rep *replicate, ctx *rule.Context) {
	src := rep.pairs[r.PrimaryRead()].src
	wp := rep.pairs[r.PrimaryWrite()]
	carry, dst := wp.src, wp.dst
	w, h := sd.size.W, sd.size.H
	mask := sd.mask

	hood := r.Hood
	win := newRowWindow(src, sd.set.Overflow, hood)
	radius, radial := hood.RadialRadius()
	var mw *movingWindow
	if radial && hood.Reducer().Invertible() {
		mw = newMovingWindow(win, hood.Reducer(), radius)
	}

	for y := 0; y < h; y++ {
		if y == 0 {
			win.load(0)
		} else {
			win.advance()
		}
		ctx.Y = y
		if mw != nil {
			mw.start()
		}
		for x := 0; x < w; x++ {
			if mw != nil && x > 0 {
				mw.step(x)
			}
			if mask != nil && !mask.Active(x, y) {
				dst.Set(x, y, carry.At(x, y))
				continue
			}
			ctx.X = x
			if mw != nil {
				ctx.Hood = mw.at(x, y)
			} else {
				ctx.Hood = win.reduceAt(hood, x)
			}
			dst.Set(x, y, applyChain(r, ctx, src.At(x, y)))
		}
	}
}

// sweepManual seeds every written destination with its source, then lets the
// rule place its own writes; cells it never touches keep their source value,
// and the last writer wins.
func (sd *SimData) sweepManual(r rule.Rule, rep *replicate, ctx *rule.Context) {
	for _, name := range r.WriteGrids() {
		p := rep.pairs[name]
		p.dst.CopyFrom(p.src)
	}
	w, h := sd.size.W, sd.size.H
	mask := sd.mask

	for y := 0; y < h; y++ {
		ctx.Y = y
		for x := 0; x < w; x++ {
			if mask != nil && !mask.Active(x, y) {
				continue
			}
			ctx.X = x
			r.Manual(ctx, x, y)
		}
	}
}
