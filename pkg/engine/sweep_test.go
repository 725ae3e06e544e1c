package engine

import (
	"testing"

	"gridca/pkg/core"
	"gridca/pkg/rule"
	"gridca/pkg/rules/drift"
)

// hoodProbe turns the per-cell reduction into the cell value so tests can
// compare sweep output against the reference reduction.
func hoodProbe(hood core.Neighborhood) rule.Rule {
	return rule.NewNeighborhood("probe", hood, func(ctx *rule.Context, v float64) float64 {
		return ctx.Hood
	})
}

func randomGrid(w, h int, seed int64) *core.Grid {
	g := core.NewGrid(w, h)
	src := core.NewRNG(seed).Source()
	for i := range g.Cells() {
		g.Cells()[i] = float64(src.IntN(4))
	}
	return g
}

func sweepOnce(t *testing.T, set rule.Set, init *core.Grid) *core.Grid {
	t.Helper()
	sd, err := NewSimData(set, init, 1)
	if err != nil {
		t.Fatalf("NewSimData: %v", err)
	}
	sd.runEntry(set.Rules[0])
	return sd.Source(rule.DefaultGrid, 0)
}

func TestBufferedSweepMatchesReference(t *testing.T) {
	cases := []struct {
		name string
		hood core.Neighborhood
		of   core.Overflow
	}{
		{"radial1-count-wrap", core.Radial(1, core.Count), core.Wrap},
		{"radial1-count-skip", core.Radial(1, core.Count), core.Skip},
		{"radial2-sum-wrap", core.Radial(2, core.Sum), core.Wrap},
		{"radial2-sum-skip", core.Radial(2, core.Sum), core.Skip},
		{"radial2-max-skip", core.Radial(2, core.Max), core.Skip},
		{"asymmetric-sum-skip", core.NewNeighborhood([]core.Offset{
			{DX: -2, DY: 0}, {DX: 1, DY: 1}, {DX: 0, DY: -1}, {DX: 2, DY: 2},
		}, core.Sum), core.Skip},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			init := randomGrid(9, 7, 5)
			set := rule.Set{Rules: []rule.Rule{hoodProbe(tc.hood)}, DT: 1, Overflow: tc.of}
			out := sweepOnce(t, set, init)

			for y := 0; y < init.H; y++ {
				for x := 0; x < init.W; x++ {
					want := tc.hood.Reduce(init, x, y, tc.of)
					if got := out.At(x, y); got != want {
						t.Fatalf("cell (%d,%d): buffered sweep %g, reference %g", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestSkipCountsAbsentNotZero(t *testing.T) {
	// Under Skip the corner of a 3x3 grid has 3 present neighbors and the
	// center 8. Sum and Count give the same result whether absent cells are
	// skipped or read as zero, so the last check uses Max over negative
	// values, where a zero read would lift the corner maximum to 0.
	init := core.NewGrid(3, 3)
	init.Fill(2)

	hood := core.Radial(1, core.Sum)
	set := rule.Set{Rules: []rule.Rule{hoodProbe(hood)}, DT: 1, Overflow: core.Skip}
	out := sweepOnce(t, set, init)

	if got := out.At(0, 0); got != 6 {
		t.Fatalf("corner sum = %g, want 6 from 3 present neighbors", got)
	}
	if got := out.At(1, 1); got != 16 {
		t.Fatalf("center sum = %g, want 16 from 8 present neighbors", got)
	}

	neg := core.NewGrid(3, 3)
	neg.Fill(-2)
	maxSet := rule.Set{Rules: []rule.Rule{hoodProbe(core.Radial(1, core.Max))}, DT: 1, Overflow: core.Skip}
	if got := sweepOnce(t, maxSet, neg).At(0, 0); got != -2 {
		t.Fatalf("corner max = %g, want -2 from present neighbors only", got)
	}
}

func TestManualSweepDefaultsToSource(t *testing.T) {
	init := randomGrid(5, 4, 9)
	set := rule.Set{
		Rules:    []rule.Rule{drift.New(drift.Config{DX: 1, DY: 0})},
		DT:       1,
		Overflow: core.Skip,
	}
	out := sweepOnce(t, set, init)

	for y := 0; y < init.H; y++ {
		// Column 0 has no incoming writer under Skip and keeps its
		// source value.
		if out.At(0, y) != init.At(0, y) {
			t.Fatalf("row %d: unwritten cell lost its source value", y)
		}
		for x := 1; x < init.W; x++ {
			if out.At(x, y) != init.At(x-1, y) {
				t.Fatalf("cell (%d,%d) should hold the drifted value", x, y)
			}
		}
	}
}

func TestManualSweepWrapsWrites(t *testing.T) {
	init := randomGrid(5, 4, 13)
	set := rule.Set{
		Rules:    []rule.Rule{drift.New(drift.Config{DX: 1, DY: 0})},
		DT:       1,
		Overflow: core.Wrap,
	}
	out := sweepOnce(t, set, init)

	for y := 0; y < init.H; y++ {
		for x := 0; x < init.W; x++ {
			sx := (x - 1 + init.W) % init.W
			if out.At(x, y) != init.At(sx, y) {
				t.Fatalf("cell (%d,%d) should hold the wrapped drifted value", x, y)
			}
		}
	}
}

func TestChainReductionFromUnmodifiedSource(t *testing.T) {
	// The chained increment must not influence the reduction, which is
	// computed once from the pre-sweep source.
	init := randomGrid(6, 6, 17)
	probe := hoodProbe(core.Radial(1, core.Sum))
	inc := rule.NewCell("inc", func(ctx *rule.Context, v float64) float64 { return v + 1 })
	chain := rule.NewChain("probe-inc", probe, inc)

	set := rule.Set{Rules: []rule.Rule{chain}, DT: 1, Overflow: core.Wrap}
	out := sweepOnce(t, set, init)

	hood := core.Radial(1, core.Sum)
	for y := 0; y < init.H; y++ {
		for x := 0; x < init.W; x++ {
			want := hood.Reduce(init, x, y, core.Wrap) + 1
			if got := out.At(x, y); got != want {
				t.Fatalf("cell (%d,%d): %g, want %g", x, y, got, want)
			}
		}
	}
}

func TestAuxArraysReachRules(t *testing.T) {
	init := core.NewGrid(3, 2)
	bias := []float64{1, 2, 3, 4, 5, 6}
	add := rule.NewCell("add-bias", func(ctx *rule.Context, v float64) float64 {
		return v + ctx.Aux("bias")
	})
	set := rule.Set{Rules: []rule.Rule{add}, DT: 1, Aux: map[string][]float64{"bias": bias}}

	out := sweepOnce(t, set, init)
	for i, want := range bias {
		if got := out.Cells()[i]; got != want {
			t.Fatalf("cell %d = %g, want %g", i, got, want)
		}
	}
}

func TestNamedWriteGrid(t *testing.T) {
	init := randomGrid(4, 4, 21)
	toShadow := rule.NewCell("to-shadow", func(ctx *rule.Context, v float64) float64 {
		return v
	}).WithGrids([]string{rule.DefaultGrid}, []string{"shadow"})

	set := rule.Set{Rules: []rule.Rule{toShadow}, DT: 1}
	sd, err := NewSimData(set, init, 1)
	if err != nil {
		t.Fatalf("NewSimData: %v", err)
	}
	sd.runEntry(set.Rules[0])

	if !sd.Source("shadow", 0).Equal(init) {
		t.Fatal("shadow grid should hold a copy of the default grid")
	}
	if !sd.Source(rule.DefaultGrid, 0).Equal(init) {
		t.Fatal("default grid should be untouched by a shadow-directed rule")
	}
}

func TestAggregateIsReplicateMean(t *testing.T) {
	init := core.NewGrid(2, 2)
	set := rule.Set{Rules: []rule.Rule{rule.NewCell("id", func(ctx *rule.Context, v float64) float64 { return v })}, DT: 1}
	sd, err := NewSimData(set, init, 3)
	if err != nil {
		t.Fatalf("NewSimData: %v", err)
	}
	for i := 0; i < 3; i++ {
		sd.Source(rule.DefaultGrid, i).Fill(float64(i))
	}

	agg := sd.Aggregate()
	for _, v := range agg.Cells() {
		if v != 1 {
			t.Fatalf("aggregate cell = %g, want mean 1", v)
		}
	}
}

func TestReplicatesStayIndependent(t *testing.T) {
	init := randomGrid(4, 4, 29)
	set := rule.Set{Rules: []rule.Rule{rule.NewCell("inc", func(ctx *rule.Context, v float64) float64 { return v + 1 })}, DT: 1}

	sd, err := NewSimData(set, init, 4)
	if err != nil {
		t.Fatalf("NewSimData: %v", err)
	}
	sd.runEntry(set.Rules[0])

	for i := 0; i < 4; i++ {
		rep := sd.Source(rule.DefaultGrid, i)
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if rep.At(x, y) != init.At(x, y)+1 {
					t.Fatalf("replicate %d cell (%d,%d) diverged", i, x, y)
				}
			}
		}
	}
}
