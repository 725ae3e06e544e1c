package rule

import (
	"strings"
	"testing"

	"gridca/pkg/core"
)

func nop(ctx *Context, v float64) float64 { return v }

func TestValidateRejectsBadWiring(t *testing.T) {
	if err := (Rule{Name: "empty", Kind: KindCell}).Validate(); err == nil {
		t.Fatal("cell rule without apply function must be invalid")
	}
	if err := (Rule{Name: "nohood", Kind: KindNeighborhood, Cell: nop}).Validate(); err == nil {
		t.Fatal("neighborhood rule without stencil must be invalid")
	}
	if err := NewChain("empty").Validate(); err == nil {
		t.Fatal("empty chain must be invalid")
	}

	manual := NewManual("m", func(ctx *Context, x, y int) {})
	if err := NewChain("bad", NewCell("a", nop), manual).Validate(); err == nil {
		t.Fatal("chain containing a manual rule must be invalid")
	}

	hood := core.Radial(1, core.Sum)
	late := NewChain("late", NewCell("a", nop), NewNeighborhood("n", hood, nop))
	if err := late.Validate(); err == nil || !strings.Contains(err.Error(), "first") {
		t.Fatalf("late neighborhood rule in chain: %v", err)
	}

	lead := NewChain("lead", NewNeighborhood("n", hood, nop), NewCell("a", nop))
	if err := lead.Validate(); err != nil {
		t.Fatalf("neighborhood-led chain must be valid: %v", err)
	}
	if lead.Hood == nil {
		t.Fatal("chain must inherit the leading rule's stencil")
	}

	other := NewCell("b", nop).WithGrids([]string{"heat"}, []string{"heat"})
	if err := NewChain("split", NewCell("a", nop), other).Validate(); err == nil {
		t.Fatal("chain members bound to different grids must be invalid")
	}
}

func TestGridSetDefaults(t *testing.T) {
	r := NewCell("c", nop)
	if r.PrimaryRead() != DefaultGrid || r.PrimaryWrite() != DefaultGrid {
		t.Fatal("undeclared grid sets must default to the implicit grid")
	}

	wired := r.WithGrids([]string{"a", "b"}, []string{"b"})
	if wired.PrimaryRead() != "a" || wired.PrimaryWrite() != "b" {
		t.Fatalf("primary grids = %q/%q", wired.PrimaryRead(), wired.PrimaryWrite())
	}
	if r.PrimaryRead() != DefaultGrid {
		t.Fatal("WithGrids must not mutate the receiver")
	}
}

func TestSetGridNames(t *testing.T) {
	s := Set{Rules: []Rule{
		NewCell("a", nop),
		NewCell("b", nop).WithGrids([]string{DefaultGrid}, []string{"heat"}),
	}}
	names := s.GridNames()
	if len(names) != 2 || names[0] != DefaultGrid || names[1] != "heat" {
		t.Fatalf("GridNames = %v", names)
	}
}

func TestPrecomputedLeavesReceiverUntouched(t *testing.T) {
	r := NewCell("c", nop).WithPrecompute(func(in PrecomputeInput) (Rule, error) {
		return NewCell("replacement", nop), nil
	})
	next, err := r.Precomputed(PrecomputeInput{T: 1, DT: 1})
	if err != nil {
		t.Fatal(err)
	}
	if next.Name != "replacement" {
		t.Fatalf("replacement name = %q", next.Name)
	}
	if r.Name != "c" {
		t.Fatal("precompute must not mutate the original rule")
	}
}

func TestRegistryLookup(t *testing.T) {
	Register("reg-test", Factory{New: func(cfg map[string]string) (Rule, error) {
		return NewCell("reg-test", nop), nil
	}})
	r, err := New("reg-test", nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "reg-test" {
		t.Fatalf("name = %q", r.Name)
	}
	if _, err := New("missing", nil); err == nil {
		t.Fatal("unknown rule lookup must fail")
	}
}

func TestContextWriteRespectsOverflowAndMask(t *testing.T) {
	g := core.NewGrid(3, 3)
	mask := core.NewMask(3, 3)
	mask.Set(1, 1, false)

	ctx := &Context{
		Overflow: core.Skip,
		W:        3, H: 3,
		Mask:  mask,
		Dests: map[string]*core.Grid{DefaultGrid: g},
	}

	ctx.Write(DefaultGrid, 5, 5, 1)
	for _, v := range g.Cells() {
		if v != 0 {
			t.Fatal("out-of-bounds write under Skip must be dropped")
		}
	}

	ctx.Write(DefaultGrid, 1, 1, 1)
	if g.At(1, 1) != 0 {
		t.Fatal("write into a masked cell must be dropped")
	}

	ctx.Overflow = core.Wrap
	ctx.Write(DefaultGrid, 3, 0, 4)
	if g.At(0, 0) != 4 {
		t.Fatal("write under Wrap must land on the wrapped cell")
	}
}
