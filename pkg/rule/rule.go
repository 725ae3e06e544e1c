// Package rule models simulation rules as immutable tagged values. A Rule
// carries its capability kind, its declared read/write grid names, optional
// neighborhood stencil, and plain function values; the engine switches on the
// kind to pick the sweep.
package rule

import (
	"fmt"

	"gridca/pkg/core"
)

// DefaultGrid is the implicit grid name used by single-grid simulations.
const DefaultGrid = "_default_"

// Kind identifies a rule capability.
type Kind uint8

const (
	// KindCell rules read only the center cell and return its new value.
	KindCell Kind = iota
	// KindNeighborhood rules additionally see a reduction over their stencil.
	KindNeighborhood
	// KindManual rules write zero or more arbitrary destination cells
	// instead of returning a value for their own index.
	KindManual
	// KindChain fuses a sequence of cell-capable rules into one sweep.
	KindChain
)

// String returns the capability name.
func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindNeighborhood:
		return "neighborhood"
	case KindManual:
		return "manual"
	case KindChain:
		return "chain"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// CellFunc computes the new value of the cell at (ctx.X, ctx.Y) from its
// pre-sweep value v.
type CellFunc func(ctx *Context, v float64) float64

// ManualFunc may write any destination cells through ctx.Write. Cells it
// leaves unwritten keep their source value.
type ManualFunc func(ctx *Context, x, y int)

// PrecomputeInput is the read-only simulation state a rule may derive
// per-frame replacement state from.
type PrecomputeInput struct {
	T     float64
	DT    float64
	Frame int
	Size  core.Size
	Aux   map[string][]float64
}

// PrecomputeFunc returns a replacement rule derived from the current
// simulation state. It must leave the receiver untouched and be idempotent
// for a fixed input.
type PrecomputeFunc func(in PrecomputeInput) (Rule, error)

// Rule is an immutable rule value. Construct one with NewCell,
// NewNeighborhood, NewManual or NewChain; zero values are invalid.
type Rule struct {
	Name string
	Kind Kind

	// Reads and Writes name the grids this rule touches. Empty sets mean
	// the implicit DefaultGrid. The first entry of each is the primary
	// grid the sweep iterates over.
	Reads  []string
	Writes []string

	// Hood is set for neighborhood rules and for chains whose first rule
	// carries one.
	Hood *core.Neighborhood

	Cell       CellFunc
	Manual     ManualFunc
	Precompute PrecomputeFunc

	// Rules is the chain payload.
	Rules []Rule
}

// NewCell builds a cell rule.
func NewCell(name string, fn CellFunc) Rule {
	return Rule{Name: name, Kind: KindCell, Cell: fn}
}

// NewNeighborhood builds a neighborhood rule over the given stencil.
func NewNeighborhood(name string, hood core.Neighborhood, fn CellFunc) Rule {
	return Rule{Name: name, Kind: KindNeighborhood, Hood: &hood, Cell: fn}
}

// NewManual builds a manual rule.
func NewManual(name string, fn ManualFunc) Rule {
	return Rule{Name: name, Kind: KindManual, Manual: fn}
}

// NewChain fuses the given rules into one sweep. Only the first rule may be
// a neighborhood rule; manual rules are rejected at validation.
func NewChain(name string, rules ...Rule) Rule {
	c := Rule{Name: name, Kind: KindChain, Rules: append([]Rule(nil), rules...)}
	if len(c.Rules) > 0 && c.Rules[0].Kind == KindNeighborhood {
		c.Hood = c.Rules[0].Hood
	}
	return c
}

// ReadGrids returns the declared read set, defaulting to DefaultGrid.
func (r Rule) ReadGrids() []string {
	if len(r.Reads) == 0 {
		return []string{DefaultGrid}
	}
	return r.Reads
}

// WriteGrids returns the declared write set, defaulting to DefaultGrid.
func (r Rule) WriteGrids() []string {
	if len(r.Writes) == 0 {
		return []string{DefaultGrid}
	}
	return r.Writes
}

// PrimaryRead is the grid the sweep reads cell values from.
func (r Rule) PrimaryRead() string { return r.ReadGrids()[0] }

// PrimaryWrite is the grid the sweep writes cell values to.
func (r Rule) PrimaryWrite() string { return r.WriteGrids()[0] }

// WithGrids returns a copy of the rule with explicit read and write sets.
func (r Rule) WithGrids(reads, writes []string) Rule {
	r.Reads = append([]string(nil), reads...)
	r.Writes = append([]string(nil), writes...)
	return r
}

// WithPrecompute returns a copy of the rule carrying the given hook.
func (r Rule) WithPrecompute(fn PrecomputeFunc) Rule {
	r.Precompute = fn
	return r
}

// Validate checks the rule's internal wiring.
func (r Rule) Validate() error {
	switch r.Kind {
	case KindCell:
		if r.Cell == nil {
			return fmt.Errorf("cell rule %q has no apply function", r.Name)
		}
	case KindNeighborhood:
		if r.Cell == nil {
			return fmt.Errorf("neighborhood rule %q has no apply function", r.Name)
		}
		if r.Hood == nil {
			return fmt.Errorf("neighborhood rule %q has no stencil", r.Name)
		}
	case KindManual:
		if r.Manual == nil {
			return fmt.Errorf("manual rule %q has no apply function", r.Name)
		}
	case KindChain:
		if len(r.Rules) == 0 {
			return fmt.Errorf("chain %q is empty", r.Name)
		}
		for i, inner := range r.Rules {
			switch inner.Kind {
			case KindCell:
			case KindNeighborhood:
				if i != 0 {
					return fmt.Errorf("chain %q: neighborhood rule %q must be first", r.Name, inner.Name)
				}
			default:
				return fmt.Errorf("chain %q: rule %q of kind %s cannot be chained", r.Name, inner.Name, inner.Kind)
			}
			if err := inner.Validate(); err != nil {
				return err
			}
			if inner.PrimaryRead() != r.PrimaryRead() || inner.PrimaryWrite() != r.PrimaryWrite() {
				return fmt.Errorf("chain %q: rule %q reads/writes a different grid", r.Name, inner.Name)
			}
		}
	default:
		return fmt.Errorf("rule %q has unknown kind %d", r.Name, r.Kind)
	}
	return nil
}

// Precomputed applies the rule's precompute hook, returning the replacement
// rule to run for the current frame. Chains precompute their members.
func (r Rule) Precomputed(in PrecomputeInput) (Rule, error) {
	if r.Kind == KindChain {
		out := r
		out.Rules = append([]Rule(nil), r.Rules...)
		for i, inner := range out.Rules {
			next, err := inner.Precomputed(in)
			if err != nil {
				return r, err
			}
			out.Rules[i] = next
		}
		if len(out.Rules) > 0 && out.Rules[0].Kind == KindNeighborhood {
			out.Hood = out.Rules[0].Hood
		}
		return out, nil
	}
	if r.Precompute == nil {
		return r, nil
	}
	next, err := r.Precompute(in)
	if err != nil {
		return r, fmt.Errorf("precompute %q: %w", r.Name, err)
	}
	return next, nil
}
