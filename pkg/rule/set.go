package rule

import (
	"fmt"

	"gridca/pkg/core"
)

// Set is the ordered sequence of rules (and chains) applied per time step,
// plus the simulation parameters they run under.
type Set struct {
	Rules []Rule

	// DT is the simulation timestep; zero means 1.
	DT float64

	// Overflow is the boundary policy for every sweep in the set.
	Overflow core.Overflow

	// Init optionally carries the initial default grid. An explicit init
	// passed to the driver takes precedence.
	Init *core.Grid

	// Inits optionally seed additional named grids.
	Inits map[string]*core.Grid

	// Mask optionally excludes cells from rule application.
	Mask *core.Mask

	// Aux maps names to read-only arrays indexed identically to grids.
	Aux map[string][]float64
}

// Timestep returns DT, defaulting to 1.
func (s Set) Timestep() float64 {
	if s.DT <= 0 {
		return 1
	}
	return s.DT
}

// GridNames returns every grid name any rule in the set reads or writes,
// DefaultGrid first.
func (s Set) GridNames() []string {
	seen := map[string]bool{DefaultGrid: true}
	names := []string{DefaultGrid}
	add := func(ns []string) {
		for _, n := range ns {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	for _, r := range s.Rules {
		add(r.ReadGrids())
		add(r.WriteGrids())
		for _, inner := range r.Rules {
			add(inner.ReadGrids())
			add(inner.WriteGrids())
		}
	}
	return names
}

// Validate checks every rule in the set.
func (s Set) Validate() error {
	if len(s.Rules) == 0 {
		return fmt.Errorf("ruleset has no rules")
	}
	for _, r := range s.Rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Precomputed returns a copy of the set with every rule replaced by its
// precomputed value for the given input. The receiver is unchanged.
func (s Set) Precomputed(in PrecomputeInput) (Set, error) {
	out := s
	out.Rules = append([]Rule(nil), s.Rules...)
	for i, r := range out.Rules {
		next, err := r.Precomputed(in)
		if err != nil {
			return s, err
		}
		out.Rules[i] = next
	}
	return out, nil
}
