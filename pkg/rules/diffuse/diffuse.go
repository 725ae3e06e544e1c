// Package diffuse provides a dispersal rule that relaxes each cell towards
// the mean of its neighborhood.
package diffuse

import (
	"fmt"

	"gridca/pkg/core"
	"gridca/pkg/rule"
)

// Config holds the dispersal parameters.
type Config struct {
	// Rate is the relaxation rate per unit of simulation time.
	Rate float64
	// Radius is the stencil radius.
	Radius int
}

// DefaultConfig returns a radius-1 dispersal at rate 0.5.
func DefaultConfig() Config {
	return Config{Rate: 0.5, Radius: 1}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Rate = core.FloatParam(cfg, "rate", c.Rate)
	c.Radius = core.IntParam(cfg, "radius", c.Radius)
	return c
}

// New builds the dispersal rule. The per-frame coefficient rate*dt is folded
// in by pre-computation, so the rule adapts when the ruleset timestep
// changes. Under Skip overflow absent neighbors add nothing to the sum while
// the divisor stays the full stencil size, so edge cells relax towards less
// than the mean of their in-bounds neighbors and the field loses mass at the
// boundary. Under Wrap the total mass is conserved.
func New(cfg Config) rule.Rule {
	if cfg.Radius < 1 {
		cfg.Radius = 1
	}
	hood := core.Radial(cfg.Radius, core.Sum)
	n := float64(hood.Len())
	var pre rule.PrecomputeFunc
	pre = func(in rule.PrecomputeInput) (rule.Rule, error) {
		k := cfg.Rate * in.DT
		if k < 0 {
			return rule.Rule{}, fmt.Errorf("negative dispersal coefficient %g", k)
		}
		if k > 1 {
			k = 1
		}
		out := rule.NewNeighborhood("diffuse", hood, apply(k, n))
		return out.WithPrecompute(pre), nil
	}
	return rule.NewNeighborhood("diffuse", hood, apply(cfg.Rate, n)).WithPrecompute(pre)
}

func apply(k, n float64) rule.CellFunc {
	return func(ctx *rule.Context, v float64) float64 {
		return v + k*(ctx.Hood/n-v)
	}
}

func init() {
	rule.Register("diffuse", rule.Factory{
		New: func(cfg map[string]string) (rule.Rule, error) {
			return New(FromMap(cfg)), nil
		},
		Params: []core.Parameter{
			{Key: "rate", Label: "Dispersal rate", Type: core.ParamTypeFloat, Default: "0.5"},
			{Key: "radius", Label: "Stencil radius", Type: core.ParamTypeInt, Default: "1"},
		},
	})
}
