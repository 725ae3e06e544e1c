// Package drift provides a manual rule that translates the whole field by a
// fixed offset each step. Under Wrap the shift is a permutation of cells;
// under Skip, mass leaving the grid is dropped and cells with no incoming
// writer keep their previous value.
package drift

import (
	"gridca/pkg/core"
	"gridca/pkg/rule"
)

// Config holds the per-step displacement.
type Config struct {
	DX, DY int
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	return Config{
		DX: core.IntParam(cfg, "dx", 1),
		DY: core.IntParam(cfg, "dy", 0),
	}
}

// New builds the drift rule. Each cell deposits its source value into the
// displaced destination cell; the destination's pre-seed covers everything
// else.
func New(cfg Config) rule.Rule {
	return rule.NewManual("drift", func(ctx *rule.Context, x, y int) {
		ctx.Write(rule.DefaultGrid, x+cfg.DX, y+cfg.DY, ctx.Read(rule.DefaultGrid))
	})
}

func init() {
	rule.Register("drift", rule.Factory{
		New: func(cfg map[string]string) (rule.Rule, error) {
			return New(FromMap(cfg)), nil
		},
		Params: []core.Parameter{
			{Key: "dx", Label: "X displacement", Type: core.ParamTypeInt, Default: "1"},
			{Key: "dy", Label: "Y displacement", Type: core.ParamTypeInt, Default: "0"},
		},
	})
}
