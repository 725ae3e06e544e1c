// Package life provides a Life-family rule with configurable birth and
// survival sets, B3/S23 by default.
package life

import (
	"gridca/pkg/core"
	"gridca/pkg/rule"
)

// Config holds the rule sets for a Life-family automaton.
type Config struct {
	Birth   []int
	Survive []int
}

// DefaultConfig returns Conway's B3/S23.
func DefaultConfig() Config {
	return Config{Birth: []int{3}, Survive: []int{2, 3}}
}

// FromMap populates a Config from a string map. Birth and survival sets are
// digit strings, e.g. birth="36" survive="23" for HighLife.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["birth"]; ok {
		c.Birth = digits(v)
	}
	if v, ok := cfg["survive"]; ok {
		c.Survive = digits(v)
	}
	return c
}

func digits(s string) []int {
	var out []int
	for _, r := range s {
		if r >= '0' && r <= '8' {
			out = append(out, int(r-'0'))
		}
	}
	return out
}

// New builds the neighborhood rule: alive cells survive when their live
// Moore-neighbor count is in the survival set, dead cells are born when it
// is in the birth set.
func New(cfg Config) rule.Rule {
	var birth, survive [9]bool
	for _, n := range cfg.Birth {
		birth[n] = true
	}
	for _, n := range cfg.Survive {
		survive[n] = true
	}
	return rule.NewNeighborhood("life", core.Radial(1, core.Count),
		func(ctx *rule.Context, v float64) float64 {
			n := int(ctx.Hood + 0.5)
			if v != 0 {
				if survive[n] {
					return 1
				}
				return 0
			}
			if birth[n] {
				return 1
			}
			return 0
		})
}

func init() {
	rule.Register("life", rule.Factory{
		New: func(cfg map[string]string) (rule.Rule, error) {
			return New(FromMap(cfg)), nil
		},
		Params: []core.Parameter{
			{Key: "birth", Label: "Birth set", Type: core.ParamTypeString, Default: "3"},
			{Key: "survive", Label: "Survival set", Type: core.ParamTypeString, Default: "23"},
		},
	})
}
