package life

import (
	"testing"

	"gridca/pkg/rule"
)

func TestDefaultRuleTransitions(t *testing.T) {
	r := New(DefaultConfig())
	ctx := &rule.Context{}

	cases := []struct {
		alive     float64
		neighbors float64
		want      float64
	}{
		{1, 2, 1},
		{1, 3, 1},
		{1, 1, 0},
		{1, 4, 0},
		{0, 3, 1},
		{0, 2, 0},
		{0, 8, 0},
	}
	for _, tc := range cases {
		ctx.Hood = tc.neighbors
		if got := r.Cell(ctx, tc.alive); got != tc.want {
			t.Fatalf("alive=%g neighbors=%g -> %g, want %g", tc.alive, tc.neighbors, got, tc.want)
		}
	}
}

func TestFromMapParsesRuleSets(t *testing.T) {
	cfg := FromMap(map[string]string{"birth": "36", "survive": "23"})
	if len(cfg.Birth) != 2 || cfg.Birth[0] != 3 || cfg.Birth[1] != 6 {
		t.Fatalf("birth = %v, want [3 6]", cfg.Birth)
	}
	if len(cfg.Survive) != 2 || cfg.Survive[0] != 2 || cfg.Survive[1] != 3 {
		t.Fatalf("survive = %v, want [2 3]", cfg.Survive)
	}

	highlife := New(cfg)
	ctx := &rule.Context{Hood: 6}
	if got := highlife.Cell(ctx, 0); got != 1 {
		t.Fatal("HighLife must birth on 6 neighbors")
	}
}

func TestRuleRegistered(t *testing.T) {
	r, err := rule.New("life", nil)
	if err != nil {
		t.Fatalf("registry lookup: %v", err)
	}
	if r.Kind != rule.KindNeighborhood {
		t.Fatalf("kind = %s, want neighborhood", r.Kind)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
