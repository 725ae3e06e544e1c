// Package config loads simulation scenarios from YAML files and builds the
// engine inputs from them.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"gridca/pkg/core"
	"gridca/pkg/rule"
	"gridca/pkg/sink"
)

// GridSpec describes the simulation grid.
type GridSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// InitSpec describes how the initial grid is filled.
type InitSpec struct {
	// Kind is one of "empty", "fill", "random", "cells".
	Kind    string   `yaml:"kind"`
	Value   float64  `yaml:"value"`
	Density float64  `yaml:"density"`
	Cells   [][2]int `yaml:"cells"`
}

// RuleSpec names a registered rule and its parameters. A spec with a chain
// fuses the listed rules into one sweep instead.
type RuleSpec struct {
	Name   string            `yaml:"name"`
	Params map[string]string `yaml:"params"`
	Chain  []RuleSpec        `yaml:"chain"`
}

// MaskSpec lists cells excluded from rule application.
type MaskSpec struct {
	Inactive [][2]int `yaml:"inactive"`
}

// SinkSpec selects the output sink.
type SinkSpec struct {
	// Kind is one of "memory", "terminal", "gif", "recorder".
	Kind      string  `yaml:"kind"`
	Path      string  `yaml:"path"`
	Threshold float64 `yaml:"threshold"`
	Delay     int     `yaml:"delay"`
}

// Scenario is a complete simulation description.
type Scenario struct {
	Grid       GridSpec             `yaml:"grid"`
	Overflow   string               `yaml:"overflow"`
	DT         float64              `yaml:"dt"`
	FPS        float64              `yaml:"fps"`
	TSpan      [2]float64           `yaml:"tspan"`
	Replicates int                  `yaml:"replicates"`
	Seed       int64                `yaml:"seed"`
	Init       InitSpec             `yaml:"init"`
	Mask       *MaskSpec            `yaml:"mask"`
	Aux        map[string][]float64 `yaml:"aux"`
	Rules      []RuleSpec           `yaml:"rules"`
	Sink       SinkSpec             `yaml:"sink"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}
	return Parse(data)
}

// Parse decodes a scenario from YAML.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}
	if s.Grid.Width <= 0 || s.Grid.Height <= 0 {
		return nil, errors.Errorf("scenario grid %dx%d is empty", s.Grid.Width, s.Grid.Height)
	}
	if len(s.Rules) == 0 {
		return nil, errors.New("scenario has no rules")
	}
	return s, nil
}

// BuildSet assembles the ruleset, mask and aux arrays.
func (s *Scenario) BuildSet() (rule.Set, error) {
	of, err := core.ParseOverflow(s.Overflow)
	if err != nil {
		return rule.Set{}, err
	}
	set := rule.Set{DT: s.DT, Overflow: of, Aux: s.Aux}

	for _, spec := range s.Rules {
		r, err := buildRule(spec)
		if err != nil {
			return rule.Set{}, err
		}
		set.Rules = append(set.Rules, r)
	}

	if s.Mask != nil {
		m := core.NewMask(s.Grid.Width, s.Grid.Height)
		for _, c := range s.Mask.Inactive {
			m.Set(c[0], c[1], false)
		}
		set.Mask = m
	}
	return set, nil
}

func buildRule(spec RuleSpec) (rule.Rule, error) {
	if len(spec.Chain) > 0 {
		inner := make([]rule.Rule, 0, len(spec.Chain))
		for _, cs := range spec.Chain {
			r, err := buildRule(cs)
			if err != nil {
				return rule.Rule{}, err
			}
			inner = append(inner, r)
		}
		name := spec.Name
		if name == "" {
			name = "chain"
		}
		return rule.NewChain(name, inner...), nil
	}
	r, err := rule.New(spec.Name, spec.Params)
	if err != nil {
		return rule.Rule{}, errors.Wrap(err, "build rule")
	}
	return r, nil
}

// BuildInit constructs the initial grid.
func (s *Scenario) BuildInit() (*core.Grid, error) {
	g := core.NewGrid(s.Grid.Width, s.Grid.Height)
	switch s.Init.Kind {
	case "", "empty":
	case "fill":
		g.Fill(s.Init.Value)
	case "random":
		density := s.Init.Density
		if density <= 0 {
			density = 0.5
		}
		core.FillDensity(core.NewRNG(s.Seed).Source(), g.Cells(), density)
	case "cells":
		v := s.Init.Value
		if v == 0 {
			v = 1
		}
		for _, c := range s.Init.Cells {
			x, y := c[0], c[1]
			if x < 0 || x >= g.W || y < 0 || y >= g.H {
				return nil, errors.Errorf("init cell (%d,%d) outside %dx%d grid", x, y, g.W, g.H)
			}
			g.Set(x, y, v)
		}
	default:
		return nil, errors.Errorf("unknown init kind %q", s.Init.Kind)
	}
	return g, nil
}

// BuildSink constructs the configured sink. The returned closer releases any
// file the sink writes to and must run after the driver finalizes it.
func (s *Scenario) BuildSink() (sink.Sink, func() error, error) {
	noop := func() error { return nil }
	switch s.Sink.Kind {
	case "", "memory":
		return sink.NewMemory(), noop, nil
	case "terminal":
		threshold := s.Sink.Threshold
		if threshold == 0 {
			threshold = 0.5
		}
		return sink.NewTerminal(os.Stdout, threshold, true), noop, nil
	case "gif":
		f, err := create(s.Sink.Path, "out.gif")
		if err != nil {
			return nil, nil, err
		}
		delay := s.Sink.Delay
		if delay == 0 {
			delay = 5
		}
		return sink.NewGIF(f, nil, delay), f.Close, nil
	case "recorder":
		f, err := create(s.Sink.Path, "frames.jsonl.zst")
		if err != nil {
			return nil, nil, err
		}
		rec, err := sink.NewRecorder(f)
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return rec, f.Close, nil
	}
	return nil, nil, errors.Errorf("unknown sink kind %q", s.Sink.Kind)
}

func create(path, fallback string) (*os.File, error) {
	if path == "" {
		path = fallback
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	return f, nil
}
