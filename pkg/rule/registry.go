package rule

import (
	"fmt"

	"gridca/pkg/core"
)

// Factory constructs a Rule from flag-style key/value configuration.
type Factory struct {
	New    func(cfg map[string]string) (Rule, error)
	Params []core.Parameter
}

var rules = map[string]Factory{}

// Register adds a rule factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f.New == nil {
		return
	}
	rules[name] = f
}

// Factories exposes the registry of available rule factories.
func Factories() map[string]Factory {
	return rules
}

// New builds a registered rule by name.
func New(name string, cfg map[string]string) (Rule, error) {
	f, ok := rules[name]
	if !ok {
		return Rule{}, fmt.Errorf("unknown rule %q", name)
	}
	return f.New(cfg)
}
