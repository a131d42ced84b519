package usertests

import (
	"errors"
	"fmt"
)

// Registry holds scenarios in registration order. Names are unique: registering a second
// scenario with the same name is an error rather than a replacement.
type Registry struct {
	scenarios []Scenario
	byName    map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// DefaultRegistry contains every scenario in this package.
func DefaultRegistry() *Registry {
	return NewRegistry().MustRegister(CreateUserScenarios()...)
}

func (r *Registry) Register(s Scenario) error {
	if s.Name == "" {
		return errors.New("scenario has no name")
	}
	if s.Generate == nil || s.Expect == nil {
		return fmt.Errorf("scenario %q must have both Generate and Expect", s.Name)
	}
	if _, exists := r.byName[s.Name]; exists {
		return fmt.Errorf("scenario %q is already registered", s.Name)
	}
	r.byName[s.Name] = len(r.scenarios)
	r.scenarios = append(r.scenarios, s)
	return nil
}

// MustRegister registers each scenario and panics on the first error.
func (r *Registry) MustRegister(scenarios ...Scenario) *Registry {
	for _, s := range scenarios {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *Registry) Lookup(name string) (Scenario, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Scenario{}, false
	}
	return r.scenarios[i], true
}

func (r *Registry) Scenarios() []Scenario {
	return append([]Scenario(nil), r.scenarios...)
}
