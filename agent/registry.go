package agent

import "fmt"

// Registry holds the fixed agent topology of an assistant: one canonical
// instance per role and the entry agent every new session starts with. The
// handoff graph is validated once at construction; at runtime the registry
// only answers lookups, so it is safe for concurrent use.
type Registry struct {
	agents map[string]*Agent
	order  []string
	entry  string
}

// NewRegistry builds a registry from the given agents. It rejects duplicate
// names, an unknown entry agent and handoff targets that name no registered
// agent, so misconfigured topologies fail at startup instead of mid-session.
func NewRegistry(entry string, agents ...*Agent) (*Registry, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("registry requires at least one agent")
	}

	r := &Registry{agents: make(map[string]*Agent, len(agents)), entry: entry}
	for _, a := range agents {
		if _, exists := r.agents[a.Name()]; exists {
			return nil, fmt.Errorf("duplicate agent name %q", a.Name())
		}
		r.agents[a.Name()] = a
		r.order = append(r.order, a.Name())
	}

	if _, ok := r.agents[entry]; !ok {
		return nil, fmt.Errorf("entry agent %q is not registered", entry)
	}

	for _, a := range agents {
		for _, target := range a.Handoffs() {
			if target == a.Name() {
				return nil, fmt.Errorf("agent %q declares a handoff to itself", a.Name())
			}
			if _, ok := r.agents[target]; !ok {
				return nil, fmt.Errorf("agent %q declares handoff to unknown agent %q", a.Name(), target)
			}
		}
	}
	return r, nil
}

// Get looks up a registered agent by name.
func (r *Registry) Get(name string) (*Agent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// Entry returns the agent every new session starts with.
func (r *Registry) Entry() *Agent { return r.agents[r.entry] }

// Allowed reports whether the registered agent `from` may hand off to `to`.
func (r *Registry) Allowed(from, to string) bool {
	a, ok := r.agents[from]
	if !ok {
		return false
	}
	return a.CanHandoffTo(to)
}

// Names returns agent names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
