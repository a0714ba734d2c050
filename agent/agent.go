// Package agent defines the conversational role abstraction: an immutable
// bundle of identity, instructions, tools and allowed handoff targets, plus
// the registry that fixes the orchestration topology at startup.
package agent

import (
	"fmt"

	"github.com/caremesh/caremesh/tool"
)

// Agent is one conversational role. Instances are immutable after
// construction and shared by all sessions; per-session state lives in the
// session context, never on the agent.
type Agent struct {
	name        string
	description string
	instruction Instruction
	tools       []tool.Tool
	handoffs    []string
}

// Options configure agent construction.
type Options struct {
	Description string
	Instruction Instruction
	Tools       []tool.Tool
	// Handoffs names the agents this agent may transfer control to. An empty
	// set makes the agent terminal for handoff purposes.
	Handoffs []string
}

// New constructs an Agent.
func New(name string, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Description: fmt.Sprintf("Agent %s", name),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Agent{
		name:        name,
		description: opts.Description,
		instruction: opts.Instruction,
		tools:       opts.Tools,
		handoffs:    opts.Handoffs,
	}
}

// Name returns the agent's unique name.
func (a *Agent) Name() string { return a.name }

// Description returns a short description of the agent's purpose.
func (a *Agent) Description() string { return a.description }

// Instruction returns the agent's instruction source.
func (a *Agent) Instruction() Instruction { return a.instruction }

// Tools returns the agent's declared tool set.
func (a *Agent) Tools() []tool.Tool { return a.tools }

// Tool looks up a declared tool by name.
func (a *Agent) Tool(name string) (tool.Tool, bool) {
	for _, t := range a.tools {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Handoffs returns the allowed transfer targets.
func (a *Agent) Handoffs() []string { return a.handoffs }

// CanHandoffTo reports whether target is in the agent's allowed handoff set.
func (a *Agent) CanHandoffTo(target string) bool {
	for _, h := range a.handoffs {
		if h == target {
			return true
		}
	}
	return false
}
