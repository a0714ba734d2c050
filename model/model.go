package model

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/tool"
)

// ToolDefinition declaratively exposes a callable function to a decider.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized decider input produced by the runner.
type Request struct {
	Instructions string           `json:"instructions"`
	Messages     []core.Message   `json:"messages"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// DecisionKind discriminates the Decision union.
type DecisionKind string

// Decision kinds.
const (
	// DecisionMessage carries final display text; the turn ends with it.
	DecisionMessage DecisionKind = "message"
	// DecisionToolCalls carries one or more tool invocations to execute.
	DecisionToolCalls DecisionKind = "tool_calls"
	// DecisionHandoff requests transfer of control to a named agent.
	DecisionHandoff DecisionKind = "handoff"
)

// Decision is the structured outcome of one decider step. Exactly one of
// Message, ToolCalls or Target is meaningful, selected by Kind. Downstream
// orchestration branches on Kind instead of parsing response text.
type Decision struct {
	Kind      DecisionKind    `json:"kind"`
	Message   string          `json:"message,omitempty"`
	ToolCalls []core.ToolCall `json:"tool_calls,omitempty"`
	Target    string          `json:"target,omitempty"`
}

// NewMessageDecision builds a final text decision.
func NewMessageDecision(text string) Decision {
	return Decision{Kind: DecisionMessage, Message: text}
}

// NewToolCallDecision builds a tool invocation decision.
func NewToolCallDecision(calls ...core.ToolCall) Decision {
	return Decision{Kind: DecisionToolCalls, ToolCalls: calls}
}

// NewHandoffDecision builds a transfer-of-control decision.
func NewHandoffDecision(target string) Decision {
	return Decision{Kind: DecisionHandoff, Target: target}
}

// Info contains metadata about a decider implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock"
}

// Decider is the minimal interface the runner needs to drive a turn: given
// instructions, transcript and tool declarations, produce one Decision.
type Decider interface {
	Decide(ctx context.Context, req Request) (Decision, error)

	// Info returns information about the decider implementation.
	Info() Info
}

// Normalize classifies raw provider output into a Decision. A response whose
// only tool call is the transfer tool becomes a Handoff; mixed responses stay
// ToolCalls so domain tools run before the staged transfer is applied.
func Normalize(text string, calls []core.ToolCall) Decision {
	if len(calls) == 0 {
		return NewMessageDecision(text)
	}
	if len(calls) == 1 && calls[0].Name == tool.TransferToolName {
		if target := transferTarget(calls[0]); target != "" {
			return NewHandoffDecision(target)
		}
	}
	return NewToolCallDecision(calls...)
}

func transferTarget(call core.ToolCall) string {
	var args struct {
		Agent string `json:"agent"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return ""
	}
	return args.Agent
}

// MockDecider replays a scripted sequence of decisions and records every
// request it saw. Safe for concurrent use.
type MockDecider struct {
	mu       sync.Mutex
	script   []Decision
	requests []Request
}

// NewMockDecider constructs a MockDecider preloaded with decisions served in order.
func NewMockDecider(script ...Decision) *MockDecider {
	return &MockDecider{script: script}
}

// Enqueue appends a decision to the script.
func (m *MockDecider) Enqueue(d Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, d)
}

// Decide pops the next scripted decision. An exhausted script is an error so
// tests fail loudly instead of looping.
func (m *MockDecider) Decide(_ context.Context, req Request) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.script) == 0 {
		return Decision{}, fmt.Errorf("mock decider: script exhausted after %d requests", len(m.requests))
	}
	next := m.script[0]
	m.script = m.script[1:]
	return next, nil
}

// Requests returns a copy of all requests observed so far.
func (m *MockDecider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Info implements Decider.
func (m *MockDecider) Info() Info { return Info{Name: "mock", Provider: "mock"} }
