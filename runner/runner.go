// Package runner drives conversation turns: it feeds the active agent's
// instructions and transcript to the decider, executes requested tool calls,
// applies staged session mutations after each successful call, validates and
// applies handoffs against the registry, and returns the final display text.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/caremesh/caremesh/agent"
	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/logging"
	"github.com/caremesh/caremesh/model"
	"github.com/caremesh/caremesh/store"
	"github.com/caremesh/caremesh/tool"
)

// ErrSessionEnded is returned by Turn after exit has been requested.
var ErrSessionEnded = errors.New("session has ended")

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// MaxModelCalls limits decider calls within a single turn.
	MaxModelCalls int
	// Store enables transcript persistence for verified users when non-nil.
	Store store.Store
	// Logger receives structured orchestration events.
	Logger logging.Logger
}

// Runner coordinates one conversation session: a single active agent drawn
// from the registry, the session context, and the running transcript. Turn
// is serialized; turn N+1 never starts before turn N completes.
type Runner struct {
	registry *agent.Registry
	decider  model.Decider
	session  *core.SessionContext
	active   *agent.Agent
	history  []core.Message

	maxModelCalls int
	store         store.Store
	logger        logging.Logger

	mu sync.Mutex
}

// New constructs a Runner starting at the registry's entry agent with a
// fresh session.
func New(registry *agent.Registry, decider model.Decider, optFns ...func(o *Options)) *Runner {
	opts := Options{
		MaxModelCalls: 8,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{
		registry:      registry,
		decider:       decider,
		session:       core.NewSessionContext(),
		active:        registry.Entry(),
		maxModelCalls: opts.MaxModelCalls,
		store:         opts.Store,
		logger:        opts.Logger,
	}
}

// SessionID returns the session id.
func (r *Runner) SessionID() string { return r.session.ID() }

// ActiveAgent returns the name of the agent currently holding the conversation.
func (r *Runner) ActiveAgent() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active.Name()
}

// Done reports whether the session has ended.
func (r *Runner) Done() bool { return r.session.ExitRequested() }

// Verified reports whether identity verification has completed, and for whom.
func (r *Runner) Verified() (int64, bool) { return r.session.UserID() }

// History returns a copy of the transcript.
func (r *Runner) History() []core.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Message, len(r.history))
	copy(out, r.history)
	return out
}

// Turn processes one user utterance to completion and returns the display
// text. A decider error surfaces to the caller with the session state intact,
// so the next turn can retry.
func (r *Runner) Turn(ctx context.Context, userText string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session.ExitRequested() {
		return "", ErrSessionEnded
	}

	r.append(core.NewUserMessage(userText))
	r.persist(ctx, core.RoleUser, userText)

	for calls := 0; calls < r.maxModelCalls; calls++ {
		instructions, err := r.active.Instruction().Resolve(r.session)
		if err != nil {
			return "", fmt.Errorf("resolve instructions for %s: %w", r.active.Name(), err)
		}

		decision, err := r.decider.Decide(ctx, model.Request{
			Instructions: instructions,
			Messages:     r.history,
			Tools:        r.toolDefinitions(),
		})
		if err != nil {
			return "", fmt.Errorf("decider: %w", err)
		}

		switch decision.Kind {
		case model.DecisionMessage:
			r.append(core.NewAssistantMessage(decision.Message))
			r.persist(ctx, core.RoleAssistant, decision.Message)
			return decision.Message, nil

		case model.DecisionHandoff:
			if !r.applyHandoff(decision.Target) {
				r.append(core.Message{
					Role: core.RoleSystem,
					Text: fmt.Sprintf("Transfer to %s is not allowed from %s. Continue the current task.", decision.Target, r.active.Name()),
				})
			}

		case model.DecisionToolCalls:
			r.executeToolCalls(ctx, decision.ToolCalls)

		default:
			return "", fmt.Errorf("decider returned unknown decision kind %q", decision.Kind)
		}
	}

	return "", fmt.Errorf("turn aborted: model call budget (%d) exhausted", r.maxModelCalls)
}

// executeToolCalls runs a batch of calls issued by the active agent. The tool
// set is resolved against the issuing agent for the whole batch; a staged
// transfer swaps the active agent only after the batch completes.
func (r *Runner) executeToolCalls(ctx context.Context, calls []core.ToolCall) {
	issuer := r.active
	r.append(core.NewToolCallMessage(calls...))

	var pendingTarget string
	for _, call := range calls {
		result, target := r.executeCall(ctx, issuer, call)
		r.append(result)
		if target != "" {
			pendingTarget = target
		}
	}

	if pendingTarget != "" {
		r.applyHandoff(pendingTarget)
	}
}

// executeCall runs a single tool call and returns the transcript entry plus
// the staged transfer target, if any. Staged session mutations are applied
// only after the tool returns without error.
func (r *Runner) executeCall(ctx context.Context, issuer *agent.Agent, call core.ToolCall) (core.Message, string) {
	t, ok := r.resolveTool(issuer, call.Name)
	if !ok {
		r.logger.Warn("runner.tool.unknown", "agent", issuer.Name(), "tool", call.Name)
		return core.NewToolResultMessage(call.ID, call.Name, "", fmt.Errorf("unknown tool %q", call.Name)), ""
	}

	args, err := parseArguments(call.Arguments)
	if err != nil {
		r.logger.Warn("runner.tool.bad_arguments", "tool", call.Name, "error", err.Error())
		return core.NewToolResultMessage(call.ID, call.Name, "", err), ""
	}

	callID := call.ID
	if callID == "" {
		callID = uuid.NewString()
	}
	tc := core.NewToolContext(ctx, r.session, issuer.Name(), callID, r.logger)

	result, err := t.Call(tc, args)
	if err != nil {
		return core.NewToolResultMessage(callID, call.Name, "", err), ""
	}

	tc.InternalApply()

	target, _ := tc.TransferTarget()
	return core.NewToolResultMessage(callID, call.Name, renderResult(result), nil), target
}

// resolveTool looks up a declared tool, falling back to the injected transfer
// tool when the agent has handoff targets.
func (r *Runner) resolveTool(issuer *agent.Agent, name string) (tool.Tool, bool) {
	if t, ok := issuer.Tool(name); ok {
		return t, true
	}
	if name == tool.TransferToolName && len(issuer.Handoffs()) > 0 {
		return tool.NewTransferToAgentTool(issuer.Handoffs()...), true
	}
	return nil, false
}

// applyHandoff validates the target against the active agent's declared set.
// An invalid target is a logged anomaly, dropped without error; nothing ever
// moves the machine backwards to an undeclared agent.
func (r *Runner) applyHandoff(target string) bool {
	from := r.active.Name()
	if target == from {
		return false
	}
	if !r.registry.Allowed(from, target) {
		r.logger.Warn("runner.handoff.rejected", "session_id", r.session.ID(), "from_agent", from, "to_agent", target)
		return false
	}
	next, ok := r.registry.Get(target)
	if !ok {
		r.logger.Warn("runner.handoff.unknown_target", "session_id", r.session.ID(), "from_agent", from, "to_agent", target)
		return false
	}
	r.active = next
	r.logger.Info("runner.handoff", "session_id", r.session.ID(), "from_agent", from, "to_agent", target)
	return true
}

// toolDefinitions declares the active agent's tools to the decider, plus the
// synthetic transfer tool when the agent has handoff targets.
func (r *Runner) toolDefinitions() []model.ToolDefinition {
	tools := r.active.Tools()
	defs := make([]model.ToolDefinition, 0, len(tools)+1)
	for _, t := range tools {
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	if targets := r.active.Handoffs(); len(targets) > 0 {
		transfer := tool.NewTransferToAgentTool(targets...)
		defs = append(defs, model.ToolDefinition{
			Name:        transfer.Name(),
			Description: transfer.Description(),
			Parameters:  transfer.Parameters(),
		})
	}
	return defs
}

func (r *Runner) append(m core.Message) {
	r.history = append(r.history, m)
}

// persist appends a transcript row for verified users. Persistence failures
// are logged and never fail the turn.
func (r *Runner) persist(ctx context.Context, role core.Role, text string) {
	if r.store == nil || text == "" {
		return
	}
	userID, ok := r.session.UserID()
	if !ok {
		return
	}
	turn := &store.ConversationTurn{
		UserID:    userID,
		SessionID: r.session.ID(),
		Role:      string(role),
		Message:   text,
	}
	if err := r.store.AppendConversationTurn(ctx, turn); err != nil {
		r.logger.Warn("runner.transcript.persist_failed", "session_id", r.session.ID(), "error", err.Error())
	}
}

// parseArguments decodes the serialized tool call payload; empty means no
// arguments.
func parseArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("malformed tool arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// renderResult converts a tool's return value to transcript text.
func renderResult(result any) string {
	switch v := result.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	if b, err := json.Marshal(result); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", result)
}
