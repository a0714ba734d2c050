package core

import (
	"context"

	"github.com/caremesh/caremesh/logging"
)

// ToolContext provides a constrained, auditable surface for tool
// implementations invoked by an agent. Reads see the session context plus any
// mutations already staged in this tool call; writes accumulate as staged
// mutations and a transfer request without touching the session until the
// runner applies them.
//
// The runner applies staged mutations only after the tool returns without
// error, so a store failure or a cancelled inference call never leaves a
// partially-applied session context.
type ToolContext struct {
	ctx            context.Context
	session        *SessionContext
	agentName      string
	functionCallID string

	stagedUserID *int64
	stagedExit   bool
	transferTo   *string

	logger logging.Logger
}

// NewToolContext constructs a tool context bound to a session and a unique
// functionCallID.
func NewToolContext(ctx context.Context, session *SessionContext, agentName, functionCallID string, logger logging.Logger) *ToolContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &ToolContext{
		ctx:            ctx,
		session:        session,
		agentName:      agentName,
		functionCallID: functionCallID,
		logger:         logger,
	}
}

// Context returns the cancellation context of the tool invocation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// SessionID returns the session id associated with the tool invocation.
func (tc *ToolContext) SessionID() string { return tc.session.ID() }

// AgentName returns the name of the agent that invoked the tool.
func (tc *ToolContext) AgentName() string { return tc.agentName }

// FunctionCallID returns the function call id correlating the model request
// with this execution.
func (tc *ToolContext) FunctionCallID() string { return tc.functionCallID }

// Logger returns the logger associated with the tool invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.logger }

// UserID returns the verified user id visible to this tool call: a mutation
// staged earlier in the same call wins over the committed session value.
func (tc *ToolContext) UserID() (int64, bool) {
	if tc.stagedUserID != nil {
		return *tc.stagedUserID, true
	}
	return tc.session.UserID()
}

// StageUserID stages the verified user id for application after the tool
// call completes successfully.
func (tc *ToolContext) StageUserID(id int64) {
	tc.stagedUserID = &id
	tc.logger.Debug("tool.stage.user_id", "agent", tc.agentName, "user_id", id, "function_call_id", tc.functionCallID)
}

// ExitRequested reports whether session exit is visible to this tool call,
// staged or committed.
func (tc *ToolContext) ExitRequested() bool {
	return tc.stagedExit || tc.session.ExitRequested()
}

// StageExit stages the session exit request.
func (tc *ToolContext) StageExit() {
	tc.stagedExit = true
	tc.logger.Debug("tool.stage.exit", "agent", tc.agentName, "function_call_id", tc.functionCallID)
}

// TransferToAgent requests a handoff of control to the named agent. The
// runner validates the target against the active agent's declared handoff
// set before acting on it.
func (tc *ToolContext) TransferToAgent(name string) {
	tc.transferTo = &name
	tc.logger.Info("tool.transfer.request", "from_agent", tc.agentName, "to_agent", name, "function_call_id", tc.functionCallID)
}

// TransferTarget returns the requested handoff target, if any.
func (tc *ToolContext) TransferTarget() (string, bool) {
	if tc.transferTo == nil {
		return "", false
	}
	return *tc.transferTo, true
}

// InternalApply commits staged mutations to the session context. Called by
// the runner after the tool call succeeds; tools must not call it.
func (tc *ToolContext) InternalApply() {
	if tc.stagedUserID != nil {
		tc.session.SetUserID(*tc.stagedUserID)
		tc.logger.Debug("tool.apply.user_id", "agent", tc.agentName, "user_id", *tc.stagedUserID)
	}
	if tc.stagedExit {
		tc.session.RequestExit()
		tc.logger.Debug("tool.apply.exit", "agent", tc.agentName)
	}
}
