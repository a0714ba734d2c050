package core

import "time"

// Role identifies the author of a transcript message.
type Role string

// Transcript roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall describes a tool invocation requested by a decider. Unified across
// providers so downstream logic does not need per-provider branching.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"` // serialized JSON payload
}

// ToolResult captures the outcome of a previously requested tool call.
type ToolResult struct {
	ID      string `json:"id,omitempty"` // matches the originating ToolCall ID
	Name    string `json:"name"`
	Content string `json:"content,omitempty"` // display text returned by the tool
	Error   string `json:"error,omitempty"`   // populated on failure
}

// Message is one entry of the conversation transcript exchanged with a
// decider. Exactly one of Text, ToolCalls or ToolResult is meaningful
// depending on Role.
type Message struct {
	Role       Role        `json:"role"`
	Text       string      `json:"text,omitempty"`
	ToolCalls  []ToolCall  `json:"tool_calls,omitempty"`
	ToolResult *ToolResult `json:"tool_result,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// NewUserMessage creates a user-authored text message.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text, Timestamp: time.Now().UTC()}
}

// NewAssistantMessage creates an assistant text message.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Text: text, Timestamp: time.Now().UTC()}
}

// NewToolCallMessage records an assistant turn that requested tool calls.
func NewToolCallMessage(calls ...ToolCall) Message {
	return Message{Role: RoleAssistant, ToolCalls: calls, Timestamp: time.Now().UTC()}
}

// NewToolResultMessage records the completion result (or error) of a tool call.
func NewToolResultMessage(id, name, content string, err error) Message {
	tr := &ToolResult{ID: id, Name: name, Content: content}
	if err != nil {
		tr.Error = err.Error()
	}
	return Message{Role: RoleTool, ToolResult: tr, Timestamp: time.Now().UTC()}
}
