// Package tool implements the function calling subsystem that lets agents
// invoke structured capabilities (store reads, writes, side effects) with
// schema validated arguments and consistent error handling.
package tool

import (
	"fmt"

	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/internal/util"
)

// Tool defines a named, schema-typed operation invocable by an agent.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case) and descriptions; the
//     description is shown to the decider to guide argument extraction
//   - Define a minimal JSON schema for parameters
//   - Convert domain failures (missing verification, not-found, store
//     errors, empty data) into explanatory display text rather than errors,
//     so the conversation can react instead of the turn crashing
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does, provided to the decider.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Call executes the tool with validated arguments and the ToolContext.
	Call(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
