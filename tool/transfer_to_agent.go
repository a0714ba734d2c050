package tool

import (
	"fmt"

	"github.com/caremesh/caremesh/core"
)

// TransferToolName is the reserved name of the handoff request tool. The
// runner injects it into an agent's declared tool set whenever the agent has
// allowed handoff targets.
const TransferToolName = "transfer_to_agent"

// transferToAgentTool requests orchestration handoff to a named agent.
type transferToAgentTool struct {
	targets []string
}

// NewTransferToAgentTool constructs the transfer tool advertising the given
// allowed targets in its description.
func NewTransferToAgentTool(targets ...string) Tool {
	return &transferToAgentTool{targets: targets}
}

func (t *transferToAgentTool) Name() string { return TransferToolName }

func (t *transferToAgentTool) Description() string {
	if len(t.targets) == 0 {
		return "Request transfer of control to another agent by name."
	}
	return fmt.Sprintf("Request transfer of control to another agent by name. Allowed targets: %v.", t.targets)
}

func (t *transferToAgentTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"agent": map[string]any{"type": "string", "description": "Target agent name"},
		},
		"required": []string{"agent"},
	}
}

func (t *transferToAgentTool) Call(tc *core.ToolContext, args map[string]any) (any, error) {
	raw, ok := args["agent"]
	if !ok {
		return nil, fmt.Errorf("missing required field 'agent'")
	}
	agentName, ok := raw.(string)
	if !ok || agentName == "" {
		return nil, fmt.Errorf("field 'agent' must be non-empty string")
	}
	tc.TransferToAgent(agentName)
	return fmt.Sprintf("transfer to %s requested", agentName), nil
}
