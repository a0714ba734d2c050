// Package anthropic adapts the Anthropic Messages API (including tool use) to
// the model.Decider contract.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/model"
)

// Options configures the Anthropic decider adapter (model id, temperature,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Decider wraps the Anthropic Messages API behind model.Decider.
type Decider struct {
	client *anthropic.Client
	opts   Options
}

var _ model.Decider = (*Decider)(nil)

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.2,
		MaxTokens:   2048,
	}
}

// NewDecider creates a new Anthropic decider using the official client.
func NewDecider(optFns ...func(o *Options)) *Decider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Decider{client: &client, opts: opts}
}

// NewDeciderFromClient creates a new Anthropic decider from an existing client.
func NewDeciderFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Decider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Decider{client: client, opts: opts}
}

// Decide performs one Messages API call and classifies the result.
func (d *Decider) Decide(ctx context.Context, req model.Request) (model.Decision, error) {
	params := anthropic.MessageNewParams{
		Model:       d.opts.Model,
		Messages:    buildMessages(req.Messages),
		MaxTokens:   d.opts.MaxTokens,
		Temperature: anthropic.Float(d.opts.Temperature),
	}
	if req.Instructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.Instructions}}
	}
	if len(req.Tools) > 0 {
		params.Tools = buildTools(req.Tools)
	}

	resp, err := d.client.Messages.New(ctx, params)
	if err != nil {
		return model.Decision{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var text string
	var calls []core.ToolCall
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			text += block.AsText().Text
		case "tool_use":
			toolBlock := block.AsToolUse()
			args := ""
			if toolBlock.Input != nil {
				if argsBytes, err := json.Marshal(toolBlock.Input); err == nil {
					args = string(argsBytes)
				}
			}
			calls = append(calls, core.ToolCall{
				ID:        toolBlock.ID,
				Name:      toolBlock.Name,
				Arguments: args,
			})
		}
	}
	return model.Normalize(text, calls), nil
}

// buildMessages converts the normalized transcript to Anthropic message format.
// System entries are handled separately; tool results become tool_result
// blocks inside user messages, which is the shape the API expects.
func buildMessages(transcript []core.Message) []anthropic.MessageParam {
	var messages []anthropic.MessageParam
	for _, m := range transcript {
		switch m.Role {
		case core.RoleSystem:
			continue
		case core.RoleUser:
			if m.Text != "" {
				messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
			}
		case core.RoleAssistant:
			content := buildAssistantContent(m)
			if len(content) > 0 {
				messages = append(messages, anthropic.NewAssistantMessage(content...))
			}
		case core.RoleTool:
			if m.ToolResult == nil {
				continue
			}
			isError := m.ToolResult.Error != ""
			body := m.ToolResult.Content
			if isError {
				body = m.ToolResult.Error
			}
			messages = append(messages, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(m.ToolResult.ID, body, isError),
			))
		default:
			if m.Text != "" {
				messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
			}
		}
	}
	return messages
}

func buildAssistantContent(m core.Message) []anthropic.ContentBlockParamUnion {
	var content []anthropic.ContentBlockParamUnion
	if m.Text != "" {
		content = append(content, anthropic.NewTextBlock(m.Text))
	}
	for _, call := range m.ToolCalls {
		var input any
		if call.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Arguments), &input); err != nil {
				input = call.Arguments // fallback to raw string
			}
		}
		content = append(content, anthropic.NewToolUseBlock(call.ID, input, call.Name))
	}
	return content
}

// buildTools converts tool definitions to Anthropic tool format.
func buildTools(tools []model.ToolDefinition) []anthropic.ToolUnionParam {
	anthropicTools := make([]anthropic.ToolUnionParam, len(tools))
	for i, t := range tools {
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}
		if t.Parameters != nil {
			if properties, exists := t.Parameters["properties"]; exists {
				inputSchema.Properties = properties
			}
			if required, exists := t.Parameters["required"]; exists {
				inputSchema.Required = requiredStrings(required)
			}
		}
		anthropicTools[i] = anthropic.ToolUnionParamOfTool(inputSchema, t.Name)
	}
	return anthropicTools
}

func requiredStrings(required any) []string {
	switch v := required.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Info returns metadata describing this Anthropic decider implementation.
func (d *Decider) Info() model.Info {
	return model.Info{Name: string(d.opts.Model), Provider: "anthropic"}
}
