// Package openai adapts the OpenAI Chat Completions API (including
// function/tool calling) to the model.Decider contract. It converts the
// normalized transcript into the SDK's message format and classifies the
// completion into a structured decision.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/model"
)

// Options configure the OpenAI decider adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Decider wraps the OpenAI Chat Completions API behind model.Decider.
type Decider struct {
	client *openai.Client
	opts   Options
}

var _ model.Decider = (*Decider)(nil)

// NewDecider creates a new OpenAI decider using the official client.
func NewDecider(optFns ...func(o *Options)) *Decider {
	client := openai.NewClient()
	return NewDeciderFromClient(&client, optFns...)
}

// NewDeciderFromClient creates a new OpenAI decider from an existing client.
func NewDeciderFromClient(client *openai.Client, optFns ...func(o *Options)) *Decider {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.2,
		MaxCompletionTokens: 2048,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Decider{client: client, opts: opts}
}

// Decide performs one non-streaming completion and classifies the result.
func (d *Decider) Decide(ctx context.Context, req model.Request) (model.Decision, error) {
	params := d.buildParams(req)

	resp, err := d.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return model.Decision{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Decision{}, fmt.Errorf("openai: no choices returned")
	}

	msg := resp.Choices[0].Message
	calls := make([]core.ToolCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		calls = append(calls, core.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return model.Normalize(msg.Content, calls), nil
}

// buildParams assembles the OpenAI request parameters including tool definitions.
func (d *Decider) buildParams(req model.Request) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req),
		Model:               d.opts.Model,
		Temperature:         openai.Float(d.opts.Temperature),
		MaxCompletionTokens: openai.Int(d.opts.MaxCompletionTokens),
	}
	if len(req.Tools) == 0 {
		return params
	}
	tools := make([]openai.ChatCompletionToolParam, len(req.Tools))
	for i, tdef := range req.Tools {
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        tdef.Name,
				Description: openai.String(tdef.Description),
				Parameters:  tdef.Parameters,
			},
		}
	}
	params.Tools = tools
	return params
}

// buildMessages converts the normalized transcript into OpenAI chat messages.
// The transcript already interleaves tool results directly after the
// assistant turn that requested them, so conversion is sequential.
func buildMessages(req model.Request) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case core.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Text))
		case core.RoleUser:
			messages = append(messages, openai.UserMessage(m.Text))
		case core.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				messages = append(messages, openai.AssistantMessage(m.Text))
				continue
			}
			messages = append(messages, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: convertToolCalls(m.ToolCalls),
				},
			})
		case core.RoleTool:
			if m.ToolResult == nil {
				continue
			}
			messages = append(messages, openai.ToolMessage(toolResultText(m.ToolResult), m.ToolResult.ID))
		default:
			if m.Text != "" {
				messages = append(messages, openai.UserMessage(m.Text))
			}
		}
	}
	return messages
}

func convertToolCalls(calls []core.ToolCall) []openai.ChatCompletionMessageToolCallParam {
	out := make([]openai.ChatCompletionMessageToolCallParam, len(calls))
	for i, c := range calls {
		out[i] = openai.ChatCompletionMessageToolCallParam{
			ID:   c.ID,
			Type: "function",
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      c.Name,
				Arguments: c.Arguments,
			},
		}
	}
	return out
}

func toolResultText(tr *core.ToolResult) string {
	if tr.Error != "" {
		return fmt.Sprintf("error: %s", tr.Error)
	}
	return tr.Content
}

// Info returns metadata describing this OpenAI decider implementation.
func (d *Decider) Info() model.Info {
	return model.Info{Name: d.opts.Model, Provider: "openai"}
}
