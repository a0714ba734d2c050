package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremesh/caremesh/core"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		calls []core.ToolCall
		want  DecisionKind
	}{
		{
			name: "text only is a message",
			text: "Hello, how can I help?",
			want: DecisionMessage,
		},
		{
			name:  "domain tool call",
			calls: []core.ToolCall{{ID: "fc1", Name: "record_mood", Arguments: `{"mood":"tired"}`}},
			want:  DecisionToolCalls,
		},
		{
			name:  "lone transfer call is a handoff",
			calls: []core.ToolCall{{ID: "fc2", Name: "transfer_to_agent", Arguments: `{"agent":"MoodRecorder"}`}},
			want:  DecisionHandoff,
		},
		{
			name: "transfer mixed with domain call stays tool calls",
			calls: []core.ToolCall{
				{ID: "fc3", Name: "record_glucose", Arguments: `{"value":185}`},
				{ID: "fc4", Name: "transfer_to_agent", Arguments: `{"agent":"MealPlanner"}`},
			},
			want: DecisionToolCalls,
		},
		{
			name:  "transfer with malformed args stays tool calls",
			calls: []core.ToolCall{{ID: "fc5", Name: "transfer_to_agent", Arguments: `not json`}},
			want:  DecisionToolCalls,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Normalize(tt.text, tt.calls)
			assert.Equal(t, tt.want, d.Kind)
			switch tt.want {
			case DecisionMessage:
				assert.Equal(t, tt.text, d.Message)
			case DecisionToolCalls:
				assert.Len(t, d.ToolCalls, len(tt.calls))
			case DecisionHandoff:
				assert.Equal(t, "MoodRecorder", d.Target)
			}
		})
	}
}

func TestMockDecider(t *testing.T) {
	mock := NewMockDecider(
		NewToolCallDecision(core.ToolCall{ID: "fc1", Name: "verify_identity", Arguments: `{"user_id":7}`}),
		NewMessageDecision("done"),
	)

	first, err := mock.Decide(context.Background(), Request{Messages: []core.Message{core.NewUserMessage("hi, I'm user 7")}})
	require.NoError(t, err)
	assert.Equal(t, DecisionToolCalls, first.Kind)

	second, err := mock.Decide(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "done", second.Message)

	_, err = mock.Decide(context.Background(), Request{})
	assert.Error(t, err)

	assert.Len(t, mock.Requests(), 3)
}
