package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/internal/util"
	"github.com/caremesh/caremesh/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToolContext(callID string) *core.ToolContext {
	return core.NewToolContext(context.Background(), core.NewSessionContext(), "TestAgent", callID, logging.NoOpLogger{})
}

// -------------------- Validation Tests --------------------

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// Use []any to mirror a JSON decoded schema shape
		"required": []any{"x"},
	}

	// Success
	err := util.ValidateParameters(map[string]any{"x": 5}, schema)
	assert.NoError(t, err)

	// Missing required
	err = util.ValidateParameters(map[string]any{}, schema)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Equal(t, "x", vErr.Field)
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	// Wrong type
	err = util.ValidateParameters(map[string]any{"x": "not-int"}, schema)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Contains(t, vErr.Message, "expected type integer")
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	// JSON numbers arrive as float64; whole values pass integer checks
	err = util.ValidateParameters(map[string]any{"x": 5.0}, schema)
	assert.NoError(t, err)
}

// -------------------- FunctionTool Tests --------------------

func TestFunctionTool_Success(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value": map[string]any{"type": "number"},
		},
		"required": []string{"value"},
	}

	doubler := NewFunctionTool("double", "Double a number", params, func(_ *core.ToolContext, args map[string]any) (any, error) {
		return args["value"].(float64) * 2, nil
	})

	result, err := doubler.Call(testToolContext("fc1"), map[string]any{"value": 3.0})
	assert.NoError(t, err)
	assert.Equal(t, 6.0, result)
}

func TestFunctionTool_ValidationError(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value": map[string]any{"type": "number"},
		},
		"required": []string{"value"},
	}
	tTool := NewFunctionTool("test", "Test", params, func(_ *core.ToolContext, _ map[string]any) (any, error) {
		return 0, nil
	})

	_, err := tTool.Call(testToolContext("fc2"), map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestFunctionTool_ExecutionError(t *testing.T) {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	failing := NewFunctionTool("boom", "Always fails", params, func(_ *core.ToolContext, _ map[string]any) (any, error) {
		return nil, errors.New("underlying failure")
	})

	_, err := failing.Call(testToolContext("fc3"), map[string]any{})
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Equal(t, "boom", toolErr.Tool)
}

func TestFunctionTool_CustomToolErrorPreserved(t *testing.T) {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	custom := NewFunctionTool("custom", "Returns custom code", params, func(_ *core.ToolContext, _ map[string]any) (any, error) {
		return nil, NewToolError("custom", "domain refused", "PRECONDITION")
	})

	_, err := custom.Call(testToolContext("fc4"), map[string]any{})
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, "PRECONDITION", toolErr.Code)
}

// -------------------- Transfer Tool Tests --------------------

func TestTransferToAgentTool(t *testing.T) {
	transfer := NewTransferToAgentTool("MoodRecorder")
	tc := testToolContext("fc5")

	_, err := transfer.Call(tc, map[string]any{"agent": "MoodRecorder"})
	require.NoError(t, err)

	target, ok := tc.TransferTarget()
	require.True(t, ok)
	assert.Equal(t, "MoodRecorder", target)

	_, err = transfer.Call(testToolContext("fc6"), map[string]any{})
	assert.Error(t, err)
}
