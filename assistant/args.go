package assistant

import (
	"fmt"
	"math"

	"github.com/caremesh/caremesh/core"
)

// Display text returned by tools whose precondition (a verified user) is not met.
const identityRequiredText = "Error: User ID is not available. Please verify your identity first."

// requireUserID returns the verified user id or false when the session has
// not completed identity verification.
func requireUserID(tc *core.ToolContext) (int64, bool) {
	return tc.UserID()
}

// argString extracts a string argument. Schema validation runs first, so a
// failure here indicates a schema/tool mismatch, not bad user input.
func argString(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string", key)
	}
	return s, nil
}

// argFloat extracts a numeric argument. JSON numbers decode as float64;
// native ints are tolerated for hand-constructed argument maps in tests.
func argFloat(args map[string]any, key string) (float64, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("argument %q is not a number", key)
}

// argInt64 extracts an integer argument, rejecting fractional values.
func argInt64(args map[string]any, key string) (int64, error) {
	f, err := argFloat(args, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("argument %q is not an integer", key)
	}
	return int64(f), nil
}
