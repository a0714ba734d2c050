package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremesh/caremesh/core"
)

func TestRecordMood_Success(t *testing.T) {
	s := newTestStore(t)
	seedTestUser(t, s, 7)

	record := NewRecordMoodTool(s)
	tc := verifiedToolContext(7, MoodRecorderName)

	result, err := record.Call(tc, map[string]any{"mood": "tired but hopeful"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully recorded your mood as 'tired but hopeful'.", result)

	target, ok := tc.TransferTarget()
	require.True(t, ok)
	assert.Equal(t, CGMCollectorName, target)

	n, err := s.CountMoodLogs(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRecordMood_RequiresVerification(t *testing.T) {
	s := newTestStore(t)

	record := NewRecordMoodTool(s)
	tc := newToolContext(core.NewSessionContext(), MoodRecorderName)

	result, err := record.Call(tc, map[string]any{"mood": "happy"})
	require.NoError(t, err)
	assert.Equal(t, identityRequiredText, result)

	// Precondition failure writes nothing and requests no transfer.
	_, transferRequested := tc.TransferTarget()
	assert.False(t, transferRequested)

	n, err := s.CountMoodLogs(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, n)
}
