package core

import (
	"context"
	"testing"

	"github.com/caremesh/caremesh/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionContext_UserID(t *testing.T) {
	sc := NewSessionContext()

	_, ok := sc.UserID()
	assert.False(t, ok, "fresh session must be unverified")

	sc.SetUserID(0)
	id, ok := sc.UserID()
	assert.True(t, ok, "user 0 must be distinguishable from unverified")
	assert.Equal(t, int64(0), id)

	sc.SetUserID(42)
	id, _ = sc.UserID()
	assert.Equal(t, int64(42), id)
}

func TestSessionContext_ExitIsMonotonic(t *testing.T) {
	sc := NewSessionContext()
	assert.False(t, sc.ExitRequested())

	sc.RequestExit()
	assert.True(t, sc.ExitRequested())

	// A second request must not flip it back.
	sc.RequestExit()
	assert.True(t, sc.ExitRequested())
}

func TestToolContext_StagedMutationsNotAppliedUntilCommit(t *testing.T) {
	sc := NewSessionContext()
	tc := NewToolContext(context.Background(), sc, "IdentityVerifier", "fc1", logging.NoOpLogger{})

	tc.StageUserID(7)
	tc.StageExit()

	// Staged values are visible to the tool itself...
	id, ok := tc.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	// ...but not to the session until applied.
	_, ok = sc.UserID()
	assert.False(t, ok)
	assert.False(t, sc.ExitRequested())

	tc.InternalApply()

	id, ok = sc.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.True(t, sc.ExitRequested())
}

func TestToolContext_TransferTarget(t *testing.T) {
	sc := NewSessionContext()
	tc := NewToolContext(context.Background(), sc, "MoodRecorder", "fc2", logging.NoOpLogger{})

	_, ok := tc.TransferTarget()
	assert.False(t, ok)

	tc.TransferToAgent("CGMCollector")
	target, ok := tc.TransferTarget()
	require.True(t, ok)
	assert.Equal(t, "CGMCollector", target)
}

func TestStoreError_Unwrap(t *testing.T) {
	cause := assert.AnError
	err := NewStoreError("insert glucose reading", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert glucose reading")
}
