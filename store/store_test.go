package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremesh/caremesh/core"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	return s
}

func seedUser(t *testing.T, s *SQLStore, id int64) *User {
	t.Helper()
	user := &User{
		ID:                  id,
		FirstName:           "Ada",
		LastName:            "Lovelace",
		Email:               "ada@example.com",
		City:                "London",
		DateOfBirth:         time.Date(1985, 12, 10, 0, 0, 0, 0, time.UTC),
		DietaryPreference:   "vegetarian",
		MedicalConditions:   "Type 2 Diabetes",
		PhysicalLimitations: "None",
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func TestFindUserByID(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, 7)

	user, err := s.FindUserByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.FullName())
	assert.Equal(t, "vegetarian", user.DietaryPreference)

	_, err = s.FindUserByID(context.Background(), 9999)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestInsertAndLatestGlucoseReading(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Reads before any write see an empty table, not a missing one.
	_, err := s.LatestGlucoseReading(ctx, 1)
	assert.ErrorIs(t, err, core.ErrNoData)

	now := time.Now()
	require.NoError(t, s.InsertGlucoseReading(ctx, 1, 110, now.Add(-2*time.Hour)))
	require.NoError(t, s.InsertGlucoseReading(ctx, 1, 185, now))
	require.NoError(t, s.InsertGlucoseReading(ctx, 2, 95, now))

	latest, err := s.LatestGlucoseReading(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 185.0, latest.Value)

	n, err := s.CountGlucoseReadings(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestAverageGlucoseWindows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.InsertGlucoseReading(ctx, 1, 100, now.Add(-48*time.Hour)))
	require.NoError(t, s.InsertGlucoseReading(ctx, 1, 200, now.Add(-5*24*time.Hour)))
	require.NoError(t, s.InsertGlucoseReading(ctx, 1, 300, now.Add(-30*24*time.Hour)))

	avg3, err := s.AverageGlucose(ctx, 1, now.Add(-3*24*time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, avg3, 0.001)

	avg7, err := s.AverageGlucose(ctx, 1, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 150.0, avg7, 0.001)

	// No rows in the window for another user.
	_, err = s.AverageGlucose(ctx, 2, now.Add(-7*24*time.Hour))
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestInsertMoodLog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertMoodLog(ctx, 3, "tired but hopeful", time.Time{}))
	require.NoError(t, s.InsertMoodLog(ctx, 3, "energetic", time.Time{}))

	n, err := s.CountMoodLogs(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var entry MoodLog
	require.NoError(t, s.DB().Where("user_id = ?", 3).Order("id").First(&entry).Error)
	// The label is stored verbatim.
	assert.Equal(t, "tired but hopeful", entry.Mood)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestAppendConversationTurn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	turn := &ConversationTurn{
		UserID:    7,
		SessionID: "sess-1",
		Role:      "user",
		Message:   "my sugar was 185 today",
	}
	require.NoError(t, s.AppendConversationTurn(ctx, turn))
	assert.False(t, turn.Timestamp.IsZero())

	var count int64
	require.NoError(t, s.DB().Model(&ConversationTurn{}).Where("session_id = ?", "sess-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
