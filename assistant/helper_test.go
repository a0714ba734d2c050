package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/caremesh/caremesh/core"
	"github.com/caremesh/caremesh/logging"
	"github.com/caremesh/caremesh/store"
)

func newTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	return s
}

func seedTestUser(t *testing.T, s *store.SQLStore, id int64) *store.User {
	t.Helper()
	user := &store.User{
		ID:                  id,
		FirstName:           "Priya",
		LastName:            "Sharma",
		Email:               "priya@example.com",
		City:                "Pune",
		DateOfBirth:         time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC),
		DietaryPreference:   "vegetarian",
		MedicalConditions:   "Type 2 Diabetes, Hypertension",
		PhysicalLimitations: "None",
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func newToolContext(session *core.SessionContext, agentName string) *core.ToolContext {
	return core.NewToolContext(context.Background(), session, agentName, "fc-test", logging.NoOpLogger{})
}

// verifiedToolContext returns a ToolContext whose session has completed
// identity verification for the given user id.
func verifiedToolContext(userID int64, agentName string) *core.ToolContext {
	session := core.NewSessionContext()
	session.SetUserID(userID)
	return newToolContext(session, agentName)
}
