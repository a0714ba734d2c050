package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryTopology(t *testing.T) {
	s := newTestStore(t)

	r, err := NewRegistry(s)
	require.NoError(t, err)

	assert.Equal(t, IdentityVerifierName, r.Entry().Name())
	assert.Equal(t,
		[]string{IdentityVerifierName, MoodRecorderName, CGMCollectorName, MealPlannerName},
		r.Names(),
	)

	// One-way chain, no return edges, meal planner terminal.
	assert.True(t, r.Allowed(IdentityVerifierName, MoodRecorderName))
	assert.True(t, r.Allowed(MoodRecorderName, CGMCollectorName))
	assert.True(t, r.Allowed(CGMCollectorName, MealPlannerName))

	assert.False(t, r.Allowed(MoodRecorderName, IdentityVerifierName))
	assert.False(t, r.Allowed(CGMCollectorName, MoodRecorderName))
	assert.False(t, r.Allowed(MealPlannerName, IdentityVerifierName))
	assert.False(t, r.Allowed(IdentityVerifierName, MealPlannerName))

	planner, ok := r.Get(MealPlannerName)
	require.True(t, ok)
	assert.Empty(t, planner.Handoffs())

	// Role tool sets.
	verifier, _ := r.Get(IdentityVerifierName)
	_, ok = verifier.Tool("verify_identity")
	assert.True(t, ok)

	_, ok = planner.Tool("generate_meal_plan")
	assert.True(t, ok)
	_, ok = planner.Tool("answer_health_question")
	assert.True(t, ok)
}
