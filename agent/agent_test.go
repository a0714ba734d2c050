package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremesh/caremesh/core"
)

func TestNewAgentDefaults(t *testing.T) {
	a := New("IdentityVerifier")
	assert.Equal(t, "IdentityVerifier", a.Name())
	assert.Equal(t, "Agent IdentityVerifier", a.Description())
	assert.Empty(t, a.Handoffs())

	_, ok := a.Tool("verify_identity")
	assert.False(t, ok)
}

func TestInstructionResolve(t *testing.T) {
	static := NewInstructionFromText("You verify user identity.")
	assert.True(t, static.IsStatic())
	text, err := static.Resolve(core.NewSessionContext())
	require.NoError(t, err)
	assert.Equal(t, "You verify user identity.", text)

	dynamic := NewInstructionFromFunc(func(sc *core.SessionContext) (string, error) {
		if _, ok := sc.UserID(); !ok {
			return "The user is not verified yet.", nil
		}
		return "The user is verified.", nil
	})
	assert.False(t, dynamic.IsStatic())
	text, err = dynamic.Resolve(core.NewSessionContext())
	require.NoError(t, err)
	assert.Equal(t, "The user is not verified yet.", text)
}

func TestRegistryValidation(t *testing.T) {
	verifier := New("IdentityVerifier", func(o *Options) { o.Handoffs = []string{"MoodRecorder"} })
	mood := New("MoodRecorder", func(o *Options) { o.Handoffs = []string{"CGMCollector"} })
	cgm := New("CGMCollector", func(o *Options) { o.Handoffs = []string{"MealPlanner"} })
	planner := New("MealPlanner")

	r, err := NewRegistry("IdentityVerifier", verifier, mood, cgm, planner)
	require.NoError(t, err)

	assert.Equal(t, "IdentityVerifier", r.Entry().Name())
	assert.Equal(t, []string{"IdentityVerifier", "MoodRecorder", "CGMCollector", "MealPlanner"}, r.Names())

	assert.True(t, r.Allowed("IdentityVerifier", "MoodRecorder"))
	assert.False(t, r.Allowed("IdentityVerifier", "MealPlanner"))
	assert.False(t, r.Allowed("MealPlanner", "IdentityVerifier"))
	assert.False(t, r.Allowed("Unknown", "MoodRecorder"))

	got, ok := r.Get("CGMCollector")
	require.True(t, ok)
	assert.Equal(t, cgm, got)
}

func TestRegistryRejectsBadTopologies(t *testing.T) {
	t.Run("unknown handoff target", func(t *testing.T) {
		a := New("A", func(o *Options) { o.Handoffs = []string{"Ghost"} })
		_, err := NewRegistry("A", a)
		assert.ErrorContains(t, err, "unknown agent")
	})

	t.Run("self handoff", func(t *testing.T) {
		a := New("A", func(o *Options) { o.Handoffs = []string{"A"} })
		_, err := NewRegistry("A", a)
		assert.ErrorContains(t, err, "itself")
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := NewRegistry("A", New("A"), New("A"))
		assert.ErrorContains(t, err, "duplicate")
	})

	t.Run("unknown entry", func(t *testing.T) {
		_, err := NewRegistry("Missing", New("A"))
		assert.ErrorContains(t, err, "not registered")
	})

	t.Run("empty registry", func(t *testing.T) {
		_, err := NewRegistry("A")
		assert.Error(t, err)
	})
}
