package assistant

import (
	"github.com/caremesh/caremesh/agent"
	"github.com/caremesh/caremesh/store"
)

// Canonical agent names. One instance per role; the runner routes handoffs
// by these names.
const (
	IdentityVerifierName = "IdentityVerifier"
	MoodRecorderName     = "MoodRecorder"
	CGMCollectorName     = "CGMCollector"
	MealPlannerName      = "MealPlanner"
)

// NewRegistry wires the four roles into the fixed one-way topology
//
//	IdentityVerifier -> MoodRecorder -> CGMCollector -> MealPlanner
//
// with the identity verifier as entry. The QnA capability is shared by the
// roles that embed it; it is not a handoff target.
func NewRegistry(st store.Store) (*agent.Registry, error) {
	qna := NewHealthQnA(st)
	return agent.NewRegistry(
		IdentityVerifierName,
		NewIdentityVerifier(st),
		NewMoodRecorder(st, qna),
		NewCGMCollector(st, qna),
		NewMealPlanner(st, qna),
	)
}
