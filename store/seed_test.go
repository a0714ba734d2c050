package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, s, func(o *SeedOptions) {
		o.Users = 5
		o.Days = 7
		o.Seed = 42
	}))

	var users int64
	require.NoError(t, s.DB().Model(&User{}).Count(&users).Error)
	assert.Equal(t, int64(5), users)

	// Every user has readings in the window and a plausible value range.
	for id := int64(1); id <= 5; id++ {
		n, err := s.CountGlucoseReadings(ctx, id)
		require.NoError(t, err)
		// 7 days at 3-4 readings per day.
		assert.GreaterOrEqual(t, n, int64(21))
		assert.LessOrEqual(t, n, int64(28))

		latest, err := s.LatestGlucoseReading(ctx, id)
		require.NoError(t, err)
		assert.Greater(t, latest.Value, 30.0)
		assert.Less(t, latest.Value, 330.0)

		user, err := s.FindUserByID(ctx, id)
		require.NoError(t, err)
		assert.NotEmpty(t, user.Email)
		assert.NotEmpty(t, user.MedicalConditions)
	}
}

func TestGlucoseProfileFor(t *testing.T) {
	diabetic := glucoseProfileFor("Type 2 diabetes, Asthma")
	assert.Equal(t, [3]float64{0.6, 0.3, 0.1}, diabetic.weights)

	cardio := glucoseProfileFor("Hypertension")
	assert.Equal(t, [3]float64{0.85, 0.1, 0.05}, cardio.weights)

	healthy := glucoseProfileFor("None")
	assert.Equal(t, [3]float64{0.95, 0.04, 0.01}, healthy.weights)
}
