package store

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/caremesh/caremesh/core"
)

// Seeding vocabularies mirroring the shipped sample data set.
var (
	seedDietaryPrefs = []string{"vegetarian", "vegan", "non-vegetarian"}

	seedMedicalConditions = []string{
		"Type 2 diabetes",
		"Hypertension",
		"High cholesterol",
		"Heart disease",
		"Asthma",
		"Arthritis",
		"None",
	}

	seedPhysicalLimitations = []string{
		"Mobility issues",
		"Visual impairment",
		"Hearing impairment",
		"Limited dexterity",
		"None",
	}

	seedMoods = []string{"happy", "sad", "tired", "energetic", "stressed", "calm", "anxious", "excited"}
)

// glucoseProfile drives condition-weighted synthetic readings: value ranges
// per band plus the probability of drawing each band.
type glucoseProfile struct {
	normal  [2]float64
	high    [2]float64
	low     [2]float64
	weights [3]float64 // normal, high, low
}

// glucoseProfileFor picks a reading profile from the user's conditions.
// Diabetics swing wide, cardiovascular conditions run slightly elevated,
// healthy users stay tight.
func glucoseProfileFor(medicalConditions string) glucoseProfile {
	conditions := strings.ToLower(medicalConditions)
	switch {
	case strings.Contains(conditions, "type 2 diabetes"):
		return glucoseProfile{
			normal:  [2]float64{70, 180},
			high:    [2]float64{181, 300},
			low:     [2]float64{40, 69},
			weights: [3]float64{0.6, 0.3, 0.1},
		}
	case strings.Contains(conditions, "hypertension"),
		strings.Contains(conditions, "high cholesterol"),
		strings.Contains(conditions, "heart disease"):
		return glucoseProfile{
			normal:  [2]float64{80, 150},
			high:    [2]float64{151, 220},
			low:     [2]float64{60, 79},
			weights: [3]float64{0.85, 0.1, 0.05},
		}
	default:
		return glucoseProfile{
			normal:  [2]float64{70, 120},
			high:    [2]float64{121, 140},
			low:     [2]float64{65, 69},
			weights: [3]float64{0.95, 0.04, 0.01},
		}
	}
}

func (p glucoseProfile) draw(rng *rand.Rand) float64 {
	r := rng.Float64()
	var bounds [2]float64
	switch {
	case r < p.weights[0]:
		bounds = p.normal
	case r < p.weights[0]+p.weights[1]:
		bounds = p.high
	default:
		bounds = p.low
	}
	value := bounds[0] + rng.Float64()*(bounds[1]-bounds[0])
	// ±5% measurement noise.
	value *= 0.95 + rng.Float64()*0.1
	return float64(int(value*10)) / 10
}

// SeedOptions tune synthetic data generation.
type SeedOptions struct {
	Users int // number of users
	Days  int // history depth for readings and mood logs
	Seed  int64
}

// Seed populates the database with synthetic users plus condition-weighted
// glucose readings and mood logs covering the configured history window.
func Seed(ctx context.Context, s *SQLStore, optFns ...func(o *SeedOptions)) error {
	opts := SeedOptions{
		Users: 100,
		Days:  30,
		Seed:  time.Now().UnixNano(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	faker := gofakeit.New(uint64(opts.Seed))
	now := time.Now().UTC()

	if err := s.ensureReadings(); err != nil {
		return err
	}

	for i := 0; i < opts.Users; i++ {
		first := faker.FirstName()
		last := faker.LastName()
		age := 18 + rng.Intn(48)

		user := &User{
			FirstName:           first,
			LastName:            last,
			Email:               fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			City:                faker.City(),
			DateOfBirth:         now.AddDate(-age, 0, -rng.Intn(365)),
			DietaryPreference:   seedDietaryPrefs[rng.Intn(len(seedDietaryPrefs))],
			MedicalConditions:   sampleConditions(rng),
			PhysicalLimitations: seedPhysicalLimitations[rng.Intn(len(seedPhysicalLimitations))],
		}
		if err := s.CreateUser(ctx, user); err != nil {
			return err
		}

		readings := seedReadings(rng, user, now, opts.Days)
		if len(readings) > 0 {
			if err := s.db.WithContext(ctx).CreateInBatches(readings, 200).Error; err != nil {
				return core.NewStoreError("seed_readings", err)
			}
		}

		logs := seedMoodLogs(rng, user, now, opts.Days)
		if len(logs) > 0 {
			if err := s.db.WithContext(ctx).CreateInBatches(logs, 200).Error; err != nil {
				return core.NewStoreError("seed_moods", err)
			}
		}
	}
	return nil
}

// sampleConditions joins one or two distinct conditions.
func sampleConditions(rng *rand.Rand) string {
	picks := rng.Perm(len(seedMedicalConditions))[:1+rng.Intn(2)]
	parts := make([]string, len(picks))
	for i, p := range picks {
		parts[i] = seedMedicalConditions[p]
	}
	return strings.Join(parts, ", ")
}

// seedReadings generates 3-4 readings per day at mealtimes and bedtime.
func seedReadings(rng *rand.Rand, user *User, now time.Time, days int) []GlucoseReading {
	profile := glucoseProfileFor(user.MedicalConditions)
	var readings []GlucoseReading
	for day := 0; day < days; day++ {
		hours := []int{8, 12, 16, 20}
		if rng.Float64() < 0.3 {
			hours = []int{8, 12, 20}
		}
		for _, hour := range hours {
			at := now.AddDate(0, 0, -day)
			at = time.Date(at.Year(), at.Month(), at.Day(), hour, rng.Intn(60), 0, 0, time.UTC)
			readings = append(readings, GlucoseReading{
				UserID:    user.ID,
				Value:     profile.draw(rng),
				Timestamp: at,
			})
		}
	}
	return readings
}

// seedMoodLogs generates a mood entry on roughly 70% of days.
func seedMoodLogs(rng *rand.Rand, user *User, now time.Time, days int) []MoodLog {
	var logs []MoodLog
	for day := 0; day < days; day++ {
		if rng.Float64() >= 0.7 {
			continue
		}
		at := now.AddDate(0, 0, -day)
		at = time.Date(at.Year(), at.Month(), at.Day(), 8+rng.Intn(13), rng.Intn(60), 0, 0, time.UTC)
		logs = append(logs, MoodLog{
			UserID:    user.ID,
			Mood:      seedMoods[rng.Intn(len(seedMoods))],
			Timestamp: at,
		})
	}
	return logs
}
