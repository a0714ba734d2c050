package store

import (
	"fmt"
	"time"
)

// User is a health app user profile. Rows are created only by the seeder;
// the assistant core treats them as read-only.
type User struct {
	ID                  int64     `gorm:"primaryKey"`
	FirstName           string    `gorm:"not null"`
	LastName            string    `gorm:"not null"`
	Email               string    `gorm:"uniqueIndex;not null"`
	City                string    `gorm:"not null"`
	DateOfBirth         time.Time `gorm:"not null"`
	DietaryPreference   string    `gorm:"not null"` // vegetarian, vegan, non-vegetarian
	MedicalConditions   string    `gorm:"not null"` // comma-joined list
	PhysicalLimitations string    `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName implements the gorm table naming convention.
func (User) TableName() string { return "users" }

// FullName returns the user's display name.
func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// GlucoseReading is one CGM reading in mg/dL. Rows are append-only: created
// exclusively by the glucose-collection tool, never updated or deleted. All
// trend queries (latest, rolling averages) source from this single table.
type GlucoseReading struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"index;not null"`
	Value     float64   `gorm:"not null"`
	Timestamp time.Time `gorm:"index;not null"`
}

// TableName implements the gorm table naming convention.
func (GlucoseReading) TableName() string { return "glucose_readings" }

// MoodLog is one wellbeing log entry. The mood label is stored verbatim as
// extracted upstream; no normalization. Append-only.
type MoodLog struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"index;not null"`
	Mood      string    `gorm:"not null"`
	Timestamp time.Time `gorm:"index;not null"`
}

// TableName implements the gorm table naming convention.
func (MoodLog) TableName() string { return "wellbeing_logs" }

// ConversationTurn is one transcript row of a session, persisted for users
// who have completed identity verification.
type ConversationTurn struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"index;not null"`
	SessionID string    `gorm:"index;not null"`
	Role      string    `gorm:"not null"` // user, assistant, system
	Message   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"index;not null"`
	Metadata  string    // optional JSON payload
}

// TableName implements the gorm table naming convention.
func (ConversationTurn) TableName() string { return "conversation_logs" }
