// Package store provides the persistence layer: user profiles, glucose
// readings, wellbeing logs and conversation transcripts backed by SQLite
// through gorm.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/caremesh/caremesh/core"
)

// Store is the persistence contract consumed by tools and the runner.
// Implementations must be safe for concurrent use by independent sessions.
type Store interface {
	// FindUserByID loads a user profile. Returns core.ErrNotFound when no
	// row matches.
	FindUserByID(ctx context.Context, id int64) (*User, error)

	// InsertGlucoseReading appends one CGM reading. A zero `at` defaults to
	// the current time.
	InsertGlucoseReading(ctx context.Context, userID int64, value float64, at time.Time) error

	// InsertMoodLog appends one wellbeing log entry. A zero `at` defaults to
	// the current time.
	InsertMoodLog(ctx context.Context, userID int64, mood string, at time.Time) error

	// AverageGlucose computes the mean reading value for the user with
	// timestamps at or after `since`. Returns core.ErrNoData when the window
	// holds no readings.
	AverageGlucose(ctx context.Context, userID int64, since time.Time) (float64, error)

	// LatestGlucoseReading returns the most recent reading for the user, or
	// core.ErrNoData when the user has none.
	LatestGlucoseReading(ctx context.Context, userID int64) (*GlucoseReading, error)

	// AppendConversationTurn persists one transcript row.
	AppendConversationTurn(ctx context.Context, turn *ConversationTurn) error

	// CountGlucoseReadings reports the number of readings stored for a user.
	CountGlucoseReadings(ctx context.Context, userID int64) (int64, error)

	// CountMoodLogs reports the number of wellbeing entries stored for a user.
	CountMoodLogs(ctx context.Context, userID int64) (int64, error)
}

// SQLStore implements Store on a gorm-managed SQLite database.
type SQLStore struct {
	db *gorm.DB

	readingsOnce sync.Once
	readingsErr  error
}

var _ Store = (*SQLStore)(nil)

// Open opens (creating if necessary) the SQLite database at path and migrates
// the base tables. The glucose readings table is ensured lazily on first use
// so deployments that never collect readings carry no empty table.
func Open(path string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, core.NewStoreError("open", err)
	}
	return NewSQLStore(db)
}

// NewSQLStore wraps an existing gorm handle and migrates the base tables.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&User{}, &MoodLog{}, &ConversationTurn{}); err != nil {
		return nil, core.NewStoreError("migrate", err)
	}
	return &SQLStore{db: db}, nil
}

// DB exposes the underlying gorm handle for maintenance commands (seeding).
func (s *SQLStore) DB() *gorm.DB { return s.db }

// ensureReadings idempotently creates the glucose_readings table. Called by
// every reading op so reads that precede the first write see an empty table
// instead of a missing one.
func (s *SQLStore) ensureReadings() error {
	s.readingsOnce.Do(func() {
		s.readingsErr = s.db.AutoMigrate(&GlucoseReading{})
	})
	if s.readingsErr != nil {
		return core.NewStoreError("ensure_readings", s.readingsErr)
	}
	return nil
}

func (s *SQLStore) FindUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, core.NewStoreError("find_user", err)
	}
	return &user, nil
}

func (s *SQLStore) InsertGlucoseReading(ctx context.Context, userID int64, value float64, at time.Time) error {
	if err := s.ensureReadings(); err != nil {
		return err
	}
	if at.IsZero() {
		at = time.Now()
	}
	reading := GlucoseReading{UserID: userID, Value: value, Timestamp: at}
	if err := s.db.WithContext(ctx).Create(&reading).Error; err != nil {
		return core.NewStoreError("insert_reading", err)
	}
	return nil
}

func (s *SQLStore) InsertMoodLog(ctx context.Context, userID int64, mood string, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	entry := MoodLog{UserID: userID, Mood: mood, Timestamp: at}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return core.NewStoreError("insert_mood", err)
	}
	return nil
}

func (s *SQLStore) AverageGlucose(ctx context.Context, userID int64, since time.Time) (float64, error) {
	if err := s.ensureReadings(); err != nil {
		return 0, err
	}
	var avg *float64
	err := s.db.WithContext(ctx).
		Model(&GlucoseReading{}).
		Select("AVG(value)").
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Scan(&avg).Error
	if err != nil {
		return 0, core.NewStoreError("average_glucose", err)
	}
	if avg == nil {
		return 0, core.ErrNoData
	}
	return *avg, nil
}

func (s *SQLStore) LatestGlucoseReading(ctx context.Context, userID int64) (*GlucoseReading, error) {
	if err := s.ensureReadings(); err != nil {
		return nil, err
	}
	var reading GlucoseReading
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrNoData
	}
	if err != nil {
		return nil, core.NewStoreError("latest_reading", err)
	}
	return &reading, nil
}

func (s *SQLStore) AppendConversationTurn(ctx context.Context, turn *ConversationTurn) error {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(turn).Error; err != nil {
		return core.NewStoreError("append_turn", err)
	}
	return nil
}

func (s *SQLStore) CountGlucoseReadings(ctx context.Context, userID int64) (int64, error) {
	if err := s.ensureReadings(); err != nil {
		return 0, err
	}
	var n int64
	err := s.db.WithContext(ctx).
		Model(&GlucoseReading{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return 0, core.NewStoreError("count_readings", err)
	}
	return n, nil
}

func (s *SQLStore) CountMoodLogs(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&MoodLog{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return 0, core.NewStoreError("count_moods", err)
	}
	return n, nil
}

// CreateUser inserts a profile row. Used by the seeder and tests only.
func (s *SQLStore) CreateUser(ctx context.Context, user *User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return core.NewStoreError("create_user", err)
	}
	return nil
}
