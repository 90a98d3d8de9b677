package database

import (
	"context"
	"fmt"
	"time"

	"github.com/healthmate/healthmate/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// User is the persistence model for a registered account.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string
	LastName     string
	Age          *int
	Gender       string
}

// ChatMessage is one stored chat turn. Session ids are opaque strings so
// anonymous sessions work without a user row.
type ChatMessage struct {
	gorm.Model
	SessionID string `gorm:"index;not null"`
	UserID    *uint  `gorm:"index"`
	Content   string `gorm:"type:text;not null"`
	IsUser    bool
	Timestamp time.Time `gorm:"index"`
}

// HabitLog stores one day's self-reported metrics. The nested sections are
// serialized as JSON columns; a day with no entry for a section stores NULL.
type HabitLog struct {
	gorm.Model
	UserID     uint   `gorm:"index;not null"`
	Date       string `gorm:"index;not null"` // YYYY-MM-DD
	Nutrition  []byte `gorm:"type:jsonb"`
	Sleep      []byte `gorm:"type:jsonb"`
	Exercise   []byte `gorm:"type:jsonb"`
	Medication []byte `gorm:"type:jsonb"`
	Mood       []byte `gorm:"type:jsonb"`
}

// Analysis stores a validated triage result for an authenticated user.
type Analysis struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	SessionID string `gorm:"index"`
	Complaint string `gorm:"type:text;not null"`
	Result    []byte `gorm:"type:jsonb;not null"`
}

// NewPostgresDB opens the connection and migrates the schema.
func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	// TranslateError maps driver errors onto gorm sentinels, e.g. unique
	// violations to gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&User{}, &ChatMessage{}, &HabitLog{}, &Analysis{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}

// Pinger adapts a gorm connection to health checks.
type Pinger struct {
	DB *gorm.DB
}

func (p Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
