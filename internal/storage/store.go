// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/mmynk/weekgoal/internal/models"
	"github.com/mmynk/weekgoal/internal/money"
	"github.com/mmynk/weekgoal/internal/weekkey"
)

// WeekStore persists weekly goals and daily records.
// Writes are last-write-wins per (user, week) and (user, date).
type WeekStore interface {
	// LoadWeek returns the stored goal and days of a week.
	// Returns nil and no error when nothing was ever saved for the week.
	LoadWeek(ctx context.Context, userID string, week weekkey.Key) (*models.WeekRecord, error)

	// SaveGoal upserts the weekly goal.
	SaveGoal(ctx context.Context, userID string, week weekkey.Key, goal money.Amount) error

	// SaveDay upserts the record of the day falling on date.
	SaveDay(ctx context.Context, userID string, date time.Time, day models.Day) error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail and GetUserByID return nil and no error when the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ProfileStore persists driver profiles, one per user.
type ProfileStore interface {
	// GetProfile returns nil and no error when the user never saved one.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
}

// AccountStore is what the account service reads and writes.
type AccountStore interface {
	UserStore
	ProfileStore
}

// Store defines the full set of storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	WeekStore
	UserStore
	ProfileStore

	// Close releases any resources held by the store.
	Close() error
}
