// Package userdata loads the activity, assessment, communication and profile
// history a career prediction is computed from.
package userdata

import (
	"context"
	"errors"

	"careerfit-workers/internal/models"
)

var (
	// ErrUserNotFound is returned when no active user has the given id.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidUserID is returned for blank user ids.
	ErrInvalidUserID = errors.New("user id is required")
)

// Fetcher reads one kind of user history per call. Results are newest first.
type Fetcher interface {
	FetchUserActivities(ctx context.Context, userID string, limit int) ([]models.ActivityRecord, error)
	FetchUserTestResults(ctx context.Context, userID string, limit int) ([]models.TestResult, error)
	FetchUserCommunicationSessions(ctx context.Context, userID string, limit int) ([]models.CommunicationSession, error)
	FetchUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// Source yields a user's complete dataset.
type Source interface {
	Load(ctx context.Context, userID string) (*models.UserData, error)
}

// Limits caps how many records of each kind are read.
type Limits struct {
	Activities            int
	TestResults           int
	CommunicationSessions int
}

// DefaultLimits matches the history window the scoring rules were tuned on.
func DefaultLimits() Limits {
	return Limits{Activities: 100, TestResults: 50, CommunicationSessions: 30}
}
