// Package history keeps past career predictions so students can see how
// their fit changes over time.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"careerfit-workers/internal/careerfit"
)

// ErrSnapshotNotFound is returned when a user has no archived prediction.
var ErrSnapshotNotFound = errors.New("prediction snapshot not found")

// Snapshot is one archived prediction run.
type Snapshot struct {
	ID           string                       `json:"id"`
	UserID       string                       `json:"userId"`
	Source       string                       `json:"source"`
	AnalysisDate time.Time                    `json:"analysisDate"`
	Predictions  []careerfit.CareerPrediction `json:"predictions"`
}

// NewSnapshot stamps a fresh id on a prediction run.
func NewSnapshot(userID, source string, at time.Time, predictions []careerfit.CareerPrediction) Snapshot {
	return Snapshot{
		ID:           uuid.NewString(),
		UserID:       userID,
		Source:       source,
		AnalysisDate: at.UTC(),
		Predictions:  predictions,
	}
}

// TopCareer returns the best ranked career, or "" for an empty snapshot.
func (s Snapshot) TopCareer() string {
	if len(s.Predictions) == 0 {
		return ""
	}
	return s.Predictions[0].Career
}

// Archive stores and retrieves snapshots.
type Archive interface {
	Save(ctx context.Context, snap Snapshot) error
	Latest(ctx context.Context, userID string) (*Snapshot, error)
}
