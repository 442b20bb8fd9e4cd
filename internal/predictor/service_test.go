package predictor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerfit-workers/internal/careerfit"
	apperrors "careerfit-workers/internal/common/errors"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/history"
	"careerfit-workers/internal/models"
	"careerfit-workers/internal/userdata"
)

type stubSource struct {
	data *models.UserData
	err  error
}

func (s stubSource) Load(context.Context, string) (*models.UserData, error) {
	return s.data, s.err
}

type failingArchive struct{}

func (failingArchive) Save(context.Context, history.Snapshot) error {
	return errors.New("cluster unavailable")
}

func (failingArchive) Latest(context.Context, string) (*history.Snapshot, error) {
	return nil, errors.New("cluster unavailable")
}

var fixedNow = time.Date(2024, 6, 1, 9, 30, 15, 123_000_000, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestService_Predict_NewUser(t *testing.T) {
	archive := history.NewMemoryArchive()
	svc := NewService(stubSource{data: &models.UserData{}}, logger.NewTestLogger(t),
		WithArchive(archive), WithClock(fixedClock))

	result, err := svc.Predict(context.Background(), "42", "http")
	require.NoError(t, err)

	require.Len(t, result.Predictions, careerfit.DefaultTopN)
	for _, p := range result.Predictions {
		assert.Equal(t, 60, p.MatchScore, p.Career)
	}
	assert.Equal(t, "2024-06-01T09:30:15.123Z", result.AnalysisDate)
	assert.Equal(t, careerfit.ConfidenceLow, result.Confidence())
	assert.NotEmpty(t, result.SnapshotID)

	snap, err := svc.Latest(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, result.SnapshotID, snap.ID)
	assert.Equal(t, "http", snap.Source)
	assert.Equal(t, result.TopCareer(), snap.TopCareer())
}

func TestService_Predict_ArchiveFailureIsNotFatal(t *testing.T) {
	svc := NewService(stubSource{data: &models.UserData{}}, logger.NewNoOpLogger(),
		WithArchive(failingArchive{}), WithClock(fixedClock))

	result, err := svc.Predict(context.Background(), "42", "worker")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Predictions)
	assert.Empty(t, result.SnapshotID)
}

func TestService_Predict_LoadError(t *testing.T) {
	svc := NewService(stubSource{err: fmt.Errorf("fetch profile: %w", userdata.ErrUserNotFound)}, logger.NewNoOpLogger())

	result, err := svc.Predict(context.Background(), "404", "http")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, userdata.ErrUserNotFound)
}

func TestService_PredictFromData(t *testing.T) {
	major := "Computer Science"
	score := 90.0
	data := models.UserData{
		Activities: []models.ActivityRecord{
			{ActivityType: "coding_practice", ActivityDetails: models.Details{{Key: "language", Value: models.String("python")}}, Score: &score},
		},
		Profile: models.UserProfile{ID: "7", Major: &major},
	}
	svc := NewService(stubSource{}, logger.NewNoOpLogger(), WithClock(fixedClock))

	result := svc.PredictFromData(context.Background(), "7", data, "cli")

	assert.Equal(t, careerfit.PredictCareerPaths(data), result.Predictions)
	assert.Empty(t, result.SnapshotID)
}

func TestService_TopN(t *testing.T) {
	svc := NewService(stubSource{data: &models.UserData{}}, logger.NewNoOpLogger(),
		WithEngine(careerfit.NewEngine(careerfit.WithTopN(3))))

	result, err := svc.Predict(context.Background(), "1", "http")
	require.NoError(t, err)
	assert.Len(t, result.Predictions, 3)
}

func TestService_FetchTimeout(t *testing.T) {
	slow := sourceFunc(func(ctx context.Context, _ string) (*models.UserData, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	svc := NewService(slow, logger.NewNoOpLogger(), WithFetchTimeout(10*time.Millisecond))

	_, err := svc.Predict(context.Background(), "1", "http")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, apperrors.ErrCodeDataFetchTimeout, Classify("1", err).Code)
}

func TestService_LatestWithoutArchive(t *testing.T) {
	svc := NewService(stubSource{}, logger.NewNoOpLogger())
	_, err := svc.Latest(context.Background(), "1")
	assert.ErrorIs(t, err, history.ErrSnapshotNotFound)
}

type sourceFunc func(ctx context.Context, userID string) (*models.UserData, error)

func (f sourceFunc) Load(ctx context.Context, userID string) (*models.UserData, error) {
	return f(ctx, userID)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorCode
	}{
		{"blank id", userdata.ErrInvalidUserID, apperrors.ErrCodeInvalidRequest},
		{"unknown user", fmt.Errorf("fetch profile: %w", userdata.ErrUserNotFound), apperrors.ErrCodeUserNotFound},
		{"timeout", fmt.Errorf("fetch activities: %w", context.DeadlineExceeded), apperrors.ErrCodeDataFetchTimeout},
		{"db failure", errors.New("connection refused"), apperrors.ErrCodeUserDataFetchFailed},
		{"already classified", apperrors.NewPredictionFailedError(errors.New("x")), apperrors.ErrCodePredictionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify("42", tt.err).Code)
		})
	}
}
