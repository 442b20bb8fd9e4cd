// Package predictor ties user data loading, the scoring engine and the
// prediction history together for every entrypoint.
package predictor

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"careerfit-workers/internal/careerfit"
	apperrors "careerfit-workers/internal/common/errors"
	"careerfit-workers/internal/common/logger"
	"careerfit-workers/internal/common/metrics"
	"careerfit-workers/internal/common/observability"
	"careerfit-workers/internal/history"
	"careerfit-workers/internal/models"
	"careerfit-workers/internal/userdata"
)

// AnalysisDateLayout renders timestamps with millisecond precision in UTC.
const AnalysisDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Result is what every prediction entrypoint returns.
type Result struct {
	Predictions  []careerfit.CareerPrediction `json:"predictions"`
	AnalysisDate string                       `json:"analysisDate"`
	SnapshotID   string                       `json:"snapshotId,omitempty"`
}

// TopCareer is the best ranked career or "".
func (r *Result) TopCareer() string {
	if len(r.Predictions) == 0 {
		return ""
	}
	return r.Predictions[0].Career
}

// Confidence is shared by all predictions of one run.
func (r *Result) Confidence() careerfit.Confidence {
	if len(r.Predictions) == 0 {
		return careerfit.ConfidenceLow
	}
	return r.Predictions[0].Confidence
}

type Service struct {
	source       userdata.Source
	archive      history.Archive
	engine       *careerfit.Engine
	obs          *observability.Observability
	logger       logger.Logger
	fetchTimeout time.Duration
	now          func() time.Time
}

type Option func(*Service)

// WithArchive enables snapshot archiving after each prediction.
func WithArchive(a history.Archive) Option {
	return func(s *Service) { s.archive = a }
}

func WithEngine(e *careerfit.Engine) Option {
	return func(s *Service) { s.engine = e }
}

func WithObservability(o *observability.Observability) Option {
	return func(s *Service) { s.obs = o }
}

// WithFetchTimeout bounds user data loading. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) { s.fetchTimeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(source userdata.Source, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		source: source,
		engine: careerfit.NewEngine(),
		obs:    observability.NewNoop(),
		logger: log.WithFields(map[string]interface{}{"component": "predictor"}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine exposes the scoring engine, mainly for catalog listings.
func (s *Service) Engine() *careerfit.Engine { return s.engine }

// Predict loads the user's history and ranks careers for it.
func (s *Service) Predict(ctx context.Context, userID, source string) (*Result, error) {
	ctx, span := s.obs.StartSpan(ctx, "careerfit.predict",
		attribute.String("user.id", userID),
		attribute.String("source", source),
	)
	defer span.End()
	start := time.Now()

	data, err := s.load(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load user data")
		s.observe(source, "error", start)
		return nil, err
	}

	return s.finish(ctx, userID, *data, source, start), nil
}

// PredictFromData ranks careers for a dataset supplied by the caller.
func (s *Service) PredictFromData(ctx context.Context, userID string, data models.UserData, source string) *Result {
	ctx, span := s.obs.StartSpan(ctx, "careerfit.predict_inline",
		attribute.String("user.id", userID),
		attribute.String("source", source),
	)
	defer span.End()

	return s.finish(ctx, userID, data, source, time.Now())
}

// Latest returns the newest archived prediction for a user.
func (s *Service) Latest(ctx context.Context, userID string) (*history.Snapshot, error) {
	if s.archive == nil {
		return nil, history.ErrSnapshotNotFound
	}
	return s.archive.Latest(ctx, userID)
}

func (s *Service) load(ctx context.Context, userID string) (*models.UserData, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	return s.source.Load(ctx, userID)
}

func (s *Service) finish(ctx context.Context, userID string, data models.UserData, source string, start time.Time) *Result {
	predictions := s.engine.Predict(data)
	at := s.now().UTC()

	result := &Result{
		Predictions:  predictions,
		AnalysisDate: at.Format(AnalysisDateLayout),
	}

	if s.archive != nil {
		snap := history.NewSnapshot(userID, source, at, predictions)
		if err := s.archive.Save(ctx, snap); err != nil {
			s.logger.Warn("failed to archive prediction", map[string]interface{}{
				"userId": userID,
				"error":  apperrors.NewHistoryArchiveFailedError(err).Details,
			})
		} else {
			result.SnapshotID = snap.ID
		}
	}

	s.observe(source, "success", start)
	if top := result.TopCareer(); top != "" {
		metrics.TopMatchScore.Observe(float64(predictions[0].MatchScore))
		s.obs.RecordTopCareer(ctx, top)
	}

	s.logger.Info("career prediction complete", map[string]interface{}{
		"userId":          userID,
		"source":          source,
		"predictionCount": len(predictions),
		"topCareer":       result.TopCareer(),
		"topScore":        topScore(predictions),
		"confidence":      string(result.Confidence()),
	})
	return result
}

func (s *Service) observe(source, outcome string, start time.Time) {
	metrics.PredictionsTotal.WithLabelValues(source, outcome).Inc()
	metrics.PredictionDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

func topScore(predictions []careerfit.CareerPrediction) int {
	if len(predictions) == 0 {
		return 0
	}
	return predictions[0].MatchScore
}

// Classify maps a prediction failure onto the shared error codes.
func Classify(userID string, err error) *apperrors.StandardError {
	if stdErr, ok := apperrors.AsStandardError(err); ok {
		return stdErr
	}
	switch {
	case errors.Is(err, userdata.ErrInvalidUserID):
		return apperrors.NewInvalidRequestError(err.Error())
	case errors.Is(err, userdata.ErrUserNotFound):
		return apperrors.NewUserNotFoundError(userID, err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewDataFetchTimeoutError(userID, err)
	default:
		return apperrors.NewUserDataFetchFailedError(userID, err)
	}
}
