// internal/userdata/postgres.go
package userdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careerfit-workers/internal/models"
)

const (
	activitiesQuery = `SELECT id, activity_type, activity_details, score, created_at
		FROM student_activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	testResultsQuery = `SELECT id, test_title, company, job_role, score_percentage, created_at
		FROM test_results
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	sessionsQuery = `SELECT id, session_type, score, created_at
		FROM communication_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	profileQuery = `SELECT id, major
		FROM users
		WHERE id = $1 AND is_active = TRUE`
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// PostgresStore reads user history from the application database.
type PostgresStore struct {
	db Querier
}

func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FetchUserActivities(ctx context.Context, userID string, limit int) ([]models.ActivityRecord, error) {
	rows, err := s.db.QueryContext(ctx, activitiesQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query student_activities: %w", err)
	}
	defer rows.Close()

	activities := []models.ActivityRecord{}
	for rows.Next() {
		var (
			a       models.ActivityRecord
			details []byte
			score   sql.NullFloat64
		)
		if err := rows.Scan(&a.ID, &a.ActivityType, &details, &score, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan student_activities: %w", err)
		}
		a.ActivityDetails = parseDetailsLenient(details)
		a.Score = nullableFloat(score)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate student_activities: %w", err)
	}
	return activities, nil
}

func (s *PostgresStore) FetchUserTestResults(ctx context.Context, userID string, limit int) ([]models.TestResult, error) {
	rows, err := s.db.QueryContext(ctx, testResultsQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query test_results: %w", err)
	}
	defer rows.Close()

	results := []models.TestResult{}
	for rows.Next() {
		var (
			r                    models.TestResult
			title, company, role sql.NullString
			score                sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &title, &company, &role, &score, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan test_results: %w", err)
		}
		r.TestTitle, r.Company, r.JobRole = title.String, company.String, role.String
		r.ScorePercentage = nullableFloat(score)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test_results: %w", err)
	}
	return results, nil
}

// FetchUserCommunicationSessions maps the session's score column to its
// feedback score.
func (s *PostgresStore) FetchUserCommunicationSessions(ctx context.Context, userID string, limit int) ([]models.CommunicationSession, error) {
	rows, err := s.db.QueryContext(ctx, sessionsQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query communication_sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.CommunicationSession{}
	for rows.Next() {
		var (
			cs          models.CommunicationSession
			sessionType sql.NullString
			score       sql.NullFloat64
		)
		if err := rows.Scan(&cs.ID, &sessionType, &score, &cs.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan communication_sessions: %w", err)
		}
		cs.SessionType = sessionType.String
		cs.FeedbackScore = nullableFloat(score)
		sessions = append(sessions, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate communication_sessions: %w", err)
	}
	return sessions, nil
}

func (s *PostgresStore) FetchUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var (
		p     models.UserProfile
		major sql.NullString
	)
	err := s.db.QueryRowContext(ctx, profileQuery, userID).Scan(&p.ID, &major)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	if major.Valid {
		p.Major = &major.String
	}
	return &p, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// parseDetailsLenient treats unreadable details as empty.
func parseDetailsLenient(raw []byte) models.Details {
	d, err := models.ParseDetails(raw)
	if err != nil {
		return models.Details{}
	}
	return d
}
