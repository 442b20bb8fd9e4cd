// internal/userdata/collect.go
package userdata

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"careerfit-workers/internal/models"
)

// Collect issues the four reads concurrently. The first failure cancels the
// others and is returned; there is no partial result.
func Collect(ctx context.Context, f Fetcher, userID string, limits Limits) (*models.UserData, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}

	g, gctx := errgroup.WithContext(ctx)
	var data models.UserData

	g.Go(func() error {
		activities, err := f.FetchUserActivities(gctx, userID, limits.Activities)
		if err != nil {
			return fmt.Errorf("fetch activities: %w", err)
		}
		data.Activities = activities
		return nil
	})
	g.Go(func() error {
		tests, err := f.FetchUserTestResults(gctx, userID, limits.TestResults)
		if err != nil {
			return fmt.Errorf("fetch test results: %w", err)
		}
		data.TestResults = tests
		return nil
	})
	g.Go(func() error {
		sessions, err := f.FetchUserCommunicationSessions(gctx, userID, limits.CommunicationSessions)
		if err != nil {
			return fmt.Errorf("fetch communication sessions: %w", err)
		}
		data.CommunicationSessions = sessions
		return nil
	})
	g.Go(func() error {
		profile, err := f.FetchUserProfile(gctx, userID)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		data.Profile = *profile
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// FanOut is a Source that collects straight from a Fetcher.
type FanOut struct {
	fetcher Fetcher
	limits  Limits
}

func NewFanOut(f Fetcher, limits Limits) *FanOut {
	return &FanOut{fetcher: f, limits: limits}
}

func (s *FanOut) Load(ctx context.Context, userID string) (*models.UserData, error) {
	return Collect(ctx, s.fetcher, userID, s.limits)
}
