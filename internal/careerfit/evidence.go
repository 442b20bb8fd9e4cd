// internal/careerfit/evidence.go
package careerfit

import "careerfit-workers/internal/models"

const (
	// DefaultActivityScore stands in for an activity recorded without a score.
	DefaultActivityScore = 70.0
	// DefaultFeedbackScore stands in for a session recorded without feedback.
	DefaultFeedbackScore = 70.0
)

type scoredText struct {
	text  string
	score float64
}

// evidence is a user's history reduced to lowercased search text and
// resolved scores. It is built once per prediction and shared by all careers.
type evidence struct {
	activities []scoredText
	tests      []scoredText
	feedback   []float64
	major      *string
}

func newEvidence(data models.UserData) evidence {
	return evidence{
		activities: activityEvidence(data.Activities),
		tests:      testEvidence(data.TestResults),
		feedback:   feedbackScores(data.CommunicationSessions),
		major:      data.Major(),
	}
}

func activityEvidence(activities []models.ActivityRecord) []scoredText {
	out := make([]scoredText, len(activities))
	for i, a := range activities {
		out[i] = scoredText{text: a.SearchText(), score: valueOr(a.Score, DefaultActivityScore)}
	}
	return out
}

func testEvidence(tests []models.TestResult) []scoredText {
	out := make([]scoredText, len(tests))
	for i, t := range tests {
		out[i] = scoredText{text: t.SearchText(), score: valueOr(t.ScorePercentage, 0)}
	}
	return out
}

func feedbackScores(sessions []models.CommunicationSession) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		out[i] = valueOr(s.FeedbackScore, DefaultFeedbackScore)
	}
	return out
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
