// internal/careerfit/confidence.go
package careerfit

import "careerfit-workers/internal/models"

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceFor grades how much data backs a prediction. It depends only on
// record counts, so every career in one result shares the same value.
func ConfidenceFor(data models.UserData) Confidence {
	total := len(data.Activities) + len(data.TestResults) + len(data.CommunicationSessions)
	switch {
	case total >= 50:
		return ConfidenceHigh
	case total >= 20:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
