// internal/careerfit/communication.go
package careerfit

import (
	"math"

	"careerfit-workers/internal/models"
)

const communicationBonus = 10.0

var communicationHeavyCareers = map[string]struct{}{
	"Product Manager":   {},
	"Marketing Manager": {},
	"Consultant":        {},
}

// CommunicationScore averages session feedback and adds a bonus for careers
// that lean on communication. The result never exceeds 100.
func CommunicationScore(sessions []models.CommunicationSession, careerName string) float64 {
	return communicationScore(feedbackScores(sessions), careerName)
}

func communicationScore(feedback []float64, careerName string) float64 {
	if len(feedback) == 0 {
		return 0
	}

	sum := 0.0
	for _, f := range feedback {
		sum += f
	}
	avg := sum / float64(len(feedback))

	if _, ok := communicationHeavyCareers[careerName]; ok {
		avg += communicationBonus
	}
	return math.Min(100, avg)
}
