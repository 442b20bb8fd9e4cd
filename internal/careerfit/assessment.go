// internal/careerfit/assessment.go
package careerfit

import "careerfit-workers/internal/models"

// NeutralTestScore is returned when a user has tests but none relate to the career.
const NeutralTestScore = 30.0

// TestScore averages the scores of tests whose title, company or role mention
// one of the career's skills or industries, discounted by 20%.
func TestScore(tests []models.TestResult, career Career) float64 {
	return testScore(testEvidence(tests), career)
}

func testScore(tests []scoredText, career Career) float64 {
	if len(tests) == 0 {
		return 0
	}

	relevant := 0
	total := 0.0
	for _, t := range tests {
		if containsAny(t.text, career.RequiredSkills) || containsAny(t.text, career.Industries) {
			relevant++
			total += t.score
		}
	}
	if relevant == 0 {
		return NeutralTestScore
	}
	return total / float64(relevant) * 0.8
}
