// internal/careerfit/score.go
package careerfit

import "math"

// BaseScore is the starting point every career gets before signals are added.
const BaseScore = 50.0

const (
	activityWeight      = 0.30
	testWeight          = 0.25
	communicationWeight = 0.25
	majorWeight         = 0.20
)

// ScoreBreakdown exposes the component scores behind a match score.
type ScoreBreakdown struct {
	Activity      float64 `json:"activity"`
	Test          float64 `json:"test"`
	Communication float64 `json:"communication"`
	Major         float64 `json:"major"`
}

// MatchScore combines the component scores into an integer in [0, 100].
func MatchScore(b ScoreBreakdown) int {
	score := BaseScore +
		b.Activity*activityWeight +
		b.Test*testWeight +
		b.Communication*communicationWeight +
		b.Major*majorWeight
	return int(math.Round(clamp(score, 0, 100)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
