// internal/workers/career/predict-career-paths/models.go
package predictcareerpaths

import (
	"careerfit-workers/internal/careerfit"
	"careerfit-workers/internal/models"
)

// Input carries the user to score. When UserData is set it is scored as-is
// and nothing is fetched.
type Input struct {
	UserID   models.UserID    `json:"userId"`
	UserData *models.UserData `json:"userData,omitempty"`
}

type Output struct {
	Predictions  []careerfit.CareerPrediction `json:"predictions"`
	AnalysisDate string                       `json:"analysisDate"`
	TopCareer    string                       `json:"topCareer"`
	TopScore     int                          `json:"topScore"`
	Confidence   careerfit.Confidence         `json:"confidence"`
	SnapshotID   string                       `json:"snapshotId,omitempty"`
}
