// internal/workers/communication/send-career-report/models.go
package sendcareerreport

import "careerfit-workers/internal/models"

// Input is usually the output of predict-career-paths merged with the
// student's contact details.
type Input struct {
	UserID      models.UserID      `json:"userId"`
	Name        string             `json:"name,omitempty"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone,omitempty"`
	Predictions []ReportPrediction `json:"predictions"`
}

// ReportPrediction is the slice of a career prediction the report needs.
type ReportPrediction struct {
	Career     string `json:"career"`
	MatchScore int    `json:"matchScore"`
	Growth     string `json:"growth,omitempty"`
	AvgSalary  int    `json:"avgSalary,omitempty"`
}

const (
	StatusSent    = "sent"
	StatusPartial = "partial"
	StatusSkipped = "skipped"
)

type Output struct {
	ReportID      string                `json:"reportId"`
	Status        string                `json:"status"`
	Notifications []models.Notification `json:"notifications"`
	SentAt        string                `json:"sentAt"`
}
