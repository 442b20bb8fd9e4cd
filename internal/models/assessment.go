// internal/models/assessment.go
package models

import (
	"strings"
	"time"
)

// TestResult is a completed assessment, usually tied to a company and role.
type TestResult struct {
	ID              int64     `json:"id,omitempty"`
	TestTitle       string    `json:"testTitle"`
	Company         string    `json:"company"`
	JobRole         string    `json:"jobRole"`
	ScorePercentage *float64  `json:"scorePercentage"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (t TestResult) SearchText() string {
	return strings.ToLower(t.TestTitle + " " + t.Company + " " + t.JobRole)
}
