// internal/models/activity.go
package models

import (
	"strings"
	"time"
)

// ActivityRecord is one practice or learning event logged for a student.
type ActivityRecord struct {
	ID              int64     `json:"id,omitempty"`
	ActivityType    string    `json:"activityType"`
	ActivityDetails Details   `json:"activityDetails"`
	Score           *float64  `json:"score"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SearchText is the lowercased text scanned for skill keywords: the activity
// type followed by the compact JSON rendering of its details.
func (a ActivityRecord) SearchText() string {
	return strings.ToLower(a.ActivityType + " " + a.ActivityDetails.Compact())
}
