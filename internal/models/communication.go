// internal/models/communication.go
package models

import "time"

// CommunicationSession is a scored speaking or interview practice session.
type CommunicationSession struct {
	ID            int64     `json:"id,omitempty"`
	SessionType   string    `json:"sessionType"`
	FeedbackScore *float64  `json:"feedbackScore"`
	CreatedAt     time.Time `json:"createdAt"`
}
