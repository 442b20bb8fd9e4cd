// internal/models/userdata.go
package models

// UserData is everything known about a student when predicting careers.
type UserData struct {
	Activities            []ActivityRecord       `json:"activities"`
	TestResults           []TestResult           `json:"testResults"`
	CommunicationSessions []CommunicationSession `json:"communicationSessions"`
	Profile               UserProfile            `json:"profile"`
}

// Major returns the declared major or nil when the profile has none.
func (u UserData) Major() *string {
	return u.Profile.Major
}
