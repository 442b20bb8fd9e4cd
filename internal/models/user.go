// internal/models/user.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UserID accepts both JSON strings and JSON numbers so that callers can pass
// database ids as-is.
type UserID string

func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("userId must be a string or number: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

func (id UserID) String() string { return string(id) }

// UserProfile carries the profile fields the scoring engine reads.
type UserProfile struct {
	ID    string  `json:"id"`
	Major *string `json:"major"`
}
