// internal/workers/communication/send-career-report/config.go
package sendcareerreport

import (
	"fmt"
	"time"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SMSSenderID  string
	// MaxCareers caps how many careers the e-mail lists.
	MaxCareers int
	Timeout    time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		EmailEnabled: true,
		MaxCareers:   3,
		Timeout:      30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.EmailEnabled && c.FromEmail == "" {
		return fmt.Errorf("from email is required when email is enabled")
	}
	if c.MaxCareers <= 0 {
		return fmt.Errorf("max careers must be positive")
	}
	return nil
}
