// internal/workers/career/predict-career-paths/config.go
package predictcareerpaths

import (
	"fmt"
	"time"
)

type Config struct {
	Timeout time.Duration
	// ValidateInput runs the request schema against job variables.
	ValidateInput bool
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		ValidateInput: true,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
