// internal/workers/career/generate-learning-resources/config.go
package generatelearningresources

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{Timeout: 10 * time.Second}
}
