// internal/common/database/health.go
package database

import (
	"context"
	"time"
)

// Pinger is a backend that can report its reachability.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// CheckAll pings every backend with a shared timeout and returns the
// failures keyed by backend name. An empty map means everything is up.
func CheckAll(ctx context.Context, timeout time.Duration, pingers ...Pinger) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	failures := make(map[string]string)
	for _, p := range pingers {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			failures[p.Name()] = err.Error()
		}
	}
	return failures
}
