package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Sweep calls store.Cleanup every interval until ctx is done.
func Sweep(ctx context.Context, store Store, interval time.Duration, logger *log.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Cleanup(ctx)
			if err != nil {
				logger.Warn("session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Debug("expired sessions removed", "count", n, "remaining", store.Len())
			}
		}
	}
}
