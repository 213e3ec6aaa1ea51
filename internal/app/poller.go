package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const maxBackoff = 30 * time.Second

// Syncer reloads remote state without user-facing notifications.
type Syncer interface {
	Sync(ctx context.Context) error
}

// StartPoller launches a background goroutine that calls Sync every
// interval, backing off exponentially on consecutive failures. It returns
// immediately; a non-positive interval starts nothing.
func StartPoller(ctx context.Context, s Syncer, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := s.Sync(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				log.Warn("refresh failed",
					zap.Error(err),
					zap.Int("failures", failures),
					zap.Duration("next", calculateBackoff(failures, interval)),
				)
			} else {
				if failures > 0 {
					log.Info("refresh recovered", zap.Int("after_failures", failures))
				}
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles base per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
