package plan

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSweepInterval is how often expired plans are removed.
const DefaultSweepInterval = 10 * time.Minute

// SweeperConfig holds configuration for creating a Sweeper.
type SweeperConfig struct {
	Service  *Service
	Interval time.Duration
	Logger   zerolog.Logger
}

// Sweeper periodically removes plans that outlived the session TTL.
type Sweeper struct {
	service  *Service
	interval time.Duration
	logger   zerolog.Logger

	mu        sync.RWMutex
	lastRunAt time.Time
	removed   int64
}

// SweepResult contains the result of one sweep.
type SweepResult struct {
	StartTime time.Time
	Duration  time.Duration
	Removed   int
	Err       error
}

// NewSweeper creates a new session sweeper.
func NewSweeper(cfg SweeperConfig) *Sweeper {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		service:  cfg.Service,
		interval: interval,
		logger:   cfg.Logger,
	}
}

// Run performs one sweep.
func (s *Sweeper) Run(ctx context.Context) *SweepResult {
	start := time.Now()
	n, err := s.service.Sweep(ctx)
	result := &SweepResult{
		StartTime: start,
		Duration:  time.Since(start),
		Removed:   n,
		Err:       err,
	}

	s.mu.Lock()
	s.lastRunAt = start
	s.removed += int64(n)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Msg("plan sweep failed")
		return result
	}
	if n > 0 {
		s.logger.Info().
			Int("removed", n).
			Dur("duration", result.Duration).
			Msg("expired plans removed")
	}
	return result
}

// Start runs a sweep every interval until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("plan sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("plan sweeper stopped")
			return
		case <-ticker.C:
			s.Run(ctx)
		}
	}
}

// Stats returns the time of the last sweep and the total plans removed.
func (s *Sweeper) Stats() (lastRunAt time.Time, removed int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRunAt, s.removed
}
