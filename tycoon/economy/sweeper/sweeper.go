// Package sweeper periodically deactivates expired modifiers.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

type ExpirySweeper interface {
	SweepExpiredModifiers(ctx context.Context) (*gold.SweepResult, error)
}

type Sweeper struct {
	target   ExpirySweeper
	interval time.Duration

	mu   sync.RWMutex
	last *gold.SweepResult
	runs int
}

func New(target ExpirySweeper, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = config.SweepInterval
	}
	return &Sweeper{target: target, interval: interval}
}

// Run sweeps once immediately and then on every tick until ctx is done.
// Individual sweep failures are logged and do not stop the loop.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Sweeper) runCycle(ctx context.Context) {
	res, err := s.target.SweepExpiredModifiers(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("Failed to sweep expired modifiers",
			slog.String("type", "economy"),
			slog.Any("error", err))
		return
	}

	s.mu.Lock()
	s.last = res
	s.runs++
	s.mu.Unlock()

	if res.Deactivated > 0 || len(res.Failed) > 0 {
		slog.Info("Expired modifiers swept",
			slog.String("type", "economy"),
			slog.Int64("deactivated", res.Deactivated),
			slog.Int("accounts_recomputed", res.AccountsRecomputed),
			slog.Int("failed", len(res.Failed)),
			slog.String("took", res.Duration))
	}
}

// Last returns the most recent successful sweep and how many have completed.
func (s *Sweeper) Last() (*gold.SweepResult, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.runs
}
