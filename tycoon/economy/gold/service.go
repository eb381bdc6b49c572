// Package gold settles passive gold accrual for accounts and keeps each
// account's stored rate in step with its assets and modifiers.
package gold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
	"github.com/mektycoon/mekgold/tycoon/economy/accrual"
	"github.com/mektycoon/mekgold/tycoon/economy/buffs"
	"github.com/mektycoon/mekgold/tycoon/economy/leveling"
)

type Service struct {
	store   repositories.Store
	catalog *Catalog
	cfg     Config
	curve   leveling.Curve
	now     func() time.Time
	backoff func(attempt int) time.Duration
}

type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithBackoff replaces the delay between optimistic retries.
func WithBackoff(backoff func(attempt int) time.Duration) Option {
	return func(s *Service) {
		s.backoff = backoff
	}
}

func NewService(store repositories.Store, cfg Config, opts ...Option) (*Service, error) {
	cfg = cfg.WithDefaults()

	catalog, err := NewCatalog(cfg.TypeCacheSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:   store,
		catalog: catalog,
		cfg:     cfg,
		curve:   leveling.Curve{BaseXPPerLevel: cfg.BaseXPPerLevel},
		now:     time.Now,
		backoff: exponentialBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) Config() Config {
	return s.cfg
}

func exponentialBackoff(attempt int) time.Duration {
	d := config.RetryBaseDelay << (attempt - 1)
	if d > config.RetryMaxDelay {
		return config.RetryMaxDelay
	}
	return d
}

// clock returns the current time at the precision the database keeps.
func (s *Service) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

type txFunc func(ctx context.Context, repos repositories.Repos, now time.Time) error

// atomically runs fn in a transaction, re-running it from scratch while the
// failure is a lost version check, up to MaxRetries attempts.
func (s *Service) atomically(ctx context.Context, op, accountID string, fn txFunc) error {
	var err error
	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		now := s.clock()
		err = s.store.RunInTx(ctx, func(ctx context.Context, repos repositories.Repos) error {
			return fn(ctx, repos, now)
		})
		if err == nil || !repositories.IsRetryable(err) {
			return err
		}

		slog.Debug("Concurrent modification, retrying",
			slog.String("type", "db"),
			slog.String("operation", op),
			slog.String("account_id", accountID),
			slog.Int("attempt", attempt))

		if attempt == s.cfg.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff(attempt)):
		}
	}

	slog.Warn("Optimistic retries exhausted",
		slog.String("type", "economy"),
		slog.String("operation", op),
		slog.String("account_id", accountID),
		slog.Int("attempts", s.cfg.MaxRetries))
	return &ConflictError{Operation: op, AccountID: accountID, Attempts: s.cfg.MaxRetries, Err: err}
}

func (s *Service) loadAccount(ctx context.Context, repos repositories.Repos, accountID string) (*models.Account, error) {
	account, err := repos.Accounts.GetByID(ctx, accountID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, err
	}
	return account, nil
}

// settle credits the account with accrual since its last settlement and moves
// the settlement clock to now. A clock that reads earlier than the last
// settlement accrues nothing and leaves LastSettlement where it is.
func (s *Service) settle(account *models.Account, now time.Time, capHours float64) accrual.Result {
	res := accrual.ComputeAccrued(account.LastSettlement, now, account.GoldRate, capHours)
	if res.ClockSkew {
		slog.Warn("Settlement time precedes last settlement, clamping elapsed time to zero",
			slog.String("type", "economy"),
			slog.String("account_id", account.ID),
			slog.Time("last_settlement", account.LastSettlement),
			slog.Time("now", now))
	} else {
		account.LastSettlement = now
	}
	account.Balance += res.Accrued
	return res
}

func (s *Service) baseRate(assets []*models.Asset) float64 {
	var levels int64
	for _, a := range assets {
		levels += int64(a.Level)
	}
	return float64(levels) * s.cfg.BaseUnitRate
}

func toBuffs(modifiers []*models.Modifier) []buffs.Modifier {
	out := make([]buffs.Modifier, len(modifiers))
	for i, m := range modifiers {
		out[i] = buffs.Modifier{
			Category:  m.Category,
			Kind:      buffs.Kind(m.Kind),
			Magnitude: m.Magnitude,
			Stacks:    m.Stacks,
			Active:    m.Active,
			ExpiresAt: m.ExpiresAt,
		}
	}
	return out
}

func (s *Service) record(ctx context.Context, repos repositories.Repos, st *models.Settlement) error {
	if err := repos.Settlements.Create(ctx, st); err != nil {
		return fmt.Errorf("failed to record %s settlement: %w", st.Kind, err)
	}
	return nil
}

func notFoundAs(err error, sentinel error, id interface{}) error {
	if repositories.IsNotFound(err) {
		return fmt.Errorf("%w: %v", sentinel, id)
	}
	return err
}

// IsNotFound reports whether err is any of the service's not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrModifierTypeNotFound) ||
		errors.Is(err, ErrModifierNotFound) ||
		errors.Is(err, ErrAssetNotFound)
}
