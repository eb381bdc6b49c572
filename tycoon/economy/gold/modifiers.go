package gold

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
	"github.com/mektycoon/mekgold/tycoon/logger"
)

type GrantOutcome string

const (
	GrantCreated   GrantOutcome = "created"
	GrantStacked   GrantOutcome = "stacked"
	GrantMaxStacks GrantOutcome = "max_stacks"
)

const defaultSource = "system"

type GrantRequest struct {
	AccountID string
	TypeID    string
	Source    string
	// Magnitude overrides the type's default magnitude for a new modifier.
	Magnitude *float64
	// Duration overrides the type's default duration. Zero means permanent.
	Duration *time.Duration
}

type GrantResult struct {
	Outcome   GrantOutcome     `json:"outcome"`
	Modifier  *models.Modifier `json:"-"`
	MaxStacks int              `json:"max_stacks"`
	Recompute *RecomputeResult `json:"recompute,omitempty"`
}

// GrantModifier creates a modifier, or adds a stack to the live modifier with
// the same (account, type, source). A grant at max stacks changes nothing and
// reports GrantMaxStacks. Rate-category grants settle and switch the account
// rate in the same transaction.
func (s *Service) GrantModifier(ctx context.Context, req GrantRequest) (*GrantResult, error) {
	if req.Source == "" {
		req.Source = defaultSource
	}
	if req.Duration != nil && *req.Duration < 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, *req.Duration)
	}

	var result *GrantResult
	err := s.atomically(ctx, "grant_modifier", req.AccountID, func(ctx context.Context, repos repositories.Repos, now time.Time) error {
		result = nil

		account, err := s.loadAccount(ctx, repos, req.AccountID)
		if err != nil {
			return err
		}
		mt, err := s.catalog.Resolve(ctx, repos.ModifierTypes, req.TypeID)
		if err != nil {
			return err
		}

		duration := time.Duration(mt.DefaultDuration) * time.Second
		if req.Duration != nil {
			duration = *req.Duration
		}
		var expiresAt *time.Time
		if duration > 0 {
			exp := now.Add(duration)
			expiresAt = &exp
		}

		existing, err := repos.Modifiers.FindLive(ctx, req.AccountID, req.TypeID, req.Source, now)
		if err != nil && !repositories.IsNotFound(err) {
			return err
		}

		res := &GrantResult{MaxStacks: mt.MaxStacks}
		switch {
		case existing != nil && existing.Stacks >= mt.MaxStacks:
			res.Outcome = GrantMaxStacks
			res.Modifier = existing
			result = res
			return nil

		case existing != nil:
			existing.Stacks++
			if expiresAt != nil && existing.ExpiresAt != nil {
				existing.ExpiresAt = expiresAt
			}
			if err := repos.Modifiers.UpdateStack(ctx, existing); err != nil {
				return err
			}
			res.Outcome = GrantStacked
			res.Modifier = existing

		default:
			magnitude := mt.DefaultMagnitude
			if req.Magnitude != nil {
				magnitude = *req.Magnitude
			}
			modifier := &models.Modifier{
				AccountID:   req.AccountID,
				TypeID:      mt.ID,
				Source:      req.Source,
				Category:    mt.Category,
				Kind:        mt.Kind,
				Magnitude:   magnitude,
				Stacks:      1,
				Active:      true,
				ActivatedAt: now,
				ExpiresAt:   expiresAt,
			}
			if err := repos.Modifiers.Create(ctx, modifier); err != nil {
				return err
			}
			res.Outcome = GrantCreated
			res.Modifier = modifier
		}

		if err := s.afterModifierChange(ctx, repos, account, mt.Category, now, res); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.LogEconomy("Modifier granted",
		"account_id", req.AccountID,
		"modifier_type", req.TypeID,
		"source", req.Source,
		"outcome", string(result.Outcome),
		"stacks", result.Modifier.Stacks)
	return result, nil
}

// afterModifierChange settles and switches the rate when the changed modifier
// targets the rate category; otherwise it only advances the account version so
// concurrent changes to the same account's modifier set serialize.
func (s *Service) afterModifierChange(ctx context.Context, repos repositories.Repos, account *models.Account, category string, now time.Time, res *GrantResult) error {
	if category == s.cfg.RateCategory {
		rc, err := s.settleAndSwitch(ctx, repos, account, now)
		if err != nil {
			return err
		}
		if res != nil {
			res.Recompute = rc
		}
		return nil
	}
	return repos.Accounts.Update(ctx, account)
}

type RevokeResult struct {
	Modifier        *models.Modifier `json:"-"`
	AlreadyInactive bool             `json:"already_inactive"`
	Recompute       *RecomputeResult `json:"recompute,omitempty"`
}

// RevokeModifier soft-deactivates a modifier. Revoking an inactive modifier is
// a no-op.
func (s *Service) RevokeModifier(ctx context.Context, modifierID int64) (*RevokeResult, error) {
	var result *RevokeResult
	err := s.atomically(ctx, "revoke_modifier", fmt.Sprintf("modifier:%d", modifierID), func(ctx context.Context, repos repositories.Repos, now time.Time) error {
		result = nil

		modifier, err := repos.Modifiers.GetByID(ctx, modifierID)
		if err != nil {
			return notFoundAs(err, ErrModifierNotFound, modifierID)
		}
		if !modifier.Active {
			result = &RevokeResult{Modifier: modifier, AlreadyInactive: true}
			return nil
		}

		account, err := s.loadAccount(ctx, repos, modifier.AccountID)
		if err != nil {
			return err
		}

		if err := repos.Modifiers.Deactivate(ctx, modifier.ID, config.ReasonRevoked, now); err != nil {
			return err
		}
		modifier.Active = false
		modifier.DeactivatedAt = &now
		modifier.DeactivatedReason = config.ReasonRevoked

		res := &RevokeResult{Modifier: modifier}
		if modifier.Category == s.cfg.RateCategory {
			rc, err := s.settleAndSwitch(ctx, repos, account, now)
			if err != nil {
				return err
			}
			res.Recompute = rc
		} else if err := repos.Accounts.Update(ctx, account); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyInactive {
		logger.LogEconomy("Modifier revoked",
			"modifier_id", modifierID,
			"account_id", result.Modifier.AccountID,
			"modifier_type", result.Modifier.TypeID)
	}
	return result, nil
}

// ListModifiers returns an account's modifiers, newest last.
func (s *Service) ListModifiers(ctx context.Context, accountID string, includeInactive bool) ([]*models.Modifier, error) {
	repos := s.store.Repos()
	if _, err := s.loadAccount(ctx, repos, accountID); err != nil {
		return nil, err
	}
	return repos.Modifiers.ListByAccount(ctx, accountID, includeInactive)
}

type SweepResult struct {
	Deactivated        int64    `json:"deactivated"`
	AccountsRecomputed int      `json:"accounts_recomputed"`
	Failed             []string `json:"failed,omitempty"`
	Duration           string   `json:"duration"`
}

// SweepExpiredModifiers flips expired modifiers to inactive and recomputes the
// rate of every account that lost a rate-category modifier. Aggregation never
// depends on the sweep having run; it only keeps flags and stored rates tidy.
func (s *Service) SweepExpiredModifiers(ctx context.Context) (*SweepResult, error) {
	start := time.Now()
	result := &SweepResult{}
	affected := make(map[string]struct{})

	for {
		var batch []*models.Modifier
		var deactivated int64
		now := s.clock()
		err := s.store.RunInTx(ctx, func(ctx context.Context, repos repositories.Repos) error {
			var err error
			batch, err = repos.Modifiers.ListExpired(ctx, now, s.cfg.SweepBatchSize)
			if err != nil {
				return err
			}
			ids := make([]int64, len(batch))
			for i, m := range batch {
				ids[i] = m.ID
			}
			deactivated, err = repos.Modifiers.DeactivateExpired(ctx, ids, now)
			return err
		})
		if err != nil {
			return result, fmt.Errorf("failed to deactivate expired modifiers: %w", err)
		}

		result.Deactivated += deactivated
		for _, m := range batch {
			if m.Category == s.cfg.RateCategory {
				affected[m.AccountID] = struct{}{}
			}
		}
		if len(batch) < s.cfg.SweepBatchSize || deactivated == 0 {
			break
		}
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.cfg.SweepConcurrency)
	for accountID := range affected {
		accountID := accountID // per-iteration copy; module targets go 1.21 loop semantics
		g.Go(func() error {
			_, err := s.RecomputeRate(ctx, accountID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, accountID)
				slog.Error("Failed to recompute rate after sweep",
					slog.String("type", "economy"),
					slog.String("account_id", accountID),
					slog.Any("error", err))
				return nil
			}
			result.AccountsRecomputed++
			return nil
		})
	}
	_ = g.Wait()

	result.Duration = time.Since(start).String()
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
