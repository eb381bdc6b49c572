package gold

import (
	"context"
	"time"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
	"github.com/mektycoon/mekgold/tycoon/economy/accrual"
	"github.com/mektycoon/mekgold/tycoon/economy/buffs"
	"github.com/mektycoon/mekgold/tycoon/logger"
)

type RecomputeResult struct {
	AccountID  string    `json:"account_id"`
	Settled    float64   `json:"settled"`
	OldRate    float64   `json:"old_rate"`
	NewRate    float64   `json:"new_rate"`
	BaseRate   float64   `json:"base_rate"`
	Multiplier float64   `json:"multiplier"`
	FlatBonus  float64   `json:"flat_bonus"`
	Balance    float64   `json:"balance"`
	SettledAt  time.Time `json:"settled_at"`
}

// RecomputeRate settles gold accrued under the stored rate up to now without a
// cap, then stores the rate derived from the account's current assets and
// live modifiers. Both happen in one conditional write.
func (s *Service) RecomputeRate(ctx context.Context, accountID string) (*RecomputeResult, error) {
	var result *RecomputeResult
	err := s.atomically(ctx, "recompute", accountID, func(ctx context.Context, repos repositories.Repos, now time.Time) error {
		account, err := s.loadAccount(ctx, repos, accountID)
		if err != nil {
			return err
		}
		result, err = s.settleAndSwitch(ctx, repos, account, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.LogEconomy("Gold rate recomputed",
		"account_id", accountID,
		"settled", result.Settled,
		"old_rate", result.OldRate,
		"new_rate", result.NewRate)
	return result, nil
}

// settleAndSwitch runs inside a caller's transaction and persists account.
func (s *Service) settleAndSwitch(ctx context.Context, repos repositories.Repos, account *models.Account, now time.Time) (*RecomputeResult, error) {
	assets, err := repos.Assets.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	modifiers, err := repos.Modifiers.ListByAccount(ctx, account.ID, false)
	if err != nil {
		return nil, err
	}

	from := account.LastSettlement
	oldRate := account.GoldRate
	settled := s.settle(account, now, accrual.Uncapped)

	base := s.baseRate(assets)
	agg := buffs.Fold(toBuffs(modifiers), s.cfg.RateCategory, now)
	account.GoldRate = agg.Apply(base)

	if err := repos.Accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	err = s.record(ctx, repos, &models.Settlement{
		AccountID:    account.ID,
		Kind:         config.SettlementRecompute,
		FromTime:     from,
		ToTime:       account.LastSettlement,
		Rate:         oldRate,
		Hours:        settled.CountedHours,
		Amount:       settled.Accrued,
		BalanceAfter: account.Balance,
	})
	if err != nil {
		return nil, err
	}

	return &RecomputeResult{
		AccountID:  account.ID,
		Settled:    settled.Accrued,
		OldRate:    oldRate,
		NewRate:    account.GoldRate,
		BaseRate:   base,
		Multiplier: agg.Multiplier,
		FlatBonus:  agg.FlatBonus,
		Balance:    account.Balance,
		SettledAt:  account.LastSettlement,
	}, nil
}
