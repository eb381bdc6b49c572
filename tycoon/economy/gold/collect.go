package gold

import (
	"context"
	"time"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
	"github.com/mektycoon/mekgold/tycoon/economy/accrual"
	"github.com/mektycoon/mekgold/tycoon/economy/buffs"
	"github.com/mektycoon/mekgold/tycoon/economy/leveling"
	"github.com/mektycoon/mekgold/tycoon/logger"
)

type CollectResult struct {
	AccountID    string  `json:"account_id"`
	Collected    float64 `json:"collected"`
	XPGained     int64   `json:"xp_gained"`
	NewLevel     int     `json:"new_level"`
	LeveledUp    bool    `json:"leveled_up"`
	LevelsGained int     `json:"levels_gained"`
	WasCapped    bool    `json:"was_capped"`
	ElapsedHours float64 `json:"elapsed_hours"`
	CountedHours float64 `json:"counted_hours"`
	Balance      float64 `json:"balance"`
	Experience   int64   `json:"experience"`
}

// Collect settles accrued gold bounded by the collection cap, converts it into
// experience and levels the account up. Accrual beyond the cap is forfeited
// and reported through WasCapped.
func (s *Service) Collect(ctx context.Context, accountID string) (*CollectResult, error) {
	var result *CollectResult
	err := s.atomically(ctx, "collect", accountID, func(ctx context.Context, repos repositories.Repos, now time.Time) error {
		account, err := s.loadAccount(ctx, repos, accountID)
		if err != nil {
			return err
		}
		modifiers, err := repos.Modifiers.ListByAccount(ctx, accountID, false)
		if err != nil {
			return err
		}

		from := account.LastSettlement
		settled := s.settle(account, now, s.cfg.CollectionCapHours)

		xpMultiplier := buffs.Fold(toBuffs(modifiers), s.cfg.XPCategory, now).Multiplier
		xp := leveling.ExperienceForGold(settled.Accrued, s.cfg.GoldPerXP, xpMultiplier)
		progress := s.curve.Advance(account.Level, account.Experience, xp)

		account.Level = progress.Level
		account.Experience = progress.Experience
		account.TotalExperience += xp
		account.TotalGoldCollected += settled.Accrued

		if err := repos.Accounts.Update(ctx, account); err != nil {
			return err
		}

		err = s.record(ctx, repos, &models.Settlement{
			AccountID:    account.ID,
			Kind:         config.SettlementCollect,
			FromTime:     from,
			ToTime:       account.LastSettlement,
			Rate:         account.GoldRate,
			Hours:        settled.CountedHours,
			Amount:       settled.Accrued,
			Capped:       settled.WasCapped,
			XPGained:     xp,
			BalanceAfter: account.Balance,
		})
		if err != nil {
			return err
		}

		result = &CollectResult{
			AccountID:    account.ID,
			Collected:    settled.Accrued,
			XPGained:     xp,
			NewLevel:     progress.Level,
			LeveledUp:    progress.LevelsGained > 0,
			LevelsGained: progress.LevelsGained,
			WasCapped:    settled.WasCapped,
			ElapsedHours: settled.ElapsedHours,
			CountedHours: settled.CountedHours,
			Balance:      account.Balance,
			Experience:   account.Experience,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.LogEconomy("Gold collected",
		"account_id", accountID,
		"collected", result.Collected,
		"xp", result.XPGained,
		"level", result.NewLevel,
		"capped", result.WasCapped)
	return result, nil
}

// AccountSnapshot is a read-only view of an account and what it would collect now.
type AccountSnapshot struct {
	Account       *models.Account    `json:"-"`
	Assets        []*models.Asset    `json:"-"`
	Modifiers     []*models.Modifier `json:"-"`
	Pending       float64            `json:"pending"`
	PendingCapped bool               `json:"pending_capped"`
	ElapsedHours  float64            `json:"elapsed_hours"`
	BaseRate      float64            `json:"base_rate"`
	Rate          buffs.Aggregate    `json:"rate_modifiers"`
	XP            buffs.Aggregate    `json:"xp_modifiers"`
	LiveRate      float64            `json:"live_rate"`
	NextLevelAt   int64              `json:"next_level_at"`
	CapHours      float64            `json:"cap_hours"`
	ObservedAt    time.Time          `json:"observed_at"`
}

// Snapshot reads the account without writing. Pending is what Collect would
// pay at this instant; LiveRate is the rate a recompute would store, which
// differs from the stored rate once a modifier has expired unswept.
func (s *Service) Snapshot(ctx context.Context, accountID string) (*AccountSnapshot, error) {
	repos := s.store.Repos()
	now := s.clock()

	account, err := s.loadAccount(ctx, repos, accountID)
	if err != nil {
		return nil, err
	}
	assets, err := repos.Assets.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	modifiers, err := repos.Modifiers.ListByAccount(ctx, accountID, false)
	if err != nil {
		return nil, err
	}

	pending := accrual.ComputeAccrued(account.LastSettlement, now, account.GoldRate, s.cfg.CollectionCapHours)
	bm := toBuffs(modifiers)
	base := s.baseRate(assets)
	rateAgg := buffs.Fold(bm, s.cfg.RateCategory, now)

	return &AccountSnapshot{
		Account:       account,
		Assets:        assets,
		Modifiers:     modifiers,
		Pending:       pending.Accrued,
		PendingCapped: pending.WasCapped,
		ElapsedHours:  pending.ElapsedHours,
		BaseRate:      base,
		Rate:          rateAgg,
		XP:            buffs.Fold(bm, s.cfg.XPCategory, now),
		LiveRate:      rateAgg.Apply(base),
		NextLevelAt:   s.curve.Threshold(account.Level),
		CapHours:      s.cfg.CollectionCapHours,
		ObservedAt:    now,
	}, nil
}
