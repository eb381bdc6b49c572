package gold

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
	"github.com/mektycoon/mekgold/tycoon/logger"
)

// EnsureAccount returns the account, creating it on first contact with its
// settlement clock started at now.
func (s *Service) EnsureAccount(ctx context.Context, accountID string) (*models.Account, bool, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, false, ErrInvalidAccountID
	}

	var account *models.Account
	var created bool
	err := s.store.RunInTx(ctx, func(ctx context.Context, repos repositories.Repos) error {
		existing, err := repos.Accounts.GetByID(ctx, accountID)
		if err == nil {
			account, created = existing, false
			return nil
		}
		if !repositories.IsNotFound(err) {
			return err
		}

		now := s.clock()
		account = &models.Account{
			ID:             accountID,
			Role:           config.RolePlayer,
			LastSettlement: now,
			Level:          config.StartingLevel,
			CreatedAt:      now,
		}
		created = true
		return repos.Accounts.Create(ctx, account)
	})
	if err != nil {
		// A concurrent first contact may have inserted the row first.
		if existing, getErr := s.store.Repos().Accounts.GetByID(ctx, accountID); getErr == nil {
			return existing, false, nil
		}
		return nil, false, err
	}

	if created {
		logger.LogEconomy("Account created", "account_id", accountID)
	}
	return account, created, nil
}

// GetAccount reads an account without side effects.
func (s *Service) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	return s.loadAccount(ctx, s.store.Repos(), accountID)
}

// ListSettlements returns the newest ledger rows for an account.
func (s *Service) ListSettlements(ctx context.Context, accountID string, limit int) ([]*models.Settlement, error) {
	repos := s.store.Repos()
	if _, err := s.loadAccount(ctx, repos, accountID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return repos.Settlements.ListByAccount(ctx, accountID, limit)
}

type AssetResult struct {
	Asset     *models.Asset    `json:"-"`
	Recompute *RecomputeResult `json:"recompute"`
}

// AcquireAsset adds a Mek to the account and switches the rate to include it.
func (s *Service) AcquireAsset(ctx context.Context, accountID, name string, level int) (*AssetResult, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	var result *AssetResult
	err := s.atomically(ctx, "acquire_asset", accountID, func(ctx context.Context, repos repositories.Repos, now time.Time) error {
		account, err := s.loadAccount(ctx, repos, accountID)
		if err != nil {
			return err
		}

		asset := &models.Asset{AccountID: accountID, Name: name, Level: level, AcquiredAt: now}
		if err := repos.Assets.Create(ctx, asset); err != nil {
			return err
		}

		rc, err := s.settleAndSwitch(ctx, repos, account, now)
		if err != nil {
			return err
		}
		result = &AssetResult{Asset: asset, Recompute: rc}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetAssetLevel changes a Mek's level and switches the rate to match.
func (s *Service) SetAssetLevel(ctx context.Context, accountID string, assetID int64, level int) (*AssetResult, error) {
	if level < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	var result *AssetResult
	err := s.atomically(ctx, "set_asset_level", accountID, func(ctx context.Context, repos repositories.Repos, now time.Time) error {
		account, err := s.loadAccount(ctx, repos, accountID)
		if err != nil {
			return err
		}

		asset, err := repos.Assets.GetByID(ctx, assetID)
		if err != nil {
			return notFoundAs(err, ErrAssetNotFound, assetID)
		}
		if asset.AccountID != accountID {
			return fmt.Errorf("%w: %d", ErrAssetNotFound, assetID)
		}

		if err := repos.Assets.UpdateLevel(ctx, assetID, level); err != nil {
			return notFoundAs(err, ErrAssetNotFound, assetID)
		}
		asset.Level = level

		rc, err := s.settleAndSwitch(ctx, repos, account, now)
		if err != nil {
			return err
		}
		result = &AssetResult{Asset: asset, Recompute: rc}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListAssets returns the account's Meks.
func (s *Service) ListAssets(ctx context.Context, accountID string) ([]*models.Asset, error) {
	repos := s.store.Repos()
	if _, err := s.loadAccount(ctx, repos, accountID); err != nil {
		return nil, err
	}
	return repos.Assets.ListByAccount(ctx, accountID)
}
