package gold

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
	"github.com/mektycoon/mekgold/tycoon/logger"
)

type SpendResult struct {
	AccountID string  `json:"account_id"`
	Spent     float64 `json:"spent"`
	Balance   float64 `json:"balance"`
}

// Spend debits collected gold. Uncollected accrual is not spendable.
func (s *Service) Spend(ctx context.Context, accountID string, amount float64) (*SpendResult, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	var result *SpendResult
	err := s.atomically(ctx, "spend", accountID, func(ctx context.Context, repos repositories.Repos, now time.Time) error {
		account, err := s.loadAccount(ctx, repos, accountID)
		if err != nil {
			return err
		}
		if account.Balance < amount {
			return fmt.Errorf("%w: have %.2f, need %.2f", ErrInsufficientBalance, account.Balance, amount)
		}

		account.Balance -= amount
		if err := repos.Accounts.Update(ctx, account); err != nil {
			return err
		}

		err = s.record(ctx, repos, &models.Settlement{
			AccountID:    account.ID,
			Kind:         config.SettlementSpend,
			FromTime:     now,
			ToTime:       now,
			Rate:         account.GoldRate,
			Amount:       -amount,
			BalanceAfter: account.Balance,
		})
		if err != nil {
			return err
		}

		result = &SpendResult{AccountID: account.ID, Spent: amount, Balance: account.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.LogEconomy("Gold spent", "account_id", accountID, "amount", amount, "balance", result.Balance)
	return result, nil
}

// AccountUpdate is an administrative change to an account. The set of
// updates is closed; each variant validates itself and applies to a loaded
// account inside the update transaction.
type AccountUpdate interface {
	Name() string
	apply(account *models.Account, now time.Time) error
}

// SetBalance overwrites the collected balance. Pending accrual is untouched.
type SetBalance struct {
	Amount float64
}

func (SetBalance) Name() string { return "set_balance" }

func (u SetBalance) apply(account *models.Account, _ time.Time) error {
	if u.Amount < 0 || math.IsNaN(u.Amount) || math.IsInf(u.Amount, 0) {
		return fmt.Errorf("%w: balance %v", ErrInvalidUpdate, u.Amount)
	}
	account.Balance = u.Amount
	return nil
}

type SetRole struct {
	Role string
}

func (SetRole) Name() string { return "set_role" }

func (u SetRole) apply(account *models.Account, _ time.Time) error {
	switch u.Role {
	case config.RolePlayer, config.RoleAdmin:
		account.Role = u.Role
		return nil
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidUpdate, u.Role)
	}
}

// SetLevel moves the account to a level with no progress into it.
type SetLevel struct {
	Level int
}

func (SetLevel) Name() string { return "set_level" }

func (u SetLevel) apply(account *models.Account, _ time.Time) error {
	if u.Level < 1 {
		return fmt.Errorf("%w: level %d", ErrInvalidUpdate, u.Level)
	}
	account.Level = u.Level
	account.Experience = 0
	return nil
}

// ResetAccrualClock forfeits everything accrued since the last settlement.
type ResetAccrualClock struct{}

func (ResetAccrualClock) Name() string { return "reset_accrual_clock" }

func (ResetAccrualClock) apply(account *models.Account, now time.Time) error {
	account.LastSettlement = now
	return nil
}

// ApplyAccountUpdate applies one administrative update and records it in the
// settlement ledger.
func (s *Service) ApplyAccountUpdate(ctx context.Context, accountID string, update AccountUpdate) (*models.Account, error) {
	if update == nil {
		return nil, fmt.Errorf("%w: nil update", ErrInvalidUpdate)
	}

	var account *models.Account
	err := s.atomically(ctx, update.Name(), accountID, func(ctx context.Context, repos repositories.Repos, now time.Time) error {
		var err error
		account, err = s.loadAccount(ctx, repos, accountID)
		if err != nil {
			return err
		}

		from := account.LastSettlement
		before := account.Balance
		if err := update.apply(account, now); err != nil {
			return err
		}
		if err := repos.Accounts.Update(ctx, account); err != nil {
			return err
		}

		return s.record(ctx, repos, &models.Settlement{
			AccountID:    account.ID,
			Kind:         config.SettlementAdmin,
			FromTime:     from,
			ToTime:       now,
			Rate:         account.GoldRate,
			Amount:       account.Balance - before,
			BalanceAfter: account.Balance,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.LogEconomy("Account updated", "account_id", accountID, "update", update.Name())
	return account, nil
}
