package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/mektycoon/mekgold/tycoon/database/models"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	// Update writes the account only if its stored version still equals
	// account.Version, then advances account.Version.
	Update(ctx context.Context, account *models.Account) error
	List(ctx context.Context, limit, offset int) ([]*models.Account, error)
}

type accountRepository struct {
	BaseRepository
}

func NewAccountRepository(db bun.IDB) AccountRepository {
	return &accountRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	account := new(models.Account)
	err := r.db.NewSelect().
		Model(account).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "account", id, err)
	}
	return account, nil
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = account.CreatedAt

	_, err := r.db.NewInsert().Model(account).Exec(ctx)
	if err != nil {
		slog.Error("Failed to create account",
			slog.String("type", "db"),
			slog.String("account_id", account.ID),
			slog.Any("error", err))
		return r.HandleErrorWithID("create", "account", account.ID, err)
	}
	return nil
}

func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	updatedAt := time.Now().UTC()
	res, err := r.db.NewUpdate().
		Model((*models.Account)(nil)).
		Set("role = ?", account.Role).
		Set("balance = ?", account.Balance).
		Set("gold_rate = ?", account.GoldRate).
		Set("last_settlement = ?", account.LastSettlement).
		Set("level = ?", account.Level).
		Set("experience = ?", account.Experience).
		Set("total_experience = ?", account.TotalExperience).
		Set("total_gold_collected = ?", account.TotalGoldCollected).
		Set("updated_at = ?", updatedAt).
		Set("version = version + 1").
		Where("id = ?", account.ID).
		Where("version = ?", account.Version).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("update", "account", account.ID, err)
	}
	if err := expectAffected(res); err != nil {
		slog.Debug("Account version moved underneath update",
			slog.String("type", "db"),
			slog.String("account_id", account.ID),
			slog.Int64("expected_version", account.Version))
		return err
	}

	account.Version++
	account.UpdatedAt = updatedAt
	return nil
}

func (r *accountRepository) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var accounts []*models.Account
	err := r.db.NewSelect().
		Model(&accounts).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list", "account", err)
	}
	return accounts, nil
}
