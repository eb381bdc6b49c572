package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/mektycoon/mekgold/tycoon/database/models"
)

type SettlementRepository interface {
	Create(ctx context.Context, settlement *models.Settlement) error
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*models.Settlement, error)
	ListUnarchived(ctx context.Context, before time.Time, limit int) ([]*models.Settlement, error)
	MarkArchived(ctx context.Context, ids []int64, at time.Time) (int64, error)
}

type settlementRepository struct {
	BaseRepository
}

func NewSettlementRepository(db bun.IDB) SettlementRepository {
	return &settlementRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *settlementRepository) Create(ctx context.Context, settlement *models.Settlement) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if settlement.CreatedAt.IsZero() {
		settlement.CreatedAt = settlement.ToTime
	}
	if _, err := r.db.NewInsert().Model(settlement).Exec(ctx); err != nil {
		return r.HandleErrorWithID("create", "settlement", settlement.AccountID, err)
	}
	return nil
}

func (r *settlementRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*models.Settlement, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var settlements []*models.Settlement
	err := r.db.NewSelect().
		Model(&settlements).
		Where("account_id = ?", accountID).
		Order("id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("list", "settlement", accountID, err)
	}
	return settlements, nil
}

func (r *settlementRepository) ListUnarchived(ctx context.Context, before time.Time, limit int) ([]*models.Settlement, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var settlements []*models.Settlement
	err := r.db.NewSelect().
		Model(&settlements).
		Where("archived_at IS NULL").
		Where("created_at < ?", before).
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list_unarchived", "settlement", err)
	}
	return settlements, nil
}

func (r *settlementRepository) MarkArchived(ctx context.Context, ids []int64, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Settlement)(nil)).
		Set("archived_at = ?", at).
		Where("id IN (?)", bun.In(ids)).
		Where("archived_at IS NULL").
		Exec(ctx)
	if err != nil {
		return 0, r.HandleError("mark_archived", "settlement", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.HandleError("mark_archived", "settlement", err)
	}
	return n, nil
}
