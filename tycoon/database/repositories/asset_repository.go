package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/mektycoon/mekgold/tycoon/database/models"
)

type AssetRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Asset, error)
	ListByAccount(ctx context.Context, accountID string) ([]*models.Asset, error)
	Create(ctx context.Context, asset *models.Asset) error
	UpdateLevel(ctx context.Context, id int64, level int) error
}

type assetRepository struct {
	BaseRepository
}

func NewAssetRepository(db bun.IDB) AssetRepository {
	return &assetRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *assetRepository) GetByID(ctx context.Context, id int64) (*models.Asset, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	asset := new(models.Asset)
	err := r.db.NewSelect().Model(asset).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "asset", id, err)
	}
	return asset, nil
}

func (r *assetRepository) ListByAccount(ctx context.Context, accountID string) ([]*models.Asset, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var assets []*models.Asset
	err := r.db.NewSelect().
		Model(&assets).
		Where("account_id = ?", accountID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("list", "asset", accountID, err)
	}
	return assets, nil
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if asset.AcquiredAt.IsZero() {
		asset.AcquiredAt = time.Now().UTC()
	}
	asset.UpdatedAt = asset.AcquiredAt

	if _, err := r.db.NewInsert().Model(asset).Exec(ctx); err != nil {
		return r.HandleError("create", "asset", err)
	}
	return nil
}

func (r *assetRepository) UpdateLevel(ctx context.Context, id int64, level int) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Asset)(nil)).
		Set("level = ?", level).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("update", "asset", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "asset", ID: id}
	}
	return nil
}
