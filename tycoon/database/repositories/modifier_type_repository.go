package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/mektycoon/mekgold/tycoon/database/models"
)

type ModifierTypeRepository interface {
	GetByID(ctx context.Context, id string) (*models.ModifierType, error)
	List(ctx context.Context) ([]*models.ModifierType, error)
	Upsert(ctx context.Context, modifierType *models.ModifierType) error
}

type modifierTypeRepository struct {
	BaseRepository
}

func NewModifierTypeRepository(db bun.IDB) ModifierTypeRepository {
	return &modifierTypeRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *modifierTypeRepository) GetByID(ctx context.Context, id string) (*models.ModifierType, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	modifierType := new(models.ModifierType)
	err := r.db.NewSelect().Model(modifierType).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "modifier_type", id, err)
	}
	return modifierType, nil
}

func (r *modifierTypeRepository) List(ctx context.Context) ([]*models.ModifierType, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var types []*models.ModifierType
	if err := r.db.NewSelect().Model(&types).Order("id ASC").Scan(ctx); err != nil {
		return nil, r.HandleError("list", "modifier_type", err)
	}
	return types, nil
}

func (r *modifierTypeRepository) Upsert(ctx context.Context, modifierType *models.ModifierType) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	if modifierType.CreatedAt.IsZero() {
		modifierType.CreatedAt = now
	}
	modifierType.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(modifierType).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("description = EXCLUDED.description").
		Set("category = EXCLUDED.category").
		Set("kind = EXCLUDED.kind").
		Set("default_magnitude = EXCLUDED.default_magnitude").
		Set("max_stacks = EXCLUDED.max_stacks").
		Set("default_duration = EXCLUDED.default_duration").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("upsert", "modifier_type", modifierType.ID, err)
	}
	return nil
}
