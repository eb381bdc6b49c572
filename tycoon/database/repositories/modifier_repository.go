package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/models"
)

type ModifierRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Modifier, error)
	// ListByAccount returns modifiers flagged active, or every modifier when
	// includeInactive is set. Expiry is left to the caller.
	ListByAccount(ctx context.Context, accountID string, includeInactive bool) ([]*models.Modifier, error)
	// FindLive returns the active, unexpired modifier for a stacking key.
	FindLive(ctx context.Context, accountID, typeID, source string, now time.Time) (*models.Modifier, error)
	Create(ctx context.Context, modifier *models.Modifier) error
	UpdateStack(ctx context.Context, modifier *models.Modifier) error
	Deactivate(ctx context.Context, id int64, reason string, at time.Time) error
	ListExpired(ctx context.Context, now time.Time, limit int) ([]*models.Modifier, error)
	// DeactivateExpired flips only the given rows that are still active and
	// expired at now, returning the number changed.
	DeactivateExpired(ctx context.Context, ids []int64, now time.Time) (int64, error)
}

type modifierRepository struct {
	BaseRepository
}

func NewModifierRepository(db bun.IDB) ModifierRepository {
	return &modifierRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *modifierRepository) GetByID(ctx context.Context, id int64) (*models.Modifier, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	modifier := new(models.Modifier)
	err := r.db.NewSelect().Model(modifier).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "modifier", id, err)
	}
	return modifier, nil
}

func (r *modifierRepository) ListByAccount(ctx context.Context, accountID string, includeInactive bool) ([]*models.Modifier, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var modifiers []*models.Modifier
	q := r.db.NewSelect().
		Model(&modifiers).
		Where("account_id = ?", accountID).
		Order("id ASC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, r.HandleErrorWithID("list", "modifier", accountID, err)
	}
	return modifiers, nil
}

func (r *modifierRepository) FindLive(ctx context.Context, accountID, typeID, source string, now time.Time) (*models.Modifier, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	modifier := new(models.Modifier)
	err := r.db.NewSelect().
		Model(modifier).
		Where("account_id = ?", accountID).
		Where("type_id = ?", typeID).
		Where("source = ?", source).
		Where("active = ?", true).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("expires_at IS NULL").WhereOr("expires_at > ?", now)
		}).
		Order("id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("find", "modifier", typeID+"/"+source, err)
	}
	return modifier, nil
}

func (r *modifierRepository) Create(ctx context.Context, modifier *models.Modifier) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	modifier.UpdatedAt = modifier.ActivatedAt
	if _, err := r.db.NewInsert().Model(modifier).Exec(ctx); err != nil {
		slog.Error("Failed to create modifier",
			slog.String("type", "db"),
			slog.String("account_id", modifier.AccountID),
			slog.String("modifier_type", modifier.TypeID),
			slog.Any("error", err))
		return r.HandleError("create", "modifier", err)
	}
	return nil
}

func (r *modifierRepository) UpdateStack(ctx context.Context, modifier *models.Modifier) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	modifier.UpdatedAt = time.Now().UTC()
	res, err := r.db.NewUpdate().
		Model((*models.Modifier)(nil)).
		Set("stacks = ?", modifier.Stacks).
		Set("magnitude = ?", modifier.Magnitude).
		Set("expires_at = ?", modifier.ExpiresAt).
		Set("updated_at = ?", modifier.UpdatedAt).
		Where("id = ?", modifier.ID).
		Where("active = ?", true).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("update", "modifier", modifier.ID, err)
	}
	return expectAffected(res)
}

func (r *modifierRepository) Deactivate(ctx context.Context, id int64, reason string, at time.Time) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Modifier)(nil)).
		Set("active = ?", false).
		Set("deactivated_at = ?", at).
		Set("deactivated_reason = ?", reason).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Where("active = ?", true).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("deactivate", "modifier", id, err)
	}
	return expectAffected(res)
}

func (r *modifierRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*models.Modifier, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var modifiers []*models.Modifier
	err := r.db.NewSelect().
		Model(&modifiers).
		Where("active = ?", true).
		Where("expires_at IS NOT NULL").
		Where("expires_at <= ?", now).
		Order("expires_at ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list_expired", "modifier", err)
	}
	return modifiers, nil
}

func (r *modifierRepository) DeactivateExpired(ctx context.Context, ids []int64, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Modifier)(nil)).
		Set("active = ?", false).
		Set("deactivated_at = ?", now).
		Set("deactivated_reason = ?", config.ReasonExpired).
		Set("updated_at = ?", now).
		Where("id IN (?)", bun.In(ids)).
		Where("active = ?", true).
		Where("expires_at IS NOT NULL").
		Where("expires_at <= ?", now).
		Exec(ctx)
	if err != nil {
		return 0, r.HandleError("deactivate_expired", "modifier", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.HandleError("deactivate_expired", "modifier", err)
	}

	slog.Debug("Expired modifiers deactivated",
		slog.String("type", "db"),
		slog.Int("candidates", len(ids)),
		slog.Int64("deactivated", n))
	return n, nil
}
