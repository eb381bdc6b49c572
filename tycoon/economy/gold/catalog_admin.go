package gold

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/logger"
)

// DefaultModifierTypes is the starter catalog seeded into a fresh database.
func DefaultModifierTypes() []models.ModifierType {
	return []models.ModifierType{
		{
			ID:               "gold_rush",
			Name:             "Gold Rush",
			Description:      "Boosts gold generation by 25% per stack",
			Category:         config.CategoryGoldRate,
			Kind:             models.KindPercentage,
			DefaultMagnitude: 25,
			MaxStacks:        3,
			DefaultDuration:  int64(time.Hour / time.Second),
		},
		{
			ID:               "mek_overdrive",
			Name:             "Mek Overdrive",
			Description:      "Adds 5 gold per hour per stack",
			Category:         config.CategoryGoldRate,
			Kind:             models.KindFlat,
			DefaultMagnitude: 5,
			MaxStacks:        5,
			DefaultDuration:  int64(2 * time.Hour / time.Second),
		},
		{
			ID:               "guild_blessing",
			Name:             "Guild Blessing",
			Description:      "Permanent 10% gold generation bonus",
			Category:         config.CategoryGoldRate,
			Kind:             models.KindPercentage,
			DefaultMagnitude: 10,
			MaxStacks:        1,
		},
		{
			ID:               "scholar_focus",
			Name:             "Scholar Focus",
			Description:      "Increases experience from collections by 50% per stack",
			Category:         config.CategoryXPGain,
			Kind:             models.KindPercentage,
			DefaultMagnitude: 50,
			MaxStacks:        2,
			DefaultDuration:  int64(30 * time.Minute / time.Second),
		},
		{
			ID:               "xp_tonic",
			Name:             "XP Tonic",
			Description:      "Flat experience tonic",
			Category:         config.CategoryXPGain,
			Kind:             models.KindFlat,
			DefaultMagnitude: 10,
			MaxStacks:        3,
			DefaultDuration:  int64(time.Hour / time.Second),
		},
	}
}

// ValidateModifierType checks a definition before it is stored.
func ValidateModifierType(mt *models.ModifierType) error {
	switch {
	case strings.TrimSpace(mt.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidModifierType)
	case strings.TrimSpace(mt.Category) == "":
		return fmt.Errorf("%w: %s has no category", ErrInvalidModifierType, mt.ID)
	case mt.Kind != models.KindFlat && mt.Kind != models.KindPercentage:
		return fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidModifierType, mt.ID, mt.Kind)
	case mt.MaxStacks < 1:
		return fmt.Errorf("%w: %s max stacks must be at least 1", ErrInvalidModifierType, mt.ID)
	case mt.DefaultDuration < 0:
		return fmt.Errorf("%w: %s has negative duration", ErrInvalidModifierType, mt.ID)
	case math.IsNaN(mt.DefaultMagnitude) || math.IsInf(mt.DefaultMagnitude, 0):
		return fmt.Errorf("%w: %s magnitude is not finite", ErrInvalidModifierType, mt.ID)
	}
	return nil
}

// UpsertModifierType stores a definition and drops any cached copy. Existing
// modifiers keep the category, kind and magnitude they were granted with.
func (s *Service) UpsertModifierType(ctx context.Context, mt *models.ModifierType) error {
	if err := ValidateModifierType(mt); err != nil {
		return err
	}
	if mt.Name == "" {
		mt.Name = mt.ID
	}
	if err := s.store.Repos().ModifierTypes.Upsert(ctx, mt); err != nil {
		return err
	}
	s.catalog.Invalidate(mt.ID)
	return nil
}

// SeedModifierTypes upserts the default catalog and returns how many
// definitions were written.
func (s *Service) SeedModifierTypes(ctx context.Context) (int, error) {
	defaults := DefaultModifierTypes()
	for i := range defaults {
		if err := s.UpsertModifierType(ctx, &defaults[i]); err != nil {
			return i, fmt.Errorf("failed to seed modifier type %s: %w", defaults[i].ID, err)
		}
	}
	logger.LogSystem("Modifier types seeded", "count", len(defaults))
	return len(defaults), nil
}

func (s *Service) ListModifierTypes(ctx context.Context) ([]*models.ModifierType, error) {
	return s.store.Repos().ModifierTypes.List(ctx)
}

// GetModifierType resolves a definition through the catalog cache.
func (s *Service) GetModifierType(ctx context.Context, id string) (models.ModifierType, error) {
	return s.catalog.Resolve(ctx, s.store.Repos().ModifierTypes, id)
}
