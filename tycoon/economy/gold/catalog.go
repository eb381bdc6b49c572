package gold

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"

	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/database/repositories"
)

const maxSuggestions = 3

// Catalog caches modifier type definitions by id.
type Catalog struct {
	cache *lru.Cache
}

func NewCatalog(size int) (*Catalog, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create modifier type cache: %w", err)
	}
	return &Catalog{cache: cache}, nil
}

// Resolve returns the type definition, loading it through types on a miss.
// Unknown ids fail with *ModifierTypeNotFoundError.
func (c *Catalog) Resolve(ctx context.Context, types repositories.ModifierTypeRepository, id string) (models.ModifierType, error) {
	if v, ok := c.cache.Get(id); ok {
		return v.(models.ModifierType), nil
	}

	mt, err := types.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return models.ModifierType{}, &ModifierTypeNotFoundError{
				TypeID:      id,
				Suggestions: c.suggest(ctx, types, id),
			}
		}
		return models.ModifierType{}, fmt.Errorf("failed to load modifier type %s: %w", id, err)
	}

	c.cache.Add(id, *mt)
	return *mt, nil
}

func (c *Catalog) Invalidate(id string) {
	c.cache.Remove(id)
}

func (c *Catalog) suggest(ctx context.Context, types repositories.ModifierTypeRepository, query string) []string {
	all, err := types.List(ctx)
	if err != nil {
		slog.Warn("Failed to list modifier types for suggestions",
			slog.String("type", "db"),
			slog.Any("error", err))
		return nil
	}

	ids := make([]string, len(all))
	for i, mt := range all {
		ids[i] = mt.ID
	}

	matches := fuzzy.Find(query, ids)
	suggestions := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return suggestions
}
