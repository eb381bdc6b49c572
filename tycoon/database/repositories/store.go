package repositories

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// Repos bundles every repository bound to the same handle, either the pool or
// an open transaction.
type Repos struct {
	Accounts      AccountRepository
	Assets        AssetRepository
	Modifiers     ModifierRepository
	ModifierTypes ModifierTypeRepository
	Settlements   SettlementRepository
}

func NewRepos(db bun.IDB) Repos {
	return Repos{
		Accounts:      NewAccountRepository(db),
		Assets:        NewAssetRepository(db),
		Modifiers:     NewModifierRepository(db),
		ModifierTypes: NewModifierTypeRepository(db),
		Settlements:   NewSettlementRepository(db),
	}
}

type Store interface {
	// RunInTx runs fn inside one database transaction; returning an error
	// rolls every write back.
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
	// Repos returns repositories outside of any transaction.
	Repos() Repos
}

type store struct {
	db    *bun.DB
	repos Repos
}

func NewStore(db *bun.DB) Store {
	return &store{db: db, repos: NewRepos(db)}
}

func (s *store) RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, NewRepos(tx))
	})
}

func (s *store) Repos() Repos {
	return s.repos
}
