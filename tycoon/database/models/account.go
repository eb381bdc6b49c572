package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Account is a player's gold ledger head. Balance, GoldRate and LastSettlement
// only change together, guarded by Version.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID                 string    `bun:"id,pk"`
	Role               string    `bun:"role,notnull"`
	Balance            float64   `bun:"balance,notnull"`
	GoldRate           float64   `bun:"gold_rate,notnull"`
	LastSettlement     time.Time `bun:"last_settlement,notnull"`
	Level              int       `bun:"level,notnull"`
	Experience         int64     `bun:"experience,notnull"`
	TotalExperience    int64     `bun:"total_experience,notnull"`
	TotalGoldCollected float64   `bun:"total_gold_collected,notnull"`
	Version            int64     `bun:"version,notnull"`
	CreatedAt          time.Time `bun:"created_at,notnull"`
	UpdatedAt          time.Time `bun:"updated_at,notnull"`
}

// Asset is a resource-generating Mek owned by an account.
type Asset struct {
	bun.BaseModel `bun:"table:assets,alias:ast"`

	ID         int64     `bun:"id,pk,autoincrement"`
	AccountID  string    `bun:"account_id,notnull"`
	Name       string    `bun:"name,notnull"`
	Level      int       `bun:"level,notnull"`
	AcquiredAt time.Time `bun:"acquired_at,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
}
