package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Settlement records one conversion of elapsed time into balance, or any other
// balance movement, for audit.
type Settlement struct {
	bun.BaseModel `bun:"table:settlements,alias:s"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	AccountID    string     `bun:"account_id,notnull" json:"account_id"`
	Kind         string     `bun:"kind,notnull" json:"kind"` // collect, recompute, spend, admin
	FromTime     time.Time  `bun:"from_time,notnull" json:"from_time"`
	ToTime       time.Time  `bun:"to_time,notnull" json:"to_time"`
	Rate         float64    `bun:"rate,notnull" json:"rate"`
	Hours        float64    `bun:"hours,notnull" json:"hours"`
	Amount       float64    `bun:"amount,notnull" json:"amount"`
	Capped       bool       `bun:"capped,notnull,default:false" json:"capped"`
	XPGained     int64      `bun:"xp_gained,notnull" json:"xp_gained"`
	BalanceAfter float64    `bun:"balance_after,notnull" json:"balance_after"`
	ArchivedAt   *time.Time `bun:"archived_at" json:"-"`
	CreatedAt    time.Time  `bun:"created_at,notnull" json:"created_at"`
}
