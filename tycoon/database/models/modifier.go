package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	KindFlat       = "flat"
	KindPercentage = "percentage"
)

// ModifierType describes a grantable buff: what it targets, how it applies and
// how far it may stack.
type ModifierType struct {
	bun.BaseModel `bun:"table:modifier_types,alias:mt"`

	ID               string    `bun:"id,pk"`
	Name             string    `bun:"name,notnull"`
	Description      string    `bun:"description,notnull"`
	Category         string    `bun:"category,notnull"`
	Kind             string    `bun:"kind,notnull"` // flat, percentage
	DefaultMagnitude float64   `bun:"default_magnitude,notnull"`
	MaxStacks        int       `bun:"max_stacks,notnull"`
	DefaultDuration  int64     `bun:"default_duration,notnull"` // in seconds, 0 = permanent
	CreatedAt        time.Time `bun:"created_at,notnull"`
	UpdatedAt        time.Time `bun:"updated_at,notnull"`
}

// Modifier is a granted buff. Rows are soft-deactivated, never deleted.
type Modifier struct {
	bun.BaseModel `bun:"table:modifiers,alias:m"`

	ID                int64      `bun:"id,pk,autoincrement"`
	AccountID         string     `bun:"account_id,notnull"`
	TypeID            string     `bun:"type_id,notnull"`
	Source            string     `bun:"source,notnull"`
	Category          string     `bun:"category,notnull"`
	Kind              string     `bun:"kind,notnull"`
	Magnitude         float64    `bun:"magnitude,notnull"`
	Stacks            int        `bun:"stacks,notnull"`
	Active            bool       `bun:"active,notnull,default:false"`
	ActivatedAt       time.Time  `bun:"activated_at,notnull"`
	ExpiresAt         *time.Time `bun:"expires_at"`
	DeactivatedAt     *time.Time `bun:"deactivated_at"`
	DeactivatedReason string     `bun:"deactivated_reason,notnull"`
	UpdatedAt         time.Time  `bun:"updated_at,notnull"`
}

// Permanent reports whether the modifier has no expiration.
func (m *Modifier) Permanent() bool {
	return m.ExpiresAt == nil
}
