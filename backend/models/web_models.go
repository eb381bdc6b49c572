package models

import (
	"time"

	"github.com/mektycoon/mekgold/tycoon/database/models"
	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AcquireAssetRequest struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type SetAssetLevelRequest struct {
	Level int `json:"level"`
}

type GrantModifierRequest struct {
	Type       string   `json:"type"`
	Source     string   `json:"source"`
	Magnitude  *float64 `json:"magnitude,omitempty"`
	// DurationMs overrides the type's duration; 0 grants a permanent modifier.
	DurationMs *int64   `json:"duration_ms,omitempty"`
}

type SpendRequest struct {
	Amount float64 `json:"amount"`
}

// AccountUpdateRequest selects one administrative update by Type.
type AccountUpdateRequest struct {
	Type   string   `json:"type"` // set_balance, set_role, set_level, reset_accrual_clock
	Amount *float64 `json:"amount,omitempty"`
	Role   string   `json:"role,omitempty"`
	Level  *int     `json:"level,omitempty"`
}

type ModifierTypeRequest struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	Kind               string  `json:"kind"`
	DefaultMagnitude   float64 `json:"default_magnitude"`
	MaxStacks          int     `json:"max_stacks"`
	DefaultDurationSec int64   `json:"default_duration_seconds"`
}

func (r ModifierTypeRequest) ToModel() *models.ModifierType {
	return &models.ModifierType{
		ID:               r.ID,
		Name:             r.Name,
		Description:      r.Description,
		Category:         r.Category,
		Kind:             r.Kind,
		DefaultMagnitude: r.DefaultMagnitude,
		MaxStacks:        r.MaxStacks,
		DefaultDuration:  r.DefaultDurationSec,
	}
}

type AccountView struct {
	ID                 string    `json:"id"`
	Role               string    `json:"role"`
	Balance            float64   `json:"balance"`
	GoldRate           float64   `json:"gold_rate"`
	LastSettlement     time.Time `json:"last_settlement"`
	Level              int       `json:"level"`
	Experience         int64     `json:"experience"`
	TotalExperience    int64     `json:"total_experience"`
	TotalGoldCollected float64   `json:"total_gold_collected"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewAccountView(a *models.Account) AccountView {
	return AccountView{
		ID:                 a.ID,
		Role:               a.Role,
		Balance:            a.Balance,
		GoldRate:           a.GoldRate,
		LastSettlement:     a.LastSettlement,
		Level:              a.Level,
		Experience:         a.Experience,
		TotalExperience:    a.TotalExperience,
		TotalGoldCollected: a.TotalGoldCollected,
		CreatedAt:          a.CreatedAt,
	}
}

type AssetView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Level      int       `json:"level"`
	AcquiredAt time.Time `json:"acquired_at"`
}

func NewAssetView(a *models.Asset) AssetView {
	return AssetView{ID: a.ID, Name: a.Name, Level: a.Level, AcquiredAt: a.AcquiredAt}
}

func NewAssetViews(assets []*models.Asset) []AssetView {
	out := make([]AssetView, len(assets))
	for i, a := range assets {
		out[i] = NewAssetView(a)
	}
	return out
}

type ModifierView struct {
	ID                int64      `json:"id"`
	Type              string     `json:"type"`
	Source            string     `json:"source"`
	Category          string     `json:"category"`
	Kind              string     `json:"kind"`
	Magnitude         float64    `json:"magnitude"`
	Stacks            int        `json:"stacks"`
	Active            bool       `json:"active"`
	ActivatedAt       time.Time  `json:"activated_at"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	DeactivatedAt     *time.Time `json:"deactivated_at,omitempty"`
	DeactivatedReason string     `json:"deactivated_reason,omitempty"`
}

func NewModifierView(m *models.Modifier) ModifierView {
	return ModifierView{
		ID:                m.ID,
		Type:              m.TypeID,
		Source:            m.Source,
		Category:          m.Category,
		Kind:              m.Kind,
		Magnitude:         m.Magnitude,
		Stacks:            m.Stacks,
		Active:            m.Active,
		ActivatedAt:       m.ActivatedAt,
		ExpiresAt:         m.ExpiresAt,
		DeactivatedAt:     m.DeactivatedAt,
		DeactivatedReason: m.DeactivatedReason,
	}
}

func NewModifierViews(mods []*models.Modifier) []ModifierView {
	out := make([]ModifierView, len(mods))
	for i, m := range mods {
		out[i] = NewModifierView(m)
	}
	return out
}

// AccountDetail is the account endpoint payload: the stored account plus
// what a collect would pay right now.
type AccountDetail struct {
	Account   AccountView           `json:"account"`
	Assets    []AssetView           `json:"assets"`
	Modifiers []ModifierView        `json:"modifiers"`
	Live      *gold.AccountSnapshot `json:"live"`
}

type GrantModifierResponse struct {
	*gold.GrantResult
	Modifier ModifierView `json:"modifier"`
}

type RevokeModifierResponse struct {
	*gold.RevokeResult
	Modifier ModifierView `json:"modifier"`
}

type AssetResponse struct {
	*gold.AssetResult
	Asset AssetView `json:"asset"`
}
