// Package buffs folds time-bounded modifiers into a multiplier and a flat bonus
// per rate category.
package buffs

import (
	"sort"
	"time"
)

type Kind string

const (
	Flat       Kind = "flat"
	Percentage Kind = "percentage"
)

// Modifier is the slice of a granted buff the aggregator needs.
type Modifier struct {
	Category  string
	Kind      Kind
	Magnitude float64
	Stacks    int
	Active    bool
	ExpiresAt *time.Time
}

// Aggregate is the folded effect of every live modifier in one category.
type Aggregate struct {
	Multiplier float64 `json:"multiplier"`
	FlatBonus  float64 `json:"flat_bonus"`
}

// Identity leaves any rate unchanged.
var Identity = Aggregate{Multiplier: 1, FlatBonus: 0}

// IsLive reports whether m contributes at now. Expiry is checked here so a
// modifier whose sweep has not run yet is still excluded.
func IsLive(m Modifier, now time.Time) bool {
	if !m.Active {
		return false
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(now)
}

// Fold aggregates live modifiers targeting category. Percentage magnitudes are
// whole percents; each stack counts once. Terms are summed in sorted order so
// the result is bit-identical for any ordering of modifiers.
func Fold(modifiers []Modifier, category string, now time.Time) Aggregate {
	var deltas, flats []float64
	for _, m := range modifiers {
		if m.Category != category || !IsLive(m, now) {
			continue
		}
		stacks := float64(m.Stacks)
		switch m.Kind {
		case Percentage:
			deltas = append(deltas, m.Magnitude/100*stacks)
		case Flat:
			flats = append(flats, m.Magnitude*stacks)
		}
	}
	return Aggregate{Multiplier: 1 + sum(deltas), FlatBonus: sum(flats)}
}

func sum(terms []float64) float64 {
	sort.Float64s(terms)
	var total float64
	for _, t := range terms {
		total += t
	}
	return total
}

// Apply returns base*Multiplier + FlatBonus, floored at zero.
func (a Aggregate) Apply(base float64) float64 {
	rate := base*a.Multiplier + a.FlatBonus
	if rate < 0 {
		return 0
	}
	return rate
}

// EffectiveRate is Fold followed by Apply.
func EffectiveRate(base float64, modifiers []Modifier, category string, now time.Time) float64 {
	return Fold(modifiers, category, now).Apply(base)
}
