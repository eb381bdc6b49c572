package buffs

import (
	"math/rand"
	"testing"
	"time"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestFold(t *testing.T) {
	tests := []struct {
		name      string
		modifiers []Modifier
		category  string
		want      Aggregate
	}{
		{
			name:     "empty is identity",
			category: "gold_rate",
			want:     Identity,
		},
		{
			name: "flat and percentage",
			modifiers: []Modifier{
				{Category: "gold_rate", Kind: Flat, Magnitude: 3, Stacks: 1, Active: true},
				{Category: "gold_rate", Kind: Percentage, Magnitude: 50, Stacks: 1, Active: true},
			},
			category: "gold_rate",
			want:     Aggregate{Multiplier: 1.5, FlatBonus: 3},
		},
		{
			name: "stacks multiply magnitude",
			modifiers: []Modifier{
				{Category: "gold_rate", Kind: Percentage, Magnitude: 25, Stacks: 3, Active: true},
				{Category: "gold_rate", Kind: Flat, Magnitude: 2, Stacks: 4, Active: true},
			},
			category: "gold_rate",
			want:     Aggregate{Multiplier: 1.75, FlatBonus: 8},
		},
		{
			name: "other categories ignored",
			modifiers: []Modifier{
				{Category: "xp_gain", Kind: Percentage, Magnitude: 100, Stacks: 1, Active: true},
			},
			category: "gold_rate",
			want:     Identity,
		},
		{
			name: "inactive ignored",
			modifiers: []Modifier{
				{Category: "gold_rate", Kind: Flat, Magnitude: 10, Stacks: 1, Active: false},
			},
			category: "gold_rate",
			want:     Identity,
		},
		{
			name: "expired one millisecond ago ignored even when active",
			modifiers: []Modifier{
				{Category: "gold_rate", Kind: Percentage, Magnitude: 50, Stacks: 1, Active: true, ExpiresAt: at(-time.Millisecond)},
			},
			category: "gold_rate",
			want:     Identity,
		},
		{
			name: "expiring exactly now ignored",
			modifiers: []Modifier{
				{Category: "gold_rate", Kind: Flat, Magnitude: 5, Stacks: 1, Active: true, ExpiresAt: at(0)},
			},
			category: "gold_rate",
			want:     Identity,
		},
		{
			name: "future expiry counts",
			modifiers: []Modifier{
				{Category: "gold_rate", Kind: Flat, Magnitude: 5, Stacks: 1, Active: true, ExpiresAt: at(time.Millisecond)},
			},
			category: "gold_rate",
			want:     Aggregate{Multiplier: 1, FlatBonus: 5},
		},
		{
			name: "negative percentage",
			modifiers: []Modifier{
				{Category: "gold_rate", Kind: Percentage, Magnitude: -25, Stacks: 1, Active: true},
			},
			category: "gold_rate",
			want:     Aggregate{Multiplier: 0.75, FlatBonus: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.modifiers, tt.category, now); got != tt.want {
				t.Errorf("Fold() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFold_OrderIndependent(t *testing.T) {
	modifiers := []Modifier{
		{Category: "gold_rate", Kind: Percentage, Magnitude: 12.3, Stacks: 2, Active: true},
		{Category: "gold_rate", Kind: Percentage, Magnitude: 0.7, Stacks: 1, Active: true},
		{Category: "gold_rate", Kind: Percentage, Magnitude: 33.3, Stacks: 3, Active: true},
		{Category: "gold_rate", Kind: Flat, Magnitude: 0.1, Stacks: 1, Active: true},
		{Category: "gold_rate", Kind: Flat, Magnitude: 0.2, Stacks: 5, Active: true},
		{Category: "gold_rate", Kind: Flat, Magnitude: 1e-9, Stacks: 1, Active: true},
		{Category: "gold_rate", Kind: Flat, Magnitude: 7, Stacks: 1, Active: true, ExpiresAt: at(-time.Hour)},
		{Category: "xp_gain", Kind: Percentage, Magnitude: 40, Stacks: 1, Active: true},
	}
	want := Fold(modifiers, "gold_rate", now)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		shuffled := append([]Modifier(nil), modifiers...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := Fold(shuffled, "gold_rate", now); got != want {
			t.Fatalf("permutation %d: Fold() = %+v, want %+v", i, got, want)
		}
	}
}

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name      string
		base      float64
		modifiers []Modifier
		want      float64
	}{
		{
			name: "multiply before adding flat",
			base: 7,
			modifiers: []Modifier{
				{Category: "gold_rate", Kind: Flat, Magnitude: 3, Stacks: 1, Active: true},
				{Category: "gold_rate", Kind: Percentage, Magnitude: 50, Stacks: 1, Active: true},
			},
			want: 13.5,
		},
		{
			name: "no modifiers keeps base",
			base: 42,
			want: 42,
		},
		{
			name: "floored at zero",
			base: 10,
			modifiers: []Modifier{
				{Category: "gold_rate", Kind: Flat, Magnitude: -50, Stacks: 1, Active: true},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveRate(tt.base, tt.modifiers, "gold_rate", now); got != tt.want {
				t.Errorf("EffectiveRate() = %v, want %v", got, tt.want)
			}
		})
	}
}
