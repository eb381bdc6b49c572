package gold

import "github.com/mektycoon/mekgold/tycoon/config"

// Config holds the economy tunables. It is an immutable value handed to the
// service at construction.
type Config struct {
	CollectionCapHours float64 `toml:"collection_cap_hours"`
	BaseUnitRate       float64 `toml:"base_unit_rate"`
	GoldPerXP          float64 `toml:"gold_per_xp"`
	BaseXPPerLevel     int64   `toml:"base_xp_per_level"`
	MaxRetries         int     `toml:"max_retries"`
	RateCategory       string  `toml:"rate_category"`
	XPCategory         string  `toml:"xp_category"`
	SweepBatchSize     int     `toml:"sweep_batch_size"`
	SweepConcurrency   int     `toml:"sweep_concurrency"`
	TypeCacheSize      int     `toml:"type_cache_size"`
}

func DefaultConfig() Config {
	return Config{
		CollectionCapHours: config.DefaultCollectionCapHours,
		BaseUnitRate:       config.DefaultBaseUnitRate,
		GoldPerXP:          config.DefaultGoldPerXP,
		BaseXPPerLevel:     config.DefaultBaseXPPerLevel,
		MaxRetries:         config.MaxRetries,
		RateCategory:       config.CategoryGoldRate,
		XPCategory:         config.CategoryXPGain,
		SweepBatchSize:     config.SweepBatchSize,
		SweepConcurrency:   config.SweepConcurrency,
		TypeCacheSize:      config.ModifierTypeCacheSize,
	}
}

// WithDefaults fills every unset field from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.CollectionCapHours <= 0 {
		c.CollectionCapHours = d.CollectionCapHours
	}
	if c.BaseUnitRate <= 0 {
		c.BaseUnitRate = d.BaseUnitRate
	}
	if c.GoldPerXP <= 0 {
		c.GoldPerXP = d.GoldPerXP
	}
	if c.BaseXPPerLevel <= 0 {
		c.BaseXPPerLevel = d.BaseXPPerLevel
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.RateCategory == "" {
		c.RateCategory = d.RateCategory
	}
	if c.XPCategory == "" {
		c.XPCategory = d.XPCategory
	}
	if c.SweepBatchSize <= 0 {
		c.SweepBatchSize = d.SweepBatchSize
	}
	if c.SweepConcurrency <= 0 {
		c.SweepConcurrency = d.SweepConcurrency
	}
	if c.TypeCacheSize <= 0 {
		c.TypeCacheSize = d.TypeCacheSize
	}
	return c
}
