package config

import "time"

// Application-wide constants organized by domain

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 30 * time.Second
	SchemaInitTimeout   = 2 * time.Minute
	NetworkDialTimeout  = 5 * time.Second
	ShutdownTimeout     = 15 * time.Second

	// Cache settings
	ModifierTypeCacheSize = 256

	// Batch processing
	SweepBatchSize   = 500
	ArchiveBatchSize = 1000
)

// Economy Constants
const (
	// Accrual
	DefaultCollectionCapHours = 72.0
	DefaultBaseUnitRate       = 1.0

	// Experience
	DefaultGoldPerXP      = 10.0
	DefaultBaseXPPerLevel = 100
	StartingLevel         = 1

	// Rate categories
	CategoryGoldRate = "gold_rate"
	CategoryXPGain   = "xp_gain"
)

// Concurrency Constants
const (
	MaxRetries       = 3
	RetryBaseDelay   = 10 * time.Millisecond
	RetryMaxDelay    = 200 * time.Millisecond
	SweepConcurrency = 8
	SweepInterval    = time.Minute
)

// Account Roles
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// Settlement kinds recorded in the ledger
const (
	SettlementCollect   = "collect"
	SettlementRecompute = "recompute"
	SettlementSpend     = "spend"
	SettlementAdmin     = "admin"
)

// Modifier deactivation reasons
const (
	ReasonRevoked = "revoked"
	ReasonExpired = "expired"
)
