package tycoon

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/database"
	"github.com/mektycoon/mekgold/tycoon/economy/gold"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err = toml.NewDecoder(file).DisallowUnknownFields().Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.Economy = cfg.Economy.WithDefaults()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: slog.LevelInfo, Prefix: "mekgold"},
		DB: database.DBConfig{
			Driver:   database.DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			PoolSize: 10,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Economy: gold.DefaultConfig(),
		Sweeper: SweeperConfig{
			Enabled:         true,
			IntervalSeconds: int(config.SweepInterval / time.Second),
		},
		Archive: ArchiveConfig{
			Prefix:         "settlements",
			OlderThanHours: 24 * 30,
		},
	}
}

type Config struct {
	Log     LogConfig         `toml:"log"`
	DB      database.DBConfig `toml:"db"`
	Web     WebConfig         `toml:"web"`
	Economy gold.Config       `toml:"economy"`
	Sweeper SweeperConfig     `toml:"sweeper"`
	Archive ArchiveConfig     `toml:"archive"`
}

type LogConfig struct {
	Level  slog.Level `toml:"level"`
	Prefix string     `toml:"prefix"`
}

type WebConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	AdminToken     string   `toml:"admin_token"`
}

func (w WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

type SweeperConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
}

func (s SweeperConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// ArchiveConfig points at an S3-compatible bucket for old settlement rows.
type ArchiveConfig struct {
	Key            string `toml:"key"`
	Secret         string `toml:"secret"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	Endpoint       string `toml:"endpoint"`
	Prefix         string `toml:"prefix"`
	OlderThanHours int    `toml:"older_than_hours"`
}

func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

func (a ArchiveConfig) OlderThan() time.Duration {
	return time.Duration(a.OlderThanHours) * time.Hour
}
