package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite"

	"github.com/mektycoon/mekgold/tycoon/config"
	"github.com/mektycoon/mekgold/tycoon/logger"
)

const (
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver       string `toml:"driver"` // postgres (default) or sqlite
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
	SQLitePath   string `toml:"sqlite_path"`
}

type DB struct {
	driver string
	pool   *pgxpool.Pool
	bunDB  *bun.DB
}

// Open connects using the configured driver.
func Open(ctx context.Context, cfg DBConfig) (*DB, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverPostgres:
		return New(ctx, cfg)
	case DriverSQLite:
		return NewSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// New connects to PostgreSQL through a pgx pool and a bun handle on the same server.
func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))

	var err error
	for i := 0; i < defaultMaxRetries; i++ {
		var conn net.Conn
		conn, err = net.DialTimeout("tcp", addr, config.NetworkDialTimeout)
		if err == nil {
			conn.Close()
			break
		}
		slog.Warn("Database server unreachable, retrying",
			slog.String("type", "db"),
			slog.String("addr", addr),
			slog.Int("attempt", i+1))
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(buildBunDSN(cfg))))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}

	return &DB{
		driver: DriverPostgres,
		pool:   pool,
		bunDB:  bun.NewDB(sqldb, pgdialect.New()),
	}, nil
}

// NewSQLite opens an embedded database. An empty path or ":memory:" gives a
// private in-memory database held on a single connection.
func NewSQLite(ctx context.Context, path string) (*DB, error) {
	dsn := ":memory:"
	if path != "" && path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}

	sqldb, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows one writer at a time; a single connection also keeps an
	// in-memory database alive for the lifetime of the handle.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(0)

	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &DB{
		driver: DriverSQLite,
		bunDB:  bun.NewDB(sqldb, sqlitedialect.New()),
	}, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func buildBunDSN(cfg DBConfig) string {
	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode)
}

func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

// Ping checks both handles.
func (db *DB) Ping(ctx context.Context) error {
	if db.pool != nil {
		if err := db.pool.Ping(ctx); err != nil {
			return err
		}
	}
	return db.bunDB.PingContext(ctx)
}

// ExecWithLog runs a raw statement, preferring the pgx pool when present.
func (db *DB) ExecWithLog(ctx context.Context, query string, args ...interface{}) (int64, error) {
	start := time.Now()

	var affected int64
	var err error
	if db.pool != nil {
		tag, execErr := db.pool.Exec(ctx, query, args...)
		affected, err = tag.RowsAffected(), execErr
	} else {
		res, execErr := db.bunDB.ExecContext(ctx, query, args...)
		if execErr == nil {
			affected, _ = res.RowsAffected()
		}
		err = execErr
	}
	logger.LogQuery(query, time.Since(start), err)
	return affected, err
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}
