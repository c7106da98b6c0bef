package db

import (
	"errors"
	"os"
	"time"

	"github.com/jackc/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres using DATABASE_URL.
func Open() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Pool bounds the underlying sql.DB connection pool.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// ConfigurePool applies pool limits to an open connection.
func ConfigurePool(conn *gorm.DB, pool Pool) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if pool.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}
	return nil
}

// nameOnlyReplayGuard dedupes unattributed rows on replay. The composite
// unique index does not constrain NULL player keys, and gorm tags cannot
// express a partial index, so it is created here and in db/migrations.
const nameOnlyReplayGuard = `CREATE UNIQUE INDEX IF NOT EXISTS idx_plays_name_only
	ON plays (guild_id, message_id, player_name) WHERE player_id IS NULL`

// Migrate runs GORM auto-migrations for the core tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&GuildPlayer{},
		&Play{},
		&BackfillRun{},
	); err != nil {
		return err
	}
	return conn.Exec(nameOnlyReplayGuard).Error
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
