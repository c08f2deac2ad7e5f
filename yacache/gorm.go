package yacache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaToyRSA/yaerrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// CacheEntry is the row a [Gorm] cache stores per key. ExpiresAtUnixNano is
// zero for entries that never expire.
type CacheEntry struct {
	CacheKey          string `gorm:"primaryKey;size:512"`
	Value             string `gorm:"type:text"`
	ExpiresAtUnixNano int64  `gorm:"index"`
}

// TableName keeps the table name stable regardless of the naming strategy.
func (CacheEntry) TableName() string {
	return "yacache_entries"
}

const (
	fieldCacheKey          = "cache_key"
	fieldValue             = "value"
	fieldExpiresAtUnixNano = "expires_at_unix_nano"
)

// Gorm keeps cache entries in any database gorm can talk to. It outlives the
// process, unlike [Memory], without needing a Redis server.
type Gorm struct {
	poolDB *gorm.DB
}

// NewGorm runs the CacheEntry migration and returns a cache over poolDB.
func NewGorm(poolDB *gorm.DB) (*Gorm, yaerrors.Error) {
	if err := poolDB.AutoMigrate(&CacheEntry{}); err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[GORM] failed to make auto migrate",
		)
	}

	return &Gorm{poolDB: poolDB}, nil
}

// OpenSQLite opens (or creates) the SQLite database at path through the pure
// Go modernc.org/sqlite driver. ":memory:" gives a private in-memory database.
//
// Example:
//
//	poolDB, err := yacache.OpenSQLite("factors.db")
//	if err != nil { … }
//	cache, err := yacache.NewGorm(poolDB)
func OpenSQLite(path string) (*gorm.DB, yaerrors.Error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[GORM] failed to open sqlite "+path,
		)
	}

	// Every pooled connection to ":memory:" would see its own empty database.
	sqlDB.SetMaxOpenConns(1)

	poolDB, err := gorm.Open(
		sqlite.Dialector{
			Conn:       sqlDB,
			DriverName: "sqlite",
		},
		&gorm.Config{Logger: logger.Discard},
	)
	if err != nil {
		_ = sqlDB.Close()

		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			"[GORM] failed to connect to sqlite "+path,
		)
	}

	return poolDB, nil
}

// Raw exposes the underlying *gorm.DB.
func (g *Gorm) Raw() *gorm.DB {
	return g.poolDB
}

// Get implementation for Gorm.
func (g *Gorm) Get(ctx context.Context, key string) (string, yaerrors.Error) {
	var entry CacheEntry

	err := g.poolDB.WithContext(ctx).
		Where(fieldCacheKey+" = ?", key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) ||
		(err == nil && entry.ExpiresAtUnixNano != 0 && entry.ExpiresAtUnixNano <= time.Now().UnixNano()) {
		return "", yaerrors.FromError(
			http.StatusNotFound,
			ErrKeyNotFound,
			fmt.Sprintf("[GORM] `%s`", key),
		)
	}

	if err != nil {
		return "", yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToGet),
			fmt.Sprintf("[GORM] failed to select `%s`", key),
		)
	}

	return entry.Value, nil
}

// Set implementation for Gorm; an existing key is overwritten.
func (g *Gorm) Set(ctx context.Context, key string, value string, ttl time.Duration) yaerrors.Error {
	entry := CacheEntry{CacheKey: key, Value: value}
	if ttl > 0 {
		entry.ExpiresAtUnixNano = time.Now().Add(ttl).UnixNano()
	}

	if err := g.poolDB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: fieldCacheKey}},
			DoUpdates: clause.AssignmentColumns([]string{fieldValue, fieldExpiresAtUnixNano}),
		}).
		Create(&entry).Error; err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToSet),
			fmt.Sprintf("[GORM] failed to upsert `%s`", key),
		)
	}

	return nil
}

// Delete implementation for Gorm.
func (g *Gorm) Delete(ctx context.Context, key string) yaerrors.Error {
	if err := g.poolDB.WithContext(ctx).
		Where(fieldCacheKey+" = ?", key).
		Delete(&CacheEntry{}).Error; err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToDelete),
			fmt.Sprintf("[GORM] failed to delete `%s`", key),
		)
	}

	return nil
}

// PurgeExpired deletes every expired row and reports how many went away.
// Get already hides expired rows, so this only reclaims space.
func (g *Gorm) PurgeExpired(ctx context.Context) (int64, yaerrors.Error) {
	result := g.poolDB.WithContext(ctx).
		Where(fieldExpiresAtUnixNano+" <> 0 AND "+fieldExpiresAtUnixNano+" <= ?", time.Now().UnixNano()).
		Delete(&CacheEntry{})
	if result.Error != nil {
		return 0, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(result.Error, ErrFailedToDelete),
			"[GORM] failed to purge expired entries",
		)
	}

	return result.RowsAffected, nil
}

// Ping implementation for Gorm.
func (g *Gorm) Ping(ctx context.Context) yaerrors.Error {
	sqlDB, err := g.poolDB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}

	if err != nil {
		return yaerrors.FromError(
			http.StatusServiceUnavailable,
			errors.Join(err, ErrFailedToPing),
			"[GORM] failed to ping database",
		)
	}

	return nil
}

// Close closes the underlying connection pool.
func (g *Gorm) Close() yaerrors.Error {
	sqlDB, err := g.poolDB.DB()
	if err == nil {
		err = sqlDB.Close()
	}

	if err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(err, ErrFailedToClose),
			"[GORM] failed to close database",
		)
	}

	return nil
}
