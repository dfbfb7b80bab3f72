package healthcheck

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DatabaseChecker verifies the recipe database connection
type DatabaseChecker struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewDatabaseChecker creates a database health checker
func NewDatabaseChecker(db *gorm.DB) *DatabaseChecker {
	return &DatabaseChecker{db: db, timeout: 2 * time.Second}
}

// Check pings the underlying database connection
func (c *DatabaseChecker) Check(ctx context.Context) Check {
	started := time.Now()
	check := Check{
		Name:        "database",
		Status:      StatusHealthy,
		LastChecked: started,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = fmt.Sprintf("ping failed: %v", err)
	}

	check.Duration = time.Since(started)
	return check
}

// KeyValueStore is the slice of the cache contract the checker exercises
type KeyValueStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// CacheChecker verifies the provider search cache with a write/read probe.
// The cache is non-critical: the engine runs without it, so a failure only
// degrades the service.
type CacheChecker struct {
	store   KeyValueStore
	timeout time.Duration
}

// NewCacheChecker creates a cache health checker
func NewCacheChecker(store KeyValueStore) *CacheChecker {
	return &CacheChecker{store: store, timeout: 2 * time.Second}
}

// Critical reports the cache as a non-critical dependency
func (c *CacheChecker) Critical() bool {
	return false
}

// Check round-trips a probe key through the cache
func (c *CacheChecker) Check(ctx context.Context) Check {
	started := time.Now()
	check := Check{
		Name:        "cache",
		Status:      StatusHealthy,
		LastChecked: started,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	key := "healthcheck:probe"
	if err := c.store.Set(ctx, key, []byte("ok"), time.Minute); err != nil {
		check.Status = StatusUnhealthy
		check.Message = fmt.Sprintf("write failed: %v", err)
	} else if _, err := c.store.Get(ctx, key); err != nil {
		check.Status = StatusUnhealthy
		check.Message = fmt.Sprintf("read failed: %v", err)
	}

	check.Duration = time.Since(started)
	return check
}
