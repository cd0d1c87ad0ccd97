package fetch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/reeldex/reeldex/internal/database"
)

// CacheKey identifies one cached response. Language and country are
// part of the key because IMDb localizes titles and plots by the
// Accept-Language header.
type CacheKey struct {
	URL      string
	Language string
	Country  string
	Method   string
}

func (k CacheKey) String() string {
	method := k.Method
	if method == "" {
		method = "GET"
	}
	return fmt.Sprintf("%s|%s|%s|%s", method, k.URL, k.Language, k.Country)
}

// Cache is the SQLite-backed response cache. Entries are written
// atomically after a successful fetch and purged when a payload turns
// out to be a privacy or block page.
type Cache struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewCache wraps the shared database.
func NewCache(db *database.DB, logger zerolog.Logger) *Cache {
	return &Cache{
		db:     db.Conn(),
		logger: logger.With().Str("component", "http-cache").Logger(),
	}
}

// Get returns the cached payload and final URL for a key, if present
// and not expired.
func (c *Cache) Get(ctx context.Context, key CacheKey) (payload []byte, finalURL string, ok bool) {
	row := c.db.QueryRowContext(ctx,
		`SELECT payload, final_url FROM http_cache WHERE cache_key = ? AND expires_at > ?`,
		key.String(), time.Now().UTC())
	if err := row.Scan(&payload, &finalURL); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			c.logger.Warn().Err(err).Str("url", key.URL).Msg("Cache read failed")
		}
		return nil, "", false
	}
	return payload, finalURL, true
}

// Set stores a payload with the given lifetime. The write replaces any
// previous entry in one statement, so readers never observe a partial
// row.
func (c *Cache) Set(ctx context.Context, key CacheKey, payload []byte, finalURL string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	now := time.Now().UTC()
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO http_cache
		 (cache_key, url, language, country, method, payload, final_url, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key.String(), key.URL, key.Language, key.Country, key.Method,
		payload, finalURL, now, now.Add(ttl))
	if err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}

// Delete removes an entry; used when a cached payload is later
// classified as a privacy or failure page.
func (c *Cache) Delete(ctx context.Context, key CacheKey) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM http_cache WHERE cache_key = ?`, key.String())
	return err
}

// Sweep drops expired rows and returns how many were removed.
func (c *Cache) Sweep(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM http_cache WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartSweeper schedules an hourly sweep. The returned scheduler must
// be shut down by the caller.
func (c *Cache) StartSweeper() (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			removed, err := c.Sweep(context.Background())
			if err != nil {
				c.logger.Warn().Err(err).Msg("Cache sweep failed")
				return
			}
			if removed > 0 {
				c.logger.Debug().Int64("removed", removed).Msg("Swept expired cache entries")
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	scheduler.Start()
	return scheduler, nil
}
