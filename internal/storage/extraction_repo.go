package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// ExtractionRepo provides methods for extraction cache operations.
// It implements extract.Cache.
type ExtractionRepo struct {
	db *sql.DB
}

// NewExtractionRepo creates a new ExtractionRepo.
func NewExtractionRepo(db *sql.DB) *ExtractionRepo {
	return &ExtractionRepo{db: db}
}

// Get returns the cached text for contentHash and records the hit.
func (r *ExtractionRepo) Get(ctx context.Context, contentHash string) (string, bool, error) {
	var text string
	err := r.db.QueryRowContext(ctx,
		"SELECT text FROM extractions WHERE content_hash = ?",
		contentHash,
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query extraction: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		"UPDATE extractions SET hits = hits + 1, last_used_at = CURRENT_TIMESTAMP WHERE content_hash = ?",
		contentHash,
	); err != nil {
		return "", false, fmt.Errorf("failed to record extraction hit: %w", err)
	}

	return text, true, nil
}

// Put inserts a new entry or replaces the text of an existing one, preserving its ID.
func (r *ExtractionRepo) Put(ctx context.Context, contentHash, kind, text string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extractions (id, content_hash, kind, text, created_at, last_used_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		 ON CONFLICT (content_hash) DO UPDATE SET
		 kind = excluded.kind, text = excluded.text, last_used_at = CURRENT_TIMESTAMP`,
		uuid.New().String(), contentHash, kind, text,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert extraction: %w", err)
	}
	return nil
}

// Stats returns the number of cached entries and their total hits.
func (r *ExtractionRepo) Stats(ctx context.Context) (CacheStats, error) {
	var stats CacheStats
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(hits), 0) FROM extractions",
	).Scan(&stats.Entries, &stats.Hits)
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to query extraction stats: %w", err)
	}
	return stats, nil
}

// PingContext checks that the cache database is reachable.
func (r *ExtractionRepo) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// PruneOlderThan deletes entries whose last use is before cutoff.
func (r *ExtractionRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM extractions WHERE last_used_at < ?",
		cutoff.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune extractions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned extractions: %w", err)
	}
	return n, nil
}
