package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shopify-bulk-editor/internal/domain/model"
)

// BatchStore keeps one summary row per completed bulk edit. Product data
// itself is never written here; Shopify stays the system of record.
type BatchStore struct {
	db *sql.DB
}

type BatchRecord struct {
	ID              string    `json:"batchId"`
	Section         string    `json:"section"`
	TotalProducts   int       `json:"totalProducts"`
	UpdatedVariants int       `json:"updatedVariants"`
	SkippedVariants int       `json:"skippedVariants"`
	FailedVariants  int       `json:"failedVariants"`
	PartialFailure  bool      `json:"partialFailure"`
	DurationMS      int64     `json:"durationMs"`
	CreatedAt       time.Time `json:"createdAt"`
}

const createBatchesTable = `
CREATE TABLE IF NOT EXISTS bulk_edit_batches (
	id               VARCHAR(36) PRIMARY KEY,
	section          VARCHAR(64) NOT NULL,
	total_products   INT NOT NULL,
	updated_variants INT NOT NULL,
	skipped_variants INT NOT NULL,
	failed_variants  INT NOT NULL,
	partial_failure  BOOL NOT NULL,
	duration_ms      BIGINT NOT NULL,
	created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func NewBatchStore(db *sql.DB) (*BatchStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, createBatchesTable); err != nil {
		return nil, fmt.Errorf("mysql: create batches table: %w", err)
	}
	return &BatchStore{db: db}, nil
}

// Insert is safe on a nil store so callers without MySQL configured skip
// history transparently.
func (s *BatchStore) Insert(ctx context.Context, result *model.BatchResult) error {
	if s == nil {
		return nil
	}
	const query = `
INSERT INTO bulk_edit_batches
	(id, section, total_products, updated_variants, skipped_variants, failed_variants, partial_failure, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		result.ID,
		result.Section,
		result.TotalProducts,
		result.UpdatedVariants,
		result.SkippedVariants,
		result.FailedVariants,
		result.PartialFailure,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("mysql: insert batch %s: %w", result.ID, err)
	}
	return nil
}

func (s *BatchStore) ListRecent(ctx context.Context, limit int) ([]BatchRecord, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const query = `
SELECT id, section, total_products, updated_variants, skipped_variants, failed_variants, partial_failure, duration_ms, created_at
FROM bulk_edit_batches
ORDER BY created_at DESC
LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("mysql: list batches: %w", err)
	}
	defer rows.Close()

	var records []BatchRecord
	for rows.Next() {
		var r BatchRecord
		if err := rows.Scan(
			&r.ID, &r.Section, &r.TotalProducts,
			&r.UpdatedVariants, &r.SkippedVariants, &r.FailedVariants,
			&r.PartialFailure, &r.DurationMS, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("mysql: scan batch row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
