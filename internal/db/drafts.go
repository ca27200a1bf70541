package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SaveDraft upserts the draft blob for key.
func (db *DB) SaveDraft(ctx context.Context, key string, data []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO drafts (key, data) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET data = $2, updated_at = NOW()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// LoadDraft returns the draft for key, or nil if there is none.
func (db *DB) LoadDraft(ctx context.Context, key string) (*Draft, error) {
	d := Draft{Key: key}
	err := db.pool.QueryRow(ctx,
		`SELECT data, updated_at FROM drafts WHERE key = $1`, key,
	).Scan(&d.Data, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return &d, nil
}
