package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resumeColumns = `id, user_id, title, template_id, data, created_at, updated_at`

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	if err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.TemplateID, &r.Data, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// SaveResume inserts a résumé owned by userID. data is stored verbatim.
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, title, templateID string, data []byte) (*Resume, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate resume id: %w", err)
	}

	r, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, user_id, title, template_id, data)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+resumeColumns,
		id, userID, title, templateID, data,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return r, nil
}

// UpdateResume replaces title, template and data of a résumé the user owns.
// It returns ErrNotFound when no such résumé exists for the user.
func (db *DB) UpdateResume(ctx context.Context, id, userID uuid.UUID, title, templateID string, data []byte) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`UPDATE resumes SET title = $3, template_id = $4, data = $5, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+resumeColumns,
		id, userID, title, templateID, data,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return r, nil
}

// GetResume returns a résumé the user owns, or nil if there is none.
func (db *DB) GetResume(ctx context.Context, id, userID uuid.UUID) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes returns the user's résumés, newest first, without their data.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, template_id, created_at, updated_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.TemplateID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// DeleteResume removes a résumé the user owns.
func (db *DB) DeleteResume(ctx context.Context, id, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
