package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Resume is a saved résumé. Data is the document blob exactly as it was saved.
type Resume struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Title      string          `json:"title"`
	TemplateID string          `json:"template_id"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ResumeSummary is a list entry; the blob is left out.
type ResumeSummary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"template_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Summary drops the blob.
func (r *Resume) Summary() ResumeSummary {
	return ResumeSummary{
		ID:         r.ID,
		Title:      r.Title,
		TemplateID: r.TemplateID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
