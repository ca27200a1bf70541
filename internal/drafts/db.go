package drafts

import (
	"context"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/db"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// Backend is the slice of *db.DB that DBStore uses.
type Backend interface {
	SaveDraft(ctx context.Context, key string, data []byte) error
	LoadDraft(ctx context.Context, key string) (*db.Draft, error)
}

// DBStore keeps drafts in the drafts table.
type DBStore struct {
	backend Backend
}

// NewDBStore wraps a database backend.
func NewDBStore(backend Backend) *DBStore {
	return &DBStore{backend: backend}
}

// Load implements Store.
func (s *DBStore) Load(ctx context.Context, key string) (types.Document, bool, error) {
	if !ValidKey(key) {
		return types.Document{}, false, ErrInvalidKey
	}

	d, err := s.backend.LoadDraft(ctx, key)
	if err != nil {
		return types.Document{}, false, err
	}
	if d == nil {
		return types.Document{}, false, nil
	}
	return decode(key, d.Data)
}

// Save implements Store.
func (s *DBStore) Save(ctx context.Context, key string, doc types.Document) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	blob, err := document.Encode(doc)
	if err != nil {
		return err
	}
	return s.backend.SaveDraft(ctx, key, blob)
}
