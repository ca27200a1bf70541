// Package drafts keeps the autosaved working copy of a résumé between
// sessions. Every load goes through document.Decode, so a stale or damaged
// draft comes back repaired rather than failing.
package drafts

import (
	"context"
	"errors"
	"log"
	"regexp"
	"sync"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// ErrInvalidKey is returned for keys a store cannot address.
var ErrInvalidKey = errors.New("invalid draft key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidKey reports whether key is usable with every Store implementation.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Store persists one draft document per key.
type Store interface {
	// Load returns the draft for key. ok is false when there is none.
	Load(ctx context.Context, key string) (doc types.Document, ok bool, err error)
	Save(ctx context.Context, key string, doc types.Document) error
}

// MemoryStore keeps encoded drafts in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, key string) (types.Document, bool, error) {
	if !ValidKey(key) {
		return types.Document{}, false, ErrInvalidKey
	}

	s.mu.RLock()
	blob, ok := s.drafts[key]
	s.mu.RUnlock()
	if !ok {
		return types.Document{}, false, nil
	}
	return decode(key, blob)
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, key string, doc types.Document) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	blob, err := document.Encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.drafts[key] = blob
	s.mu.Unlock()
	return nil
}

// SaveRaw stores a blob as-is; used to seed stores with foreign data.
func (s *MemoryStore) SaveRaw(key string, blob []byte) {
	s.mu.Lock()
	s.drafts[key] = append([]byte(nil), blob...)
	s.mu.Unlock()
}

// decode repairs a stored draft. A blob that is not a JSON object reads as
// no draft at all, so the editor starts over instead of failing every load.
func decode(key string, blob []byte) (types.Document, bool, error) {
	doc, err := document.Decode(blob)
	if err != nil {
		log.Printf("[draft] ignoring corrupt draft %s: %v", key, err)
		return document.Defaults(), false, nil
	}
	return doc, true, nil
}
