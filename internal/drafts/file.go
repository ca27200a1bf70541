package drafts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// FileStore keeps one JSON file per key under Dir. Writes go to a temporary
// file that is renamed into place, so a crash never leaves half a draft.
type FileStore struct {
	Dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

// Load implements Store.
func (s *FileStore) Load(_ context.Context, key string) (types.Document, bool, error) {
	if !ValidKey(key) {
		return types.Document{}, false, ErrInvalidKey
	}

	blob, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Document{}, false, nil
		}
		return types.Document{}, false, fmt.Errorf("failed to read draft: %w", err)
	}
	return decode(key, blob)
}

// Save implements Store.
func (s *FileStore) Save(_ context.Context, key string, doc types.Document) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	blob, err := document.Encode(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.Dir, ".draft-*")
	if err != nil {
		return fmt.Errorf("failed to create draft file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[draft] failed to remove %s: %v", tmpName, err)
		}
	}()

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write draft: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}
