package users

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/flatauth/internal/common"
	"github.com/dmitrijs2005/flatauth/internal/server/models"
)

// FileStore keeps the collection in a single JSON file.
//
// SaveAll truncates and rewrites the file in place; a crash mid-write can
// leave it truncated.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) LoadAll(ctx context.Context) ([]models.User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.User{}, nil
	}
	if err != nil {
		return []models.User{}, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}

	return decodeUsers(data)
}

func (s *FileStore) SaveAll(ctx context.Context, users []models.User) error {
	data, err := encodeUsers(users)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageWrite, err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageWrite, err)
	}

	return nil
}
