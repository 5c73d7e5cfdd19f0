// Package repomanager opens the user store selected by configuration and owns
// the resources behind it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/flatauth/internal/common"
	"github.com/dmitrijs2005/flatauth/internal/filex"
	"github.com/dmitrijs2005/flatauth/internal/server/config"
	"github.com/dmitrijs2005/flatauth/internal/server/repositories/users"
)

// Storage kinds accepted by Open.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
)

type RepositoryManager interface {
	Users() users.Store
	Close() error
}

// Open builds the RepositoryManager for cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Storage {
	case StorageFile:
		if err := filex.EnsureParentDir(cfg.UsersFile); err != nil {
			return nil, fmt.Errorf("users file: %w", err)
		}
		return &storeManager{store: users.NewFileStore(cfg.UsersFile)}, nil
	case StorageMemory:
		return &storeManager{store: users.NewMemoryStore()}, nil
	case StoragePostgres:
		m, err := OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	case StorageS3:
		return OpenS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownStorage, cfg.Storage)
	}
}

// storeManager serves backends that hold no closable resources.
type storeManager struct {
	store users.Store
}

func (m *storeManager) Users() users.Store {
	return m.store
}

func (m *storeManager) Close() error {
	return nil
}
