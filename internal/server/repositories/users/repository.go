// Package users persists the user collection. Every backend materializes the
// whole collection on LoadAll and replaces it wholesale on SaveAll.
package users

import (
	"context"

	"github.com/dmitrijs2005/flatauth/internal/server/models"
)

// Store is the read-modify-write contract of the user collection.
//
// LoadAll always returns a non-nil slice. Missing backing data yields an
// empty slice and no error; content that cannot be decoded yields an empty
// slice and common.ErrCorruptStore; other read failures wrap
// common.ErrStorageRead. SaveAll replaces the stored collection with users
// and wraps failures in common.ErrStorageWrite.
type Store interface {
	LoadAll(ctx context.Context) ([]models.User, error)
	SaveAll(ctx context.Context, users []models.User) error
}

// FindByEmail returns the first user whose email equals email exactly.
func FindByEmail(users []models.User, email string) (models.User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}
