package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/flatauth/internal/common"
	"github.com/dmitrijs2005/flatauth/internal/dbx"
	"github.com/dmitrijs2005/flatauth/internal/server/models"
)

// PostgresStore keeps the collection in the users table, ordered by position.
// SaveAll rewrites the table inside one transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (r *PostgresStore) LoadAll(ctx context.Context) ([]models.User, error) {
	query :=
		`SELECT email, password, created_at FROM users
		 ORDER BY position
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return []models.User{}, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Email, &u.Password, &u.Timestamp); err != nil {
			return []models.User{}, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return []models.User{}, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}

	return users, nil
}

func (r *PostgresStore) SaveAll(ctx context.Context, users []models.User) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
			return err
		}

		query :=
			`INSERT INTO users (position, email, password, created_at)
			 VALUES ($1, $2, $3, $4)
			 `
		for i, u := range users {
			if _, err := tx.ExecContext(ctx, query, i, u.Email, u.Password, u.Timestamp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageWrite, err)
	}

	return nil
}
