// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/yoga-journal/models"
)

const userColumns = `id, email, name, password_hash, created_at`

// CreateUser inserts u. A taken email is reported as models.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u models.User) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?)
	`), u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt.UTC())
	return mapErr(err, "user", u.Email)
}

// GetUserByEmail looks a user up by their normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := sqlx.GetContext(ctx, s.db, &u, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`), email)
	if err != nil {
		return models.User{}, mapErr(err, "user", email)
	}
	return u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := sqlx.GetContext(ctx, s.db, &u, s.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	if err != nil {
		return models.User{}, mapErr(err, "user", id)
	}
	return u, nil
}
