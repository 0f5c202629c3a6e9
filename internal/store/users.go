package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/models"
)

// CreateUser inserts u. A second account with the same email yields
// apperr.ErrAlreadyExists.
func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = db.now()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.Name, u.PasswordHash, formatTime(u.CreatedAt))
	if isUniqueViolation(err) {
		return apperr.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("store: insert user: %w", err)
	}
	return nil
}

// FindUserByEmail looks up an account by its (normalised) email.
func (db *DB) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.findUser(ctx, `WHERE email = ?`, email)
}

// FindUserByID looks up an account by ID.
func (db *DB) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return db.findUser(ctx, `WHERE id = ?`, id)
}

func (db *DB) findUser(ctx context.Context, where string, arg string) (*models.User, error) {
	var (
		u         models.User
		createdAt string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users `+where, arg,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find user: %w", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &u, nil
}
