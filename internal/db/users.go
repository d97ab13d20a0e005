package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// CreateUser inserts a user and returns its ID.
func (db *DB) CreateUser(ctx context.Context, email, name, role, passwordHash string) (uuid.UUID, error) {
	if role == "" {
		role = RoleCandidate
	}
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		email, name, role, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUserByID returns a user by ID, or nil when not found.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return db.getUser(ctx, `WHERE id = $1`, id)
}

// GetUserByEmail returns a user by email, or nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return db.getUser(ctx, `WHERE email = $1`, email)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, name, role, password_hash, resume_text, created_at
		 FROM users `+where, arg,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.ResumeText, &u.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}

// UpdateUserResume stores new resume text for a user. It reports
// whether a row was updated.
func (db *DB) UpdateUserResume(ctx context.Context, id uuid.UUID, resumeText string) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET resume_text = $1 WHERE id = $2`,
		resumeText, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update resume for user %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
