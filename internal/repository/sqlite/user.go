package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"project-tracker/internal/entities"

	"github.com/google/uuid"
)

const (
	insertUserQuery     = `INSERT INTO users(id, email, password_hash, created_at) VALUES (?, ?, ?, ?) RETURNING id, email, password_hash, created_at`
	selectUserByEmail   = `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`
	selectUserByIDQuery = `SELECT id, email, password_hash, created_at FROM users WHERE id = ?`
)

// CreateUser inserts an account; emails are stored lower-cased.
func (s *SQLite) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	u, err := scanUser(s.db.QueryRowContext(ctx, insertUserQuery,
		uuid.NewString(), strings.ToLower(user.Email), user.PasswordHash, now))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entities.ErrUserExists
		}
		s.log.Errorw("failed to insert user", "error", err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.log.Infow("user created", "user_id", u.ID)
	return u, nil
}

// GetUserByEmail looks an account up by its email.
func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.getUser(ctx, selectUserByEmail, strings.ToLower(email))
}

// GetUserByID looks an account up by id.
func (s *SQLite) GetUserByID(ctx context.Context, userID string) (*entities.User, error) {
	return s.getUser(ctx, selectUserByIDQuery, userID)
}

func (s *SQLite) getUser(ctx context.Context, query, arg string) (*entities.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row scanner) (*entities.User, error) {
	var (
		u       entities.User
		created string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &created); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	u.CreatedAt = ts
	return &u, nil
}
