package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"project-tracker/internal/entities"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertUserQuery     = `INSERT INTO users(id, email, password_hash) VALUES ($1, $2, $3) RETURNING id, email, password_hash, created_at`
	selectUserByEmail   = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	selectUserByIDQuery = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
)

// CreateUser inserts an account; emails are stored lower-cased.
func (p *Postgres) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	var u entities.User
	err := p.db.QueryRow(ctx, insertUserQuery, uuid.NewString(), strings.ToLower(user.Email), user.PasswordHash).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrUserExists
		}
		p.log.Errorw("failed to insert user", "error", err)
		return nil, fmt.Errorf("insert user: %w", err)
	}

	p.log.Infow("user created", "user_id", u.ID)
	return &u, nil
}

// GetUserByEmail looks an account up by its email.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return p.getUser(ctx, selectUserByEmail, strings.ToLower(email))
}

// GetUserByID looks an account up by id.
func (p *Postgres) GetUserByID(ctx context.Context, userID string) (*entities.User, error) {
	return p.getUser(ctx, selectUserByIDQuery, userID)
}

func (p *Postgres) getUser(ctx context.Context, query, arg string) (*entities.User, error) {
	var u entities.User
	if err := p.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
