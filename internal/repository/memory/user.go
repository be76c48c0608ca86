package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"project-tracker/internal/entities"
)

type userRecord struct {
	Seq  int64
	User entities.User
}

func (r userRecord) sequence() int64 { return r.Seq }

// CreateUser inserts an account; emails are stored lower-cased and must be unique.
func (m *Memory) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	_, exists, err := m.users.QueryOne(ctx, func(r userRecord) bool { return r.User.Email == user.Email })
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if exists {
		return nil, entities.ErrUserExists
	}

	user.ID = ""
	user.CreatedAt = time.Now().UTC()
	rec := userRecord{Seq: m.nextSeq(), User: user}
	if err := m.users.Create(ctx, &rec); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	m.log.Infow("user created", "user_id", rec.User.ID)
	return &rec.User, nil
}

// GetUserByEmail looks an account up by its email.
func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	email = strings.ToLower(email)
	rec, found, err := m.users.QueryOne(ctx, func(r userRecord) bool { return r.User.Email == email })
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return nil, entities.ErrUserNotFound
	}
	return &rec.User, nil
}

// GetUserByID looks an account up by id.
func (m *Memory) GetUserByID(ctx context.Context, userID string) (*entities.User, error) {
	rec, found, err := m.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return nil, entities.ErrUserNotFound
	}
	return &rec.User, nil
}
