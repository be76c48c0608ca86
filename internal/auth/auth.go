// Package auth signs users in and resolves signed session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"project-tracker/config"
	"project-tracker/internal/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.llib.dev/testcase/clock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the account lookup the service depends on.
type UserStore interface {
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUserByID(ctx context.Context, userID string) (*entities.User, error)
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues HS256 session tokens and verifies them on every lookup.
type Service struct {
	log    *zap.SugaredLogger
	users  UserStore
	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewService creates an auth service.
func NewService(log *zap.SugaredLogger, users UserStore, cfg config.AuthConfig) *Service {
	return &Service{
		log:     log.Named("auth"),
		users:   users,
		secret:  []byte(cfg.JWTSecret),
		ttl:     cfg.SessionTTL,
		revoked: make(map[string]time.Time),
	}
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates an account with a hashed password.
func (s *Service) Register(ctx context.Context, email, password string) (*entities.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", entities.ErrInvalidArgument)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", entities.ErrInvalidArgument)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.users.CreateUser(ctx, entities.User{Email: email, PasswordHash: hash})
}

// SignIn checks credentials and issues a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*entities.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", entities.ErrInvalidArgument)
	}

	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warnw("sign in rejected", "user_id", user.ID)
		return nil, entities.ErrInvalidCredentials
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.log.Infow("signed in", "user_id", user.ID, "session_id", session.ID)
	return session, nil
}

func (s *Service) issue(user *entities.User) (*entities.Session, error) {
	now := clock.Now()
	session := &entities.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: now.Add(s.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	session.Token = signed
	return session, nil
}

// Session resolves a token into a live session. It fails with ErrUnauthenticated when the token is
// malformed, expired, revoked or its user no longer exists.
func (s *Service) Session(ctx context.Context, token string) (*entities.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, entities.ErrUnauthenticated
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(clock.Now), jwt.WithExpirationRequired())
	if err != nil {
		s.log.Infow("token rejected", "error", err)
		return nil, fmt.Errorf("%w: %v", entities.ErrUnauthenticated, err)
	}

	if s.isRevoked(c.ID) {
		return nil, fmt.Errorf("%w: session signed out", entities.ErrUnauthenticated)
	}

	user, err := s.users.GetUserByID(ctx, c.Subject)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", entities.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	return &entities.Session{
		ID:        c.ID,
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// SignOut revokes the session until its natural expiry.
func (s *Service) SignOut(ctx context.Context, token string) error {
	session, err := s.Session(ctx, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := clock.Now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[session.ID] = session.ExpiresAt

	s.log.Infow("signed out", "user_id", session.UserID, "session_id", session.ID)
	return nil
}

func (s *Service) isRevoked(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[sessionID]
	return ok
}
