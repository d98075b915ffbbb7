package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pzaremba/worklog/internal/repository"
)

// DefaultSessionTTL is how long a login token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Repository provides persistence for user accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type tokenSession struct {
	userID    int64
	expiresAt time.Time
}

// Service handles registration, login, and token sessions. Tokens are
// opaque and held in memory; restarting the server logs everyone out.
type Service struct {
	users  Repository
	logger *slog.Logger
	ttl    time.Duration

	mu     sync.RWMutex
	tokens map[string]tokenSession
}

// NewService creates a new user service.
func NewService(users Repository, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Service{
		users:  users,
		logger: logger,
		ttl:    ttl,
		tokens: make(map[string]tokenSession),
	}
}

// Register creates an account and returns it with a fresh login token.
func (s *Service) Register(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateCredentials(email, password); err != nil {
		return nil, "", err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("checking email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("user registered", "user_id", u.ID)
	}

	return u, s.issueToken(u.ID), nil
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("loading user: %w", err)
	}
	if err := VerifyPassword(password, u.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	return u, s.issueToken(u.ID), nil
}

// Logout revokes a token. Unknown tokens are ignored.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Current returns the user a token belongs to.
func (s *Service) Current(ctx context.Context, token string) (*User, error) {
	userID, err := s.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return u, nil
}

// ResolveToken maps a token to a user id, expiring stale tokens.
func (s *Service) ResolveToken(_ context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrNotAuthenticated
	}

	s.mu.RLock()
	sess, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok {
		return 0, ErrNotAuthenticated
	}
	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.tokens, token)
		s.mu.Unlock()
		return 0, ErrNotAuthenticated
	}
	return sess.userID, nil
}

func (s *Service) issueToken(userID int64) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = tokenSession{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

func validateCredentials(email, password string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	return nil
}
