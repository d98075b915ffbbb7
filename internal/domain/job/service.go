package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pzaremba/worklog/internal/repository"
)

// Repository provides persistence for predefined jobs.
type Repository interface {
	Create(ctx context.Context, j *Job) error
	List(ctx context.Context, userID int64) ([]Job, error)
	Delete(ctx context.Context, userID, id int64) error
}

// Service manages the predefined job list.
type Service struct {
	jobs   Repository
	logger *slog.Logger
}

// NewService creates a new job service.
func NewService(jobs Repository, logger *slog.Logger) *Service {
	return &Service{jobs: jobs, logger: logger}
}

// List returns all predefined jobs for the user.
func (s *Service) List(ctx context.Context, userID int64) ([]Job, error) {
	jobs, err := s.jobs.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

// Create stores a new predefined job. The name must be non-empty.
func (s *Service) Create(ctx context.Context, userID int64, name string) (*Job, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	j := &Job{UserID: userID, Name: name}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}
	return j, nil
}

// Delete removes a predefined job. Deleting a missing id is a no-op.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.jobs.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("deleting job: %w", err)
	}
	return nil
}
