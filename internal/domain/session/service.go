package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pzaremba/worklog/internal/repository"
)

// Repository provides persistence for sessions.
type Repository interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, userID, id int64) (*Session, error)
	Update(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64) ([]Session, error)
	GetActive(ctx context.Context, userID int64) (*Session, error)
}

// Service is the session ledger. It owns per-record validation and the
// timer lifecycle; cross-record checks beyond stop-before-start stay
// with the caller.
type Service struct {
	sessions Repository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new session service.
func NewService(sessions Repository, logger *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns all sessions owned by the user. Order is unspecified.
func (s *Service) List(ctx context.Context, userID int64) ([]Session, error) {
	sessions, err := s.sessions.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

// Get returns one session by id.
func (s *Service) Get(ctx context.Context, userID, id int64) (*Session, error) {
	sess, err := s.sessions.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return sess, nil
}

// Create validates and stores a new session. The repository assigns the ID.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (*Session, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	sess := &Session{
		UserID:      userID,
		JobName:     req.JobName,
		Rate:        req.Rate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsActive:    req.IsActive,
		IsScheduled: req.IsScheduled,
		RepeatDays:  req.RepeatDays,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return sess, nil
}

// Update merges the patch onto an existing session. Missing ids fail with
// ErrSessionNotFound and leave the store untouched.
func (s *Service) Update(ctx context.Context, userID, id int64, patch Patch) (*Session, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if patch.JobName != nil {
		sess.JobName = *patch.JobName
	}
	if patch.Rate != nil {
		sess.Rate = *patch.Rate
	}
	if patch.StartTime != nil {
		sess.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		sess.EndTime = patch.EndTime
	}
	if patch.IsActive != nil {
		sess.IsActive = *patch.IsActive
	}
	if patch.IsScheduled != nil {
		sess.IsScheduled = *patch.IsScheduled
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("updating session: %w", err)
	}
	return sess, nil
}

// Delete removes a session. Deleting a missing id is a no-op.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.sessions.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// StartTimer begins a live session. Any session still marked active is
// stopped first, keeping at most one timer running per user.
func (s *Service) StartTimer(ctx context.Context, userID int64, jobName string, rate float64) (*Session, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: rate must be greater than 0", ErrInvalidInput)
	}

	now := s.now()
	if prev, err := s.sessions.GetActive(ctx, userID); err == nil {
		end := now
		prev.EndTime = &end
		prev.IsActive = false
		if err := s.sessions.Update(ctx, prev); err != nil {
			return nil, fmt.Errorf("stopping previous session: %w", err)
		}
		if s.logger != nil {
			s.logger.Info("stopped lingering session", "session_id", prev.ID)
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking active session: %w", err)
	}

	sess := &Session{
		UserID:    userID,
		JobName:   jobName,
		Rate:      rate,
		StartTime: now,
		IsActive:  true,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return sess, nil
}

// StopTimer ends the user's running session.
func (s *Service) StopTimer(ctx context.Context, userID int64) (*Session, error) {
	sess, err := s.sessions.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("loading active session: %w", err)
	}

	end := s.now()
	sess.EndTime = &end
	sess.IsActive = false
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}
	return sess, nil
}

// CreateSchedule creates one scheduled session per selected date, plus one
// per weekday code matched over the request horizon.
func (s *Service) CreateSchedule(ctx context.Context, userID int64, req ScheduleRequest) ([]Session, error) {
	if err := ValidateScheduleInput(req); err != nil {
		return nil, err
	}

	startMinutes, _ := parseClock(req.StartClock)
	endMinutes, _ := parseClock(req.EndClock)

	created := make([]Session, 0, len(req.Dates))
	for _, date := range expandDates(req, s.now()) {
		start := atClock(date, startMinutes)
		end := atClock(date, endMinutes)
		sess := &Session{
			UserID:      userID,
			JobName:     req.JobName,
			Rate:        req.Rate,
			StartTime:   start,
			EndTime:     &end,
			IsScheduled: true,
			RepeatDays:  req.RepeatDays,
		}
		if err := s.sessions.Create(ctx, sess); err != nil {
			return created, fmt.Errorf("creating scheduled session: %w", err)
		}
		created = append(created, *sess)
	}
	return created, nil
}

// expandDates merges explicit dates with weekday fan-out, deduplicated by
// calendar day.
func expandDates(req ScheduleRequest, now time.Time) []time.Time {
	seen := make(map[string]bool)
	var dates []time.Time

	add := func(d time.Time) {
		key := d.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			dates = append(dates, d)
		}
	}

	for _, d := range req.Dates {
		add(d)
	}

	weeks := req.Weeks
	if weeks <= 0 {
		weeks = 1
	}
	wanted := make(map[time.Weekday]bool, len(req.RepeatDays))
	for _, code := range req.RepeatDays {
		wanted[weekdayCodes[code]] = true
	}
	if len(wanted) > 0 {
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		for i := 0; i < weeks*7; i++ {
			day = day.AddDate(0, 0, 1)
			if wanted[day.Weekday()] {
				add(day)
			}
		}
	}
	return dates
}
