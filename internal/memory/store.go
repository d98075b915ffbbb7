// Package memory provides map-backed repository implementations. Used by
// tests and by deployments that don't need persistence across restarts.
package memory

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pzaremba/worklog/internal/domain/job"
	"github.com/pzaremba/worklog/internal/domain/session"
	"github.com/pzaremba/worklog/internal/domain/user"
	"github.com/pzaremba/worklog/internal/repository"
)

// SessionStore implements repository.SessionRepository in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]session.Session
	nextID   atomic.Int64
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]session.Session)}
}

func (s *SessionStore) Create(_ context.Context, sess *session.Session) error {
	sess.ID = s.nextID.Add(1)
	s.mu.Lock()
	s.sessions[sess.ID] = *sess
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Get(_ context.Context, userID, id int64) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || sess.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := sess
	return &copied, nil
}

func (s *SessionStore) Update(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[sess.ID]
	if !ok || existing.UserID != sess.UserID {
		return repository.ErrNotFound
	}
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *SessionStore) Delete(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok && sess.UserID == userID {
		delete(s.sessions, id)
	}
	return nil
}

func (s *SessionStore) List(_ context.Context, userID int64) ([]session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			sessions = append(sessions, sess)
		}
	}
	return sessions, nil
}

func (s *SessionStore) GetActive(_ context.Context, userID int64) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.UserID == userID && sess.IsActive {
			copied := sess
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// JobStore implements repository.JobRepository in memory.
type JobStore struct {
	mu     sync.RWMutex
	jobs   map[int64]job.Job
	nextID atomic.Int64
}

// NewJobStore creates an empty job store.
func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[int64]job.Job)}
}

func (s *JobStore) Create(_ context.Context, j *job.Job) error {
	j.ID = s.nextID.Add(1)
	s.mu.Lock()
	s.jobs[j.ID] = *j
	s.mu.Unlock()
	return nil
}

func (s *JobStore) List(_ context.Context, userID int64) ([]job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if j.UserID == userID {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func (s *JobStore) Delete(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if j, ok := s.jobs[id]; ok && j.UserID == userID {
		delete(s.jobs, id)
	}
	return nil
}

// UserStore implements repository.UserRepository in memory.
type UserStore struct {
	mu     sync.RWMutex
	users  map[int64]user.User
	nextID atomic.Int64
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]user.User)}
}

func (s *UserStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.ID = s.nextID.Add(1)
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) Get(_ context.Context, id int64) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}
