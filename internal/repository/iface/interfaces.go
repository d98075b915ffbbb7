package iface

import (
	"context"

	"github.com/pzaremba/worklog/internal/domain/job"
	"github.com/pzaremba/worklog/internal/domain/session"
	"github.com/pzaremba/worklog/internal/domain/user"
)

// SessionRepository manages work session persistence. Create assigns the
// record ID; implementations own their id counters.
type SessionRepository interface {
	Create(ctx context.Context, sess *session.Session) error
	Get(ctx context.Context, userID, id int64) (*session.Session, error)
	Update(ctx context.Context, sess *session.Session) error
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64) ([]session.Session, error)
	GetActive(ctx context.Context, userID int64) (*session.Session, error)
}

// JobRepository manages predefined job persistence
type JobRepository interface {
	Create(ctx context.Context, j *job.Job) error
	List(ctx context.Context, userID int64) ([]job.Job, error)
	Delete(ctx context.Context, userID, id int64) error
}

// UserRepository manages user account persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
