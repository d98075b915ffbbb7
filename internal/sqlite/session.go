package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pzaremba/worklog/internal/domain/session"
	"github.com/pzaremba/worklog/internal/repository"
)

// SessionRepository implements repository.SessionRepository for SQLite
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session and assigns its ID.
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	query := `
		INSERT INTO sessions (user_id, job_name, rate, start_time, end_time, is_active, is_scheduled, repeat_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		sess.UserID,
		sess.JobName,
		sess.Rate,
		sess.StartTime.Format(time.RFC3339Nano),
		nullableTimeToString(sess.EndTime),
		boolToInt(sess.IsActive),
		boolToInt(sess.IsScheduled),
		joinDays(sess.RepeatDays),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read session id: %w", err)
	}
	sess.ID = id
	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, userID, id int64) (*session.Session, error) {
	query := `
		SELECT id, user_id, job_name, rate, start_time, end_time, is_active, is_scheduled, repeat_days
		FROM sessions
		WHERE id = ? AND user_id = ?
	`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id, userID))
}

// Update replaces the mutable fields of a session
func (r *SessionRepository) Update(ctx context.Context, sess *session.Session) error {
	query := `
		UPDATE sessions
		SET job_name = ?, rate = ?, start_time = ?, end_time = ?,
		    is_active = ?, is_scheduled = ?, repeat_days = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		sess.JobName,
		sess.Rate,
		sess.StartTime.Format(time.RFC3339Nano),
		nullableTimeToString(sess.EndTime),
		boolToInt(sess.IsActive),
		boolToInt(sess.IsScheduled),
		joinDays(sess.RepeatDays),
		sess.ID,
		sess.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a session. Missing rows are not an error.
func (r *SessionRepository) Delete(ctx context.Context, userID, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// List returns all sessions for a user
func (r *SessionRepository) List(ctx context.Context, userID int64) ([]session.Session, error) {
	query := `
		SELECT id, user_id, job_name, rate, start_time, end_time, is_active, is_scheduled, repeat_days
		FROM sessions
		WHERE user_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		sess, err := r.scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}

// GetActive returns the user's running session, if any.
func (r *SessionRepository) GetActive(ctx context.Context, userID int64) (*session.Session, error) {
	query := `
		SELECT id, user_id, job_name, rate, start_time, end_time, is_active, is_scheduled, repeat_days
		FROM sessions
		WHERE user_id = ? AND is_active = 1
		LIMIT 1
	`
	return r.scanSession(r.db.QueryRowContext(ctx, query, userID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SessionRepository) scanSession(row *sql.Row) (*session.Session, error) {
	sess, err := scanSessionFields(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	return sess, nil
}

func (r *SessionRepository) scanSessionRow(rows *sql.Rows) (*session.Session, error) {
	sess, err := scanSessionFields(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	return sess, nil
}

func scanSessionFields(row rowScanner) (*session.Session, error) {
	var sess session.Session
	var startTime string
	var endTime, repeatDays sql.NullString
	var isActive, isScheduled int

	err := row.Scan(
		&sess.ID,
		&sess.UserID,
		&sess.JobName,
		&sess.Rate,
		&startTime,
		&endTime,
		&isActive,
		&isScheduled,
		&repeatDays,
	)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339Nano, startTime)
	if err != nil {
		return nil, fmt.Errorf("bad start_time %q: %w", startTime, err)
	}
	sess.StartTime = start
	sess.EndTime = parseNullableTime(endTime)
	sess.IsActive = isActive != 0
	sess.IsScheduled = isScheduled != 0
	sess.RepeatDays = splitDays(repeatDays)
	return &sess, nil
}
