package sqlite

import (
	"context"
	"fmt"

	"github.com/pzaremba/worklog/internal/domain/job"
)

// JobRepository implements repository.JobRepository for SQLite
type JobRepository struct {
	db *DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new predefined job and assigns its ID.
func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO predefined_jobs (user_id, name) VALUES (?, ?)`,
		j.UserID, j.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read job id: %w", err)
	}
	j.ID = id
	return nil
}

// List returns all predefined jobs for a user
func (r *JobRepository) List(ctx context.Context, userID int64) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name FROM predefined_jobs WHERE user_id = ? ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.UserID, &j.Name); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// Delete removes a predefined job. Missing rows are not an error.
func (r *JobRepository) Delete(ctx context.Context, userID, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM predefined_jobs WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}
