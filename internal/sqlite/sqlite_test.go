package sqlite_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pzaremba/worklog/internal/domain/job"
	"github.com/pzaremba/worklog/internal/domain/session"
	"github.com/pzaremba/worklog/internal/domain/user"
	"github.com/pzaremba/worklog/internal/repository"
	"github.com/pzaremba/worklog/internal/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	sess := &session.Session{
		UserID:     1,
		JobName:    "consulting",
		Rate:       60.5,
		StartTime:  start,
		EndTime:    &end,
		RepeatDays: []string{"mon", "wed"},
	}
	require.NoError(t, repo.Create(ctx, sess))
	require.NotZero(t, sess.ID)

	got, err := repo.Get(ctx, 1, sess.ID)
	require.NoError(t, err)
	require.Equal(t, "consulting", got.JobName)
	require.Equal(t, 60.5, got.Rate)
	require.True(t, got.StartTime.Equal(start))
	require.NotNil(t, got.EndTime)
	require.True(t, got.EndTime.Equal(end))
	require.Equal(t, []string{"mon", "wed"}, got.RepeatDays)
	require.False(t, got.IsActive)
}

func TestSessionRepository_GetMissing(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	_, err := repo.Get(ctx, 1, 99)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepository_GetScopedToUser(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	sess := &session.Session{UserID: 2, Rate: 60, StartTime: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, sess))

	_, err := repo.Get(ctx, 1, sess.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	sess := &session.Session{UserID: 1, Rate: 60, StartTime: time.Now().UTC(), IsActive: true}
	require.NoError(t, repo.Create(ctx, sess))

	end := sess.StartTime.Add(time.Hour)
	sess.EndTime = &end
	sess.IsActive = false
	require.NoError(t, repo.Update(ctx, sess))

	got, err := repo.Get(ctx, 1, sess.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
	require.NotNil(t, got.EndTime)
}

func TestSessionRepository_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	sess := &session.Session{ID: 99, UserID: 1, Rate: 60, StartTime: time.Now().UTC()}
	require.ErrorIs(t, repo.Update(ctx, sess), repository.ErrNotFound)
}

func TestSessionRepository_DeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))
	require.NoError(t, repo.Delete(ctx, 1, 99))
}

func TestSessionRepository_GetActive(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	_, err := repo.GetActive(ctx, 1)
	require.ErrorIs(t, err, repository.ErrNotFound)

	start := time.Now().UTC()
	end := start.Add(time.Hour)
	finished := &session.Session{UserID: 1, Rate: 60, StartTime: start, EndTime: &end}
	active := &session.Session{UserID: 1, Rate: 60, StartTime: start, IsActive: true}
	require.NoError(t, repo.Create(ctx, finished))
	require.NoError(t, repo.Create(ctx, active))

	got, err := repo.GetActive(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, active.ID, got.ID)
}

func TestSessionRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewSessionRepository(newTestDB(t))

	start := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, &session.Session{UserID: 1, Rate: 60, StartTime: start}))
	require.NoError(t, repo.Create(ctx, &session.Session{UserID: 1, Rate: 80, StartTime: start}))
	require.NoError(t, repo.Create(ctx, &session.Session{UserID: 2, Rate: 40, StartTime: start}))

	sessions, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
}

func TestJobRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewJobRepository(newTestDB(t))

	j := &job.Job{UserID: 1, Name: "consulting"}
	require.NoError(t, repo.Create(ctx, j))
	require.NotZero(t, j.ID)

	jobs, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "consulting", jobs[0].Name)

	require.NoError(t, repo.Delete(ctx, 1, j.ID))
	jobs, err = repo.List(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, jobs)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewUserRepository(newTestDB(t))

	u := &user.User{Email: "anna@example.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	got, err := repo.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "anna@example.com", got.Email)

	got, err = repo.GetByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	dup := &user.User{Email: "anna@example.com", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	require.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)

	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
