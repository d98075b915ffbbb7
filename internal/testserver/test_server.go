// Package testserver spins up a full HTTP stack over an in-memory SQLite
// database for end-to-end tests.
package testserver

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pzaremba/worklog/internal/domain/job"
	"github.com/pzaremba/worklog/internal/domain/session"
	"github.com/pzaremba/worklog/internal/domain/user"
	"github.com/pzaremba/worklog/internal/sqlite"
	"github.com/pzaremba/worklog/internal/transport"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB

	Sessions *session.Service
	Jobs     *job.Service
	Users    *user.Service
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	sessionSvc := session.NewService(sqlite.NewSessionRepository(db), nil)
	jobSvc := job.NewService(sqlite.NewJobRepository(db), nil)
	userSvc := user.NewService(sqlite.NewUserRepository(db), time.Hour, nil)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Sessions: sessionSvc,
		Jobs:     jobSvc,
		Users:    userSvc,
	}))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Sessions: sessionSvc,
		Jobs:     jobSvc,
		Users:    userSvc,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// Client returns an HTTP client with a cookie jar, so login cookies
// persist across requests.
func (ts *TestServer) Client(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base := ts.Server.Client()
	return &http.Client{Transport: base.Transport, Jar: jar}
}
