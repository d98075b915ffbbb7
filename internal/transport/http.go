package transport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pzaremba/worklog/internal/domain/earnings"
	"github.com/pzaremba/worklog/internal/domain/job"
	"github.com/pzaremba/worklog/internal/domain/session"
	"github.com/pzaremba/worklog/internal/domain/user"
	"github.com/pzaremba/worklog/internal/metrics"
)

// Server wires HTTP handlers around the domain services.
type Server struct {
	sessions      *session.Service
	jobs          *job.Service
	users         *user.Service
	rates         earnings.Table
	baseCurrency  string
	logger        *slog.Logger
	secureCookies bool
}

// Config collects the dependencies of the HTTP server. Users may be nil,
// in which case authentication is disabled and every request operates as
// the anonymous user.
type Config struct {
	Sessions *session.Service
	Jobs     *job.Service
	Users    *user.Service
	Rates    earnings.Table
	// BaseCurrency is the currency session rates are recorded in.
	BaseCurrency  string
	Logger        *slog.Logger
	SecureCookies bool
}

// NewServer creates the HTTP router with middleware.
func NewServer(cfg Config) *chi.Mux {
	srv := &Server{
		sessions:      cfg.Sessions,
		jobs:          cfg.Jobs,
		users:         cfg.Users,
		rates:         cfg.Rates,
		baseCurrency:  cfg.BaseCurrency,
		logger:        cfg.Logger,
		secureCookies: cfg.SecureCookies,
	}
	if srv.rates == nil {
		srv.rates = earnings.DefaultTable()
	}
	if srv.baseCurrency == "" {
		srv.baseCurrency = "USD"
	}

	r := chi.NewRouter()
	r.Use(metrics.Middleware)

	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	if srv.users != nil {
		r.Post("/api/register", srv.handleRegister)
		r.Post("/api/login", srv.handleLogin)
		r.Post("/api/logout", srv.handleLogout)
		r.Get("/api/user", srv.handleCurrentUser)
	}

	r.Group(func(r chi.Router) {
		if srv.users != nil {
			r.Use(AuthMiddleware(srv.users))
		} else {
			r.Use(NoAuthMiddleware(0))
		}

		r.Get("/api/sessions", srv.handleListSessions)
		r.Post("/api/sessions", srv.handleCreateSession)
		r.Post("/api/sessions/start", srv.handleStartTimer)
		r.Post("/api/sessions/stop", srv.handleStopTimer)
		r.Get("/api/sessions/{id}", srv.handleGetSession)
		r.Patch("/api/sessions/{id}", srv.handleUpdateSession)
		r.Delete("/api/sessions/{id}", srv.handleDeleteSession)

		r.Post("/api/schedule", srv.handleCreateSchedule)
		r.Get("/api/summary", srv.handleSummary)

		r.Get("/api/predefined-jobs", srv.handleListJobs)
		r.Post("/api/predefined-jobs", srv.handleCreateJob)
		r.Delete("/api/predefined-jobs/{id}", srv.handleDeleteJob)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
