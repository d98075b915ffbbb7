package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pzaremba/worklog/internal/domain/earnings"
	"github.com/pzaremba/worklog/internal/domain/job"
	"github.com/pzaremba/worklog/internal/domain/session"
)

const serverInstructions = `worklog tracks work sessions and the money they earn.

- A session is a span of time worked on a job at an hourly rate.
- Exactly one session can be running at a time; start_timer stops any
  session that is still running before opening a new one.
- log_session records a finished span directly, without the timer.
- get_summary aggregates duration and earnings, optionally grouped by
  day, month or job, converted to the requested currency.`

// SessionService defines session operations needed by the tool surface.
type SessionService interface {
	List(ctx context.Context, userID int64) ([]session.Session, error)
	Create(ctx context.Context, userID int64, req session.CreateRequest) (*session.Session, error)
	StartTimer(ctx context.Context, userID int64, jobName string, rate float64) (*session.Session, error)
	StopTimer(ctx context.Context, userID int64) (*session.Session, error)
}

// JobService defines predefined-job operations needed by the tool surface.
type JobService interface {
	List(ctx context.Context, userID int64) ([]job.Job, error)
}

// Services contains the domain services the tools call into.
type Services struct {
	Sessions SessionService
	Jobs     JobService
}

// Config contains server configuration.
type Config struct {
	Services     Services
	Rates        earnings.Table
	BaseCurrency string
	Logger       *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
// The stdio surface is single-user; every tool call runs as localUserID.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "worklog",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(localUserMiddleware(localUserID))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg)

	return server
}
