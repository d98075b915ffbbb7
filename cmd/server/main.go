package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pzaremba/worklog/internal/config"
	"github.com/pzaremba/worklog/internal/domain/earnings"
	"github.com/pzaremba/worklog/internal/domain/job"
	"github.com/pzaremba/worklog/internal/domain/session"
	"github.com/pzaremba/worklog/internal/domain/user"
	"github.com/pzaremba/worklog/internal/mcp"
	"github.com/pzaremba/worklog/internal/memory"
	"github.com/pzaremba/worklog/internal/sqlite"
	"github.com/pzaremba/worklog/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	var (
		sessionRepo session.Repository
		jobRepo     job.Repository
		userRepo    user.Repository
	)
	switch cfg.Store.Backend {
	case "memory":
		sessionRepo = memory.NewSessionStore()
		jobRepo = memory.NewJobStore()
		userRepo = memory.NewUserStore()
	default:
		if err := ensureDBDir(cfg.Store.Path); err != nil {
			logger.Error("failed to prepare database path", "error", err)
			os.Exit(1)
		}
		db, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.RunMigrations(); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		sessionRepo = sqlite.NewSessionRepository(db)
		jobRepo = sqlite.NewJobRepository(db)
		userRepo = sqlite.NewUserRepository(db)
	}

	sessionSvc := session.NewService(sessionRepo, logger)
	jobSvc := job.NewService(jobRepo, logger)

	rates := earnings.DefaultTable()

	if cfg.Transport.Mode == "stdio" {
		mcpServer := mcp.NewServer(mcp.Config{
			Services: mcp.Services{
				Sessions: sessionSvc,
				Jobs:     jobSvc,
			},
			Rates:        rates,
			BaseCurrency: cfg.Earnings.BaseCurrency,
			Logger:       logger,
		})
		runStdioMode(logger, mcpServer)
		return
	}

	var userSvc *user.Service
	if cfg.Auth.Enabled {
		ttl := time.Duration(cfg.Auth.SessionTTL) * time.Minute
		userSvc = user.NewService(userRepo, ttl, logger)
	}

	router := transport.NewServer(transport.Config{
		Sessions:      sessionSvc,
		Jobs:          jobSvc,
		Users:         userSvc,
		Rates:         rates,
		BaseCurrency:  cfg.Earnings.BaseCurrency,
		Logger:        logger,
		SecureCookies: cfg.Auth.SecureCookies,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "backend", cfg.Store.Backend, "auth", cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	stdio := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, stdio); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
