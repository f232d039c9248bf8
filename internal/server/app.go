// Package server initializes and runs the main application server.
// It opens the database, applies migrations, wires services to the HTTP
// transport, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"dialog/internal/logging"
	"dialog/internal/server/config"
	hs "dialog/internal/server/http"
	"dialog/internal/server/repositories/repomanager"
	"dialog/internal/server/services"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	db               *sql.DB
	authService      *services.AuthService
	directoryService *services.DirectoryService
	messagingService *services.MessagingService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	as := services.NewAuthService(db, rm, c)
	ds := services.NewDirectoryService(db, rm)
	ms := services.NewMessagingService(db, rm)

	return &App{
		config:           c,
		logger:           logger,
		db:               db,
		authService:      as,
		directoryService: ds,
		messagingService: ms,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := hs.NewServer(app.config, app.logger, app.authService, app.directoryService, app.messagingService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// runSessionCleanup purges expired sessions on the configured interval
// until ctx is cancelled.
func (app *App) runSessionCleanup(ctx context.Context) {
	ticker := time.NewTicker(app.config.SessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.authService.PurgeExpiredSessions(ctx)
			if err != nil {
				app.logger.Warn(ctx, "session cleanup failed", "error", err.Error())
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "purged expired sessions", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runSessionCleanup(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err.Error())
	}
}
