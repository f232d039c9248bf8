// Package http implements the REST surface of the dialog server. Handlers
// contain no business logic: they decode requests, call services and encode
// explicit response types.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dialog/internal/logging"
	"dialog/internal/server/config"
	"dialog/internal/server/models"
)

// authService is the slice of AuthService the transport needs.
type authService interface {
	Register(ctx context.Context, loginHandle, displayName, rawPassword string) (*models.User, error)
	Login(ctx context.Context, loginHandle, rawPassword string) (string, time.Time, *models.User, error)
	Resolve(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// directoryService is the slice of DirectoryService the transport needs.
type directoryService interface {
	Search(ctx context.Context, query string, limit int) ([]models.DirectoryEntry, error)
}

// messagingService is the slice of MessagingService the transport needs.
type messagingService interface {
	Send(ctx context.Context, senderID, recipientID, rawContent string) (*models.Message, error)
	History(ctx context.Context, userID, counterpartID string, limit, offset int) ([]models.Message, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
}

// Server wires the gin engine to the service layer.
type Server struct {
	address         string
	logger          logging.Logger
	auth            authService
	directory       directoryService
	messaging       messagingService
	sessionValidity time.Duration
	allowedOrigins  []string
}

// NewServer constructs a Server from config and services.
func NewServer(cfg *config.Config, l logging.Logger, as authService, ds directoryService, ms messagingService) *Server {
	return &Server{
		address:         cfg.EndpointAddr,
		logger:          l.With("module", "http_server"),
		auth:            as,
		directory:       ds,
		messaging:       ms,
		sessionValidity: cfg.SessionValidityDuration,
		allowedOrigins:  cfg.AllowedOrigins,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())

	r.GET("/", s.handleRoot)

	api := r.Group("/api/v1")
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	authed := api.Group("")
	authed.Use(s.sessionMiddleware())
	authed.POST("/logout", s.handleLogout)
	authed.GET("/me", s.handleMe)
	authed.GET("/users/search", s.handleSearch)
	authed.POST("/messages", s.handleSendMessage)
	authed.GET("/messages/conversations", s.handleListConversations)
	authed.GET("/messages/:counterpartId", s.handleHistory)

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
