// Package services contains server-side business logic. This file implements
// AuthService: registration, credential verification and the lifecycle of
// opaque database-backed session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"dialog/internal/common"
	"dialog/internal/server/config"
	"dialog/internal/server/models"
	"dialog/internal/server/repositories/repomanager"
)

const bcryptCost = 12

// sessionTokenBytes is the entropy of a session token; hex encoding doubles
// the string length (32 bytes -> 64 characters).
const sessionTokenBytes = 32

// dummyHash is compared against when a login names an unknown handle, so the
// unknown-user and wrong-password paths cost the same.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcryptCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService handles user registration, login/logout and session
// resolution. Sessions are opaque random tokens stored in the database;
// an expired or deleted token is indistinguishable from a nonexistent one.
type AuthService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	sessionValidity time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:              db,
		repomanager:     m,
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Register validates the input, hashes the password and creates the user.
// The raw password is never stored; the returned user carries no hash.
// A duplicate login handle yields common.ErrorConflict (the uniqueness
// check and insert are one atomic statement in the repository).
func (s *AuthService) Register(ctx context.Context, loginHandle, displayName, rawPassword string) (*models.User, error) {
	if err := validateLoginHandle(loginHandle); err != nil {
		return nil, err
	}
	trimmedName, err := validateDisplayName(displayName)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(rawPassword); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		LoginHandle:  loginHandle,
		DisplayName:  trimmedName,
		PasswordHash: string(hash),
	}

	repo := s.repomanager.Users(s.db)
	created, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	created.PasswordHash = ""
	return created, nil
}

// Login verifies the credentials and, on success, mints a new session token
// with an absolute expiry. Unknown handle and wrong password are
// indistinguishable: both return common.ErrorUnauthorized after a hash
// comparison of equal cost.
func (s *AuthService) Login(ctx context.Context, loginHandle, rawPassword string) (token string, expiresAt time.Time, user *models.User, err error) {
	repo := s.repomanager.Users(s.db)

	user, err = repo.GetByLoginHandle(ctx, loginHandle)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(rawPassword))
			return "", time.Time{}, nil, common.ErrorUnauthorized
		}
		return "", time.Time{}, nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(rawPassword)); err != nil {
		return "", time.Time{}, nil, common.ErrorUnauthorized
	}

	token, err = common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return "", time.Time{}, nil, common.ErrorInternal
	}
	expiresAt = time.Now().Add(s.sessionValidity)

	if err := s.repomanager.Sessions(s.db).Create(ctx, user.ID, token, expiresAt); err != nil {
		return "", time.Time{}, nil, common.ErrorInternal
	}

	user.PasswordHash = ""
	return token, expiresAt, user, nil
}

// Resolve maps a session token to its owning user id. Unknown, revoked and
// expired tokens all yield common.ErrorUnauthorized. Resolving never
// extends the session's expiry.
func (s *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrorUnauthorized
	}

	session, err := s.repomanager.Sessions(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !session.ExpiresAt.After(time.Now()) {
		return "", common.ErrorUnauthorized
	}

	return session.UserID, nil
}

// Logout revokes the session. Revoking an already-invalid token is not an
// error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repomanager.Sessions(s.db).Delete(ctx, token); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// GetByID returns the user record for id, without the password hash.
func (s *AuthService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	user.PasswordHash = ""
	return user, nil
}

// PurgeExpiredSessions removes sessions past their expiry. Called
// periodically by the app; safe to run concurrently with logins.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.repomanager.Sessions(s.db).DeleteExpired(ctx)
}
