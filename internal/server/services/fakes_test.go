package services

import (
	"context"
	"database/sql"
	"time"

	"dialog/internal/dbx"
	"dialog/internal/server/models"
	messagesrepo "dialog/internal/server/repositories/messages"
	sessionsrepo "dialog/internal/server/repositories/sessions"
	usersrepo "dialog/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	created   *models.User

	getByIDOut *models.User
	getByIDErr error

	getByHandleOut *models.User
	getByHandleErr error

	searchOut     []models.DirectoryEntry
	searchErr     error
	searchPattern string
	searchLimit   int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDOut, nil
}

func (f *fakeUsersRepo) GetByLoginHandle(ctx context.Context, handle string) (*models.User, error) {
	if f.getByHandleErr != nil {
		return nil, f.getByHandleErr
	}
	return f.getByHandleOut, nil
}

func (f *fakeUsersRepo) SearchByDisplayName(ctx context.Context, pattern string, limit int) ([]models.DirectoryEntry, error) {
	f.searchPattern = pattern
	f.searchLimit = limit
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchOut, nil
}

type fakeSessionsRepo struct {
	createErr        error
	createdUserID    string
	createdToken     string
	createdExpiresAt time.Time

	findOut *models.Session
	findErr error

	delErr       error
	deletedToken string

	delExpiredN   int64
	delExpiredErr error
}

func (f *fakeSessionsRepo) Create(ctx context.Context, userID, token string, expiresAt time.Time) error {
	f.createdUserID = userID
	f.createdToken = token
	f.createdExpiresAt = expiresAt
	return f.createErr
}

func (f *fakeSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) error {
	f.deletedToken = token
	return f.delErr
}

func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return f.delExpiredN, f.delExpiredErr
}

type fakeMessagesRepo struct {
	createErr error
	created   *models.Message

	listPairOut    []models.Message
	listPairErr    error
	listPairLimit  int
	listPairOffset int

	listConvOut []models.Conversation
	listConvErr error
}

func (f *fakeMessagesRepo) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	f.created = m
	if f.createErr != nil {
		return nil, f.createErr
	}
	m.CreatedAt = time.Now()
	return m, nil
}

func (f *fakeMessagesRepo) ListPair(ctx context.Context, userID, counterpartID string, limit, offset int) ([]models.Message, error) {
	f.listPairLimit = limit
	f.listPairOffset = offset
	if f.listPairErr != nil {
		return nil, f.listPairErr
	}
	return f.listPairOut, nil
}

func (f *fakeMessagesRepo) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	if f.listConvErr != nil {
		return nil, f.listConvErr
	}
	return f.listConvOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
	m *fakeMessagesRepo
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return f.u }

func (f *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return f.s }

func (f *fakeRepoManager) Messages(db dbx.DBTX) messagesrepo.Repository { return f.m }
