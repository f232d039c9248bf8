package sessions

import (
	"context"
	"time"

	"dialog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) error
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
