package users

import (
	"context"

	"dialog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByLoginHandle(ctx context.Context, handle string) (*models.User, error)
	SearchByDisplayName(ctx context.Context, pattern string, limit int) ([]models.DirectoryEntry, error)
}
