package messages

import (
	"context"

	"dialog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	ListPair(ctx context.Context, userID, counterpartID string, limit, offset int) ([]models.Message, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
}
