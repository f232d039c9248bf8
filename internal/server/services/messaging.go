package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dialog/internal/common"
	"dialog/internal/dbx"
	"dialog/internal/server/models"
	"dialog/internal/server/repositories/repomanager"
)

const (
	historyDefaultLimit = 100
	historyMaxLimit     = 500

	// previewLength bounds the conversation-list preview of the last message.
	previewLength = 100
)

// MessagingService implements the message store and the conversation view
// derived from it.
type MessagingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewMessagingService constructs a MessagingService.
func NewMessagingService(db *sql.DB, m repomanager.RepositoryManager) *MessagingService {
	return &MessagingService{db: db, repomanager: m}
}

// Send validates and persists one directed message. The recipient existence
// check and the insert run in a single transaction, so a cancelled request
// leaves no partial state and a concurrently deleted recipient cannot slip
// through.
func (s *MessagingService) Send(ctx context.Context, senderID, recipientID, rawContent string) (*models.Message, error) {
	content, err := validateContent(rawContent)
	if err != nil {
		return nil, err
	}
	if senderID == recipientID {
		return nil, common.NewValidationError("cannot send a message to yourself")
	}

	msg := &models.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).GetByID(ctx, recipientID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error checking recipient: %w", err)
		}

		created, err := s.repomanager.Messages(tx).Create(ctx, msg)
		if err != nil {
			return fmt.Errorf("error creating message: %w", err)
		}
		msg = created
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}

	return msg, nil
}

// History returns the messages exchanged between userID and counterpartID,
// oldest first, ties broken by id. The counterpart must exist; an empty
// history for a real user is a valid, distinct outcome. limit defaults to
// 100 and is capped at 500; a negative offset is treated as 0.
func (s *MessagingService) History(ctx context.Context, userID, counterpartID string, limit, offset int) ([]models.Message, error) {
	if limit <= 0 {
		limit = historyDefaultLimit
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.repomanager.Users(s.db).GetByID(ctx, counterpartID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error checking counterpart: %w", err)
	}

	msgs, err := s.repomanager.Messages(s.db).ListPair(ctx, userID, counterpartID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	return msgs, nil
}

// ListConversations returns one entry per distinct counterpart userID has
// exchanged messages with, most recently active first. Each entry's preview
// is the pair's latest message truncated to previewLength runes. A
// counterpart with zero messages never appears.
func (s *MessagingService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	convs, err := s.repomanager.Messages(s.db).ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}

	for i := range convs {
		convs[i].LastMessageContent = truncateRunes(convs[i].LastMessageContent, previewLength)
	}
	return convs, nil
}
