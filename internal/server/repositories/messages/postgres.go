// Package messages provides a PostgreSQL-backed repository for the
// append-only directed message log and the conversation view derived
// from it.
package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"dialog/internal/common"
	"dialog/internal/dbx"
	"dialog/internal/server/models"
)

const (
	pgForeignKeyViolation       = "23503"
	pgInvalidTextRepresentation = "22P02"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new message; created_at is assigned by the database and
// returned on the model. A foreign-key violation means the sender or
// recipient row is gone, and a malformed recipient id matches no row at all;
// both surface as common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	query := `
		INSERT INTO messages (id, sender_id, recipient_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		msg.ID, msg.SenderID, msg.RecipientID, msg.Content).Scan(&msg.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == pgForeignKeyViolation || pgErr.Code == pgInvalidTextRepresentation) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

// ListPair returns messages exchanged between userID and counterpartID in
// either direction, oldest first, ties broken by id for determinism.
func (r *PostgresRepository) ListPair(ctx context.Context, userID, counterpartID string, limit, offset int) ([]models.Message, error) {
	query := `
		SELECT id, sender_id, recipient_id, content, created_at
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at, id
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, query, userID, counterpartID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	msgs := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msgs, nil
}

// ListConversations derives one row per distinct counterpart of userID,
// each carrying the pair's most recent message, ordered by that message's
// timestamp descending. The best-per-counterpart selection is pushed down
// as a DISTINCT ON query so the full message set is never materialized in
// memory.
func (r *PostgresRepository) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	query := `
		SELECT t.counterpart_id, u.display_name, t.id, t.content, t.created_at
		FROM (
			SELECT DISTINCT ON (counterpart_id) counterpart_id, id, content, created_at
			FROM (
				SELECT id, content, created_at,
				       CASE WHEN sender_id = $1 THEN recipient_id ELSE sender_id END AS counterpart_id
				FROM messages
				WHERE sender_id = $1 OR recipient_id = $1
			) m
			ORDER BY counterpart_id, created_at DESC, id DESC
		) t
		JOIN users u ON u.id = t.counterpart_id
		ORDER BY t.created_at DESC, t.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	convs := []models.Conversation{}
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.CounterpartID, &c.CounterpartDisplayName,
			&c.LastMessageID, &c.LastMessageContent, &c.LastMessageTime); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return convs, nil
}
