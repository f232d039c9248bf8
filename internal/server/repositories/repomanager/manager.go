package repomanager

import (
	"context"
	"database/sql"

	"dialog/internal/dbx"
	"dialog/internal/server/repositories/messages"
	"dialog/internal/server/repositories/sessions"
	"dialog/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Messages(db dbx.DBTX) messages.Repository
}
