package services

import (
	"context"
	"database/sql"
	"fmt"

	"dialog/internal/server/models"
	"dialog/internal/server/repositories/repomanager"
)

const (
	searchDefaultLimit = 20
	searchMaxLimit     = 50
)

// DirectoryService answers case-insensitive substring searches over display
// names. Login handles are never matched or returned.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager) *DirectoryService {
	return &DirectoryService{db: db, repomanager: m}
}

// Search matches query as a literal substring of display names.
// ILIKE metacharacters in the query are escaped so "100%" matches only the
// literal text. limit <= 0 falls back to the default; anything above the
// maximum is clamped. Results are ordered by display name.
func (s *DirectoryService) Search(ctx context.Context, query string, limit int) ([]models.DirectoryEntry, error) {
	trimmed, err := validateSearchQuery(query)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = searchDefaultLimit
	}
	if limit > searchMaxLimit {
		limit = searchMaxLimit
	}

	entries, err := s.repomanager.Users(s.db).SearchByDisplayName(ctx, escapeLikePattern(trimmed), limit)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}
	return entries, nil
}
