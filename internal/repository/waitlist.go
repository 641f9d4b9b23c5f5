package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clutchly/internal/db"
	"clutchly/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type WaitlistRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewWaitlistRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *WaitlistRepository {
	return &WaitlistRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Add records entry and reports whether it was new. A repeated email is not
// an error.
func (r *WaitlistRepository) Add(ctx context.Context, entry *domain.WaitlistEntry) (bool, error) {
	id, err := gonanoid.New()
	if err != nil {
		return false, fmt.Errorf("failed to generate nanoid: %w", err)
	}
	entry.ID = id
	entry.CreatedAt = time.Now().UTC()

	n, err := r.queries.InsertWaitlistEmail(ctx, db.InsertWaitlistEmailParams{
		ID:        entry.ID,
		Email:     entry.Email,
		Source:    entry.Source,
		CreatedAt: entry.CreatedAt,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
