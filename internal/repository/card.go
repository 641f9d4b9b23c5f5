package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"clutchly/internal/db"
	"clutchly/internal/domain"

	"github.com/goccy/go-json"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type CardRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewCardRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *CardRepository {
	return &CardRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *CardRepository) GetForDate(ctx context.Context, playerID, date string) (*domain.DailyCard, error) {
	row, err := r.queries.GetDailyCard(ctx, db.GetDailyCardParams{
		PlayerID: playerID,
		CardDate: date,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s/%s: %w", playerID, date, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return toDomainCard(row)
}

// Create stores card unless one already exists for the same player and date,
// in which case the stored card is returned instead.
func (r *CardRepository) Create(ctx context.Context, card *domain.DailyCard) (*domain.DailyCard, error) {
	if card.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate nanoid: %w", err)
		}
		card.ID = id
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}

	picks, err := json.Marshal(card.Picks)
	if err != nil {
		return nil, err
	}
	avoid, err := json.Marshal(card.Avoid)
	if err != nil {
		return nil, err
	}
	ban, err := json.Marshal(card.Ban)
	if err != nil {
		return nil, err
	}
	build, err := json.Marshal(card.Build)
	if err != nil {
		return nil, err
	}

	n, err := r.queries.InsertDailyCard(ctx, db.InsertDailyCardParams{
		ID:           card.ID,
		PlayerID:     card.PlayerID,
		CardDate:     card.Date,
		Picks:        string(picks),
		Avoid:        string(avoid),
		Ban:          string(ban),
		Build:        string(build),
		PatchVersion: card.PatchVersion,
		Source:       string(card.Source),
		CreatedAt:    card.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert daily card: %w", err)
	}
	if n == 0 {
		r.logger.Debug().Str("player_id", card.PlayerID).Str("date", card.Date).Msg("daily card already exists")
		return r.GetForDate(ctx, card.PlayerID, card.Date)
	}
	return card, nil
}

func toDomainCard(row db.DailyCard) (*domain.DailyCard, error) {
	card := &domain.DailyCard{
		ID:           row.ID,
		PlayerID:     row.PlayerID,
		Date:         row.CardDate,
		PatchVersion: row.PatchVersion,
		Source:       domain.CardSource(row.Source),
		CreatedAt:    row.CreatedAt,
	}
	if err := json.Unmarshal([]byte(row.Picks), &card.Picks); err != nil {
		return nil, fmt.Errorf("decode picks: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Avoid), &card.Avoid); err != nil {
		return nil, fmt.Errorf("decode avoid: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Ban), &card.Ban); err != nil {
		return nil, fmt.Errorf("decode ban: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Build), &card.Build); err != nil {
		return nil, fmt.Errorf("decode build: %w", err)
	}
	return card, nil
}
