package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"clutchly/internal/db"
	"clutchly/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) Create(ctx context.Context, player *domain.PlayerProfile) error {
	now := time.Now().UTC()
	if player.SubscriptionTier == "" {
		player.SubscriptionTier = domain.TierFree
	}
	player.CreatedAt, player.UpdatedAt = now, now

	err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		ID:               player.ID,
		Email:            player.Email,
		Region:           player.Region,
		SubscriptionTier: player.SubscriptionTier,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("player %s: %w", player.ID, domain.ErrAlreadyExists)
	}
	return err
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.PlayerProfile, error) {
	player, err := r.queries.GetPlayerByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return toDomainPlayer(player), nil
}

func (r *PlayerRepository) GetByPuuid(ctx context.Context, puuid string) (*domain.PlayerProfile, error) {
	player, err := r.queries.GetPlayerByPuuid(ctx, puuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("puuid %s: %w", puuid, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return toDomainPlayer(player), nil
}

func (r *PlayerRepository) LinkRiotAccount(ctx context.Context, id string, identity domain.PlayerIdentity) error {
	n, err := r.queries.LinkPlayerRiotAccount(ctx, db.LinkPlayerRiotAccountParams{
		RiotPuuid: identity.Puuid,
		RiotName:  identity.GameName,
		RiotTag:   identity.TagLine,
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("puuid %s: %w", identity.Puuid, domain.ErrAlreadyLinked)
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpdateSyncFields writes the sync-owned profile columns. Empty rank or role
// leave the stored value untouched.
func (r *PlayerRepository) UpdateSyncFields(ctx context.Context, id, rank, role string, syncedAt time.Time) error {
	r.logger.Debug().
		Str("player_id", id).
		Str("rank", rank).
		Str("role", role).
		Time("synced_at", syncedAt).
		Msg("updating sync fields")

	n, err := r.queries.UpdatePlayerSync(ctx, db.UpdatePlayerSyncParams{
		Rank:       sql.NullString{String: rank, Valid: rank != ""},
		Role:       sql.NullString{String: role, Valid: role != ""},
		LastSyncAt: syncedAt.UTC(),
		UpdatedAt:  time.Now().UTC(),
		ID:         id,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("player_id", id).Msg("failed to update sync fields")
		return err
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// MarkSyncAttempt records that a sync was started for the player, whatever
// its outcome. ListStale orders by this stamp.
func (r *PlayerRepository) MarkSyncAttempt(ctx context.Context, id string, at time.Time) error {
	n, err := r.queries.MarkPlayerSyncAttempt(ctx, db.MarkPlayerSyncAttemptParams{
		LastSyncAttemptAt: at.UTC(),
		ID:                id,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListStale returns linked players with no sync attempt since cutoff, never
// attempted first, then oldest attempt first. A successful sync counts as an
// attempt.
func (r *PlayerRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.PlayerProfile, error) {
	players, err := r.queries.ListStaleLinkedPlayers(ctx, db.ListStaleLinkedPlayersParams{
		AttemptedBefore: cutoff.UTC(),
		Limit:           int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.PlayerProfile, len(players))
	for i, p := range players {
		result[i] = *toDomainPlayer(p)
	}
	return result, nil
}

func toDomainPlayer(p db.Player) *domain.PlayerProfile {
	profile := &domain.PlayerProfile{
		ID:               p.ID,
		Email:            p.Email,
		RiotPuuid:        p.RiotPuuid.String,
		RiotName:         p.RiotName,
		RiotTag:          p.RiotTag,
		Region:           p.Region,
		Rank:             p.Rank,
		Role:             p.Role,
		SubscriptionTier: p.SubscriptionTier,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.LastSyncAt.Valid {
		profile.LastSyncAt = p.LastSyncAt.Time
	}
	if p.LastSyncAttemptAt.Valid {
		profile.LastSyncAttemptAt = p.LastSyncAttemptAt.Time
	}
	return profile
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
