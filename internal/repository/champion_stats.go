package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clutchly/internal/constants"
	"clutchly/internal/db"
	"clutchly/internal/domain"

	"github.com/rs/zerolog"
)

type ChampionStatsRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewChampionStatsRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ChampionStatsRepository {
	return &ChampionStatsRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// UpsertBatch overwrites each (player, champion) row with the given values.
// It never adds to what is stored.
func (r *ChampionStatsRepository) UpsertBatch(ctx context.Context, rows []domain.ChampionStatistics) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	for i := 0; i < len(rows); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		for _, row := range rows[i:end] {
			err := qtx.UpsertChampionStat(ctx, db.UpsertChampionStatParams{
				PlayerID:     row.PlayerID,
				ChampionID:   int64(row.ChampionID),
				ChampionName: row.ChampionName,
				GamesPlayed:  int64(row.GamesPlayed),
				Wins:         int64(row.Wins),
				Losses:       int64(row.Losses),
				WinRate:      row.WinRate,
				AvgKda:       row.AvgKDA,
				LastPlayed:   row.LastPlayed.UTC(),
				CreatedAt:    now,
				UpdatedAt:    now,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert champion stat %s/%d: %w", row.PlayerID, row.ChampionID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit champion stats: %w", err)
	}

	r.logger.Debug().Int("rows", len(rows)).Str("player_id", rows[0].PlayerID).Msg("champion stats upserted")
	return nil
}

// TopByGames returns up to limit rows for playerID, most played first.
func (r *ChampionStatsRepository) TopByGames(ctx context.Context, playerID string, limit int) ([]domain.ChampionStatistics, error) {
	rows, err := r.queries.ListTopChampionStats(ctx, db.ListTopChampionStatsParams{
		PlayerID: playerID,
		Limit:    int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.ChampionStatistics, len(rows))
	for i, s := range rows {
		result[i] = domain.ChampionStatistics{
			PlayerID:     s.PlayerID,
			ChampionID:   int(s.ChampionID),
			ChampionName: s.ChampionName,
			GamesPlayed:  int(s.GamesPlayed),
			Wins:         int(s.Wins),
			Losses:       int(s.Losses),
			WinRate:      s.WinRate,
			AvgKDA:       s.AvgKda,
			LastPlayed:   s.LastPlayed,
			CreatedAt:    s.CreatedAt,
			UpdatedAt:    s.UpdatedAt,
		}
	}
	return result, nil
}

func (r *ChampionStatsRepository) Count(ctx context.Context, playerID string) (int, error) {
	n, err := r.queries.CountChampionStats(ctx, playerID)
	return int(n), err
}
