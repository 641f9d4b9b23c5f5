package db

import (
	"context"
	"time"
)

const getDailyCard = `-- name: GetDailyCard :one
SELECT id, player_id, card_date, picks, avoid, ban, build, patch_version, source, created_at
FROM daily_cards
WHERE player_id = ? AND card_date = ?
`

type GetDailyCardParams struct {
	PlayerID string
	CardDate string
}

func (q *Queries) GetDailyCard(ctx context.Context, arg GetDailyCardParams) (DailyCard, error) {
	row := q.db.QueryRowContext(ctx, getDailyCard, arg.PlayerID, arg.CardDate)
	var i DailyCard
	err := row.Scan(
		&i.ID,
		&i.PlayerID,
		&i.CardDate,
		&i.Picks,
		&i.Avoid,
		&i.Ban,
		&i.Build,
		&i.PatchVersion,
		&i.Source,
		&i.CreatedAt,
	)
	return i, err
}

// InsertDailyCard keeps the first card written for a (player, date); a racing
// second writer is ignored and reads back the winner.
const insertDailyCard = `-- name: InsertDailyCard :execrows
INSERT INTO daily_cards (id, player_id, card_date, picks, avoid, ban, build, patch_version, source, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (player_id, card_date) DO NOTHING
`

type InsertDailyCardParams struct {
	ID           string
	PlayerID     string
	CardDate     string
	Picks        string
	Avoid        string
	Ban          string
	Build        string
	PatchVersion string
	Source       string
	CreatedAt    time.Time
}

func (q *Queries) InsertDailyCard(ctx context.Context, arg InsertDailyCardParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertDailyCard,
		arg.ID,
		arg.PlayerID,
		arg.CardDate,
		arg.Picks,
		arg.Avoid,
		arg.Ban,
		arg.Build,
		arg.PatchVersion,
		arg.Source,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
