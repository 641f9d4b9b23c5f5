package db

import (
	"context"
	"time"
)

const upsertChampionStat = `-- name: UpsertChampionStat :exec
INSERT INTO champion_stats (
    player_id, champion_id, champion_name, games_played, wins, losses,
    win_rate, avg_kda, last_played, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (player_id, champion_id) DO UPDATE SET
    champion_name = excluded.champion_name,
    games_played  = excluded.games_played,
    wins          = excluded.wins,
    losses        = excluded.losses,
    win_rate      = excluded.win_rate,
    avg_kda       = excluded.avg_kda,
    last_played   = excluded.last_played,
    updated_at    = excluded.updated_at
`

type UpsertChampionStatParams struct {
	PlayerID     string
	ChampionID   int64
	ChampionName string
	GamesPlayed  int64
	Wins         int64
	Losses       int64
	WinRate      float64
	AvgKda       float64
	LastPlayed   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) UpsertChampionStat(ctx context.Context, arg UpsertChampionStatParams) error {
	_, err := q.db.ExecContext(ctx, upsertChampionStat,
		arg.PlayerID,
		arg.ChampionID,
		arg.ChampionName,
		arg.GamesPlayed,
		arg.Wins,
		arg.Losses,
		arg.WinRate,
		arg.AvgKda,
		arg.LastPlayed,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const listTopChampionStats = `-- name: ListTopChampionStats :many
SELECT player_id, champion_id, champion_name, games_played, wins, losses, win_rate, avg_kda, last_played, created_at, updated_at
FROM champion_stats
WHERE player_id = ?
ORDER BY games_played DESC, champion_id
LIMIT ?
`

type ListTopChampionStatsParams struct {
	PlayerID string
	Limit    int64
}

func (q *Queries) ListTopChampionStats(ctx context.Context, arg ListTopChampionStatsParams) ([]ChampionStat, error) {
	rows, err := q.db.QueryContext(ctx, listTopChampionStats, arg.PlayerID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ChampionStat
	for rows.Next() {
		var i ChampionStat
		if err := rows.Scan(
			&i.PlayerID,
			&i.ChampionID,
			&i.ChampionName,
			&i.GamesPlayed,
			&i.Wins,
			&i.Losses,
			&i.WinRate,
			&i.AvgKda,
			&i.LastPlayed,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countChampionStats = `-- name: CountChampionStats :one
SELECT COUNT(*) FROM champion_stats WHERE player_id = ?
`

func (q *Queries) CountChampionStats(ctx context.Context, playerID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countChampionStats, playerID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
