package db

import (
	"context"
	"database/sql"
	"time"
)

const playerColumns = `id, email, riot_puuid, riot_name, riot_tag, region, rank, role, subscription_tier, last_sync_at, last_sync_attempt_at, created_at, updated_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (Player, error) {
	var i Player
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.RiotPuuid,
		&i.RiotName,
		&i.RiotTag,
		&i.Region,
		&i.Rank,
		&i.Role,
		&i.SubscriptionTier,
		&i.LastSyncAt,
		&i.LastSyncAttemptAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createPlayer = `-- name: CreatePlayer :exec
INSERT INTO players (id, email, region, subscription_tier, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreatePlayerParams struct {
	ID               string
	Email            string
	Region           string
	SubscriptionTier string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) error {
	_, err := q.db.ExecContext(ctx, createPlayer,
		arg.ID,
		arg.Email,
		arg.Region,
		arg.SubscriptionTier,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getPlayerByID = `-- name: GetPlayerByID :one
SELECT ` + playerColumns + ` FROM players WHERE id = ?
`

func (q *Queries) GetPlayerByID(ctx context.Context, id string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayerByID, id))
}

const getPlayerByPuuid = `-- name: GetPlayerByPuuid :one
SELECT ` + playerColumns + ` FROM players WHERE riot_puuid = ?
`

func (q *Queries) GetPlayerByPuuid(ctx context.Context, riotPuuid string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayerByPuuid, riotPuuid))
}

const linkPlayerRiotAccount = `-- name: LinkPlayerRiotAccount :execrows
UPDATE players
SET riot_puuid = ?, riot_name = ?, riot_tag = ?, updated_at = ?
WHERE id = ?
`

type LinkPlayerRiotAccountParams struct {
	RiotPuuid string
	RiotName  string
	RiotTag   string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) LinkPlayerRiotAccount(ctx context.Context, arg LinkPlayerRiotAccountParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, linkPlayerRiotAccount,
		arg.RiotPuuid,
		arg.RiotName,
		arg.RiotTag,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updatePlayerSync = `-- name: UpdatePlayerSync :execrows
UPDATE players
SET rank = COALESCE(?, rank),
    role = COALESCE(?, role),
    last_sync_at = ?,
    last_sync_attempt_at = ?,
    updated_at = ?
WHERE id = ?
`

type UpdatePlayerSyncParams struct {
	Rank       sql.NullString
	Role       sql.NullString
	LastSyncAt time.Time
	UpdatedAt  time.Time
	ID         string
}

func (q *Queries) UpdatePlayerSync(ctx context.Context, arg UpdatePlayerSyncParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updatePlayerSync,
		arg.Rank,
		arg.Role,
		arg.LastSyncAt,
		arg.LastSyncAt,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const markPlayerSyncAttempt = `-- name: MarkPlayerSyncAttempt :execrows
UPDATE players SET last_sync_attempt_at = ? WHERE id = ?
`

type MarkPlayerSyncAttemptParams struct {
	LastSyncAttemptAt time.Time
	ID                string
}

func (q *Queries) MarkPlayerSyncAttempt(ctx context.Context, arg MarkPlayerSyncAttemptParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, markPlayerSyncAttempt, arg.LastSyncAttemptAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listStaleLinkedPlayers = `-- name: ListStaleLinkedPlayers :many
SELECT ` + playerColumns + ` FROM players
WHERE riot_puuid IS NOT NULL AND (last_sync_attempt_at IS NULL OR last_sync_attempt_at < ?)
ORDER BY last_sync_attempt_at IS NOT NULL, last_sync_attempt_at, created_at, id
LIMIT ?
`

type ListStaleLinkedPlayersParams struct {
	AttemptedBefore time.Time
	Limit           int64
}

func (q *Queries) ListStaleLinkedPlayers(ctx context.Context, arg ListStaleLinkedPlayersParams) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listStaleLinkedPlayers, arg.AttemptedBefore, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		i, err := scanPlayer(rows)
		if err != nil {
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
