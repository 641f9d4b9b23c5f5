package db

import (
	"context"
	"time"
)

const insertWaitlistEmail = `-- name: InsertWaitlistEmail :execrows
INSERT INTO waitlist_emails (id, email, source, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (email) DO NOTHING
`

type InsertWaitlistEmailParams struct {
	ID        string
	Email     string
	Source    string
	CreatedAt time.Time
}

func (q *Queries) InsertWaitlistEmail(ctx context.Context, arg InsertWaitlistEmailParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertWaitlistEmail, arg.ID, arg.Email, arg.Source, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
