package db

import (
	"database/sql"
	"time"
)

type Player struct {
	ID                string
	Email             string
	RiotPuuid         sql.NullString
	RiotName          string
	RiotTag           string
	Region            string
	Rank              string
	Role              string
	SubscriptionTier  string
	LastSyncAt        sql.NullTime
	LastSyncAttemptAt sql.NullTime
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ChampionStat struct {
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

type DailyCard struct {
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

type WaitlistEmail struct {
	ID        string
	Email     string
	Source    string
	CreatedAt time.Time
}
