package domain

import (
	"time"
)

const (
	TierFree = "free"
	TierPro  = "pro"
)

// PlayerProfile is the account-level record. Sync owns Rank, Role and
// LastSyncAt; identity and subscription fields belong to auth and billing.
type PlayerProfile struct {
	ID               string
	Email            string
	RiotPuuid        string
	RiotName         string
	RiotTag          string
	Region           string // platform shard, e.g. "na1"
	Rank             string
	Role             string
	SubscriptionTier string
	LastSyncAt       time.Time // last successful sync
	// LastSyncAttemptAt is stamped by the scheduler whether or not the sync
	// succeeds.
	LastSyncAttemptAt time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *PlayerProfile) IsLinked() bool {
	return p.RiotPuuid != ""
}

type PlayerIdentity struct {
	Puuid    string
	GameName string
	TagLine  string
}

// MatchParticipation is one player's line in one completed match. It is never
// stored; only its contribution to ChampionStatistics is.
type MatchParticipation struct {
	MatchID      string
	ChampionID   int
	ChampionName string
	Position     string // raw teamPosition, e.g. "BOTTOM"
	Kills        int
	Deaths       int
	Assists      int
	Win          bool
	GameEnd      time.Time
}

type ChampionStatistics struct {
	PlayerID     string
	ChampionID   int
	ChampionName string
	GamesPlayed  int
	Wins         int
	Losses       int
	WinRate      float64 // percentage, 0-100
	AvgKDA       float64
	LastPlayed   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SkipReason string

const (
	SkipNotFound       SkipReason = "match_not_found"
	SkipUnavailable    SkipReason = "upstream_unavailable"
	SkipNotParticipant SkipReason = "not_participant"
	SkipMalformed      SkipReason = "malformed_match"
)

// MatchOutcome is the per-match result of the fetch loop: either a
// participation or the reason it was skipped.
type MatchOutcome struct {
	MatchID       string
	Participation MatchParticipation
	Skip          SkipReason
}

func (o MatchOutcome) Skipped() bool {
	return o.Skip != ""
}

type SyncResult struct {
	PlayerID         string
	MatchesListed    int
	MatchesProcessed int
	MatchesSkipped   int
	SkipCounts       map[SkipReason]int
	ChampionsUpdated int
	Rank             string
	Role             string
	SyncedAt         time.Time
}

type Pick struct {
	Champion   string `json:"champion"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

type ChampionCall struct {
	Champion string `json:"champion"`
	Reason   string `json:"reason"`
}

type Build struct {
	For      string   `json:"for"`
	Items    []string `json:"items"`
	Boots    string   `json:"boots"`
	Keystone string   `json:"keystone"`
}

type CardSource string

const (
	CardSourceAI       CardSource = "ai"
	CardSourceFallback CardSource = "fallback"
)

type DailyCard struct {
	ID           string
	PlayerID     string
	Date         string // YYYY-MM-DD, UTC
	Picks        []Pick
	Avoid        ChampionCall
	Ban          ChampionCall
	Build        Build
	PatchVersion string
	Source       CardSource
	CreatedAt    time.Time
}

type WaitlistEntry struct {
	ID        string
	Email     string
	Source    string
	CreatedAt time.Time
}
