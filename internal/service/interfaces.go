package service

import (
	"context"
	"time"

	"clutchly/internal/api"
	"clutchly/internal/coach"
	"clutchly/internal/domain"
)

type RiotAPI interface {
	ResolveAccount(ctx context.Context, gameName, tagLine string) (*api.AccountResponse, error)
	ResolveSummoner(ctx context.Context, puuid, platform string) (*api.SummonerResponse, error)
	FetchRankedEntries(ctx context.Context, summonerID, platform string) ([]api.LeagueEntryResponse, error)
	ListRecentMatchIDs(ctx context.Context, puuid, platform string, count, queueID int) ([]string, error)
	FetchMatch(ctx context.Context, matchID, platform string) (*api.MatchResponse, error)
	GetRateLimitInfo() api.RateLimitInfo
}

type PlayerStore interface {
	Create(ctx context.Context, player *domain.PlayerProfile) error
	Get(ctx context.Context, id string) (*domain.PlayerProfile, error)
	GetByPuuid(ctx context.Context, puuid string) (*domain.PlayerProfile, error)
	LinkRiotAccount(ctx context.Context, id string, identity domain.PlayerIdentity) error
	UpdateSyncFields(ctx context.Context, id, rank, role string, syncedAt time.Time) error
}

type ChampionStatsStore interface {
	UpsertBatch(ctx context.Context, rows []domain.ChampionStatistics) error
	TopByGames(ctx context.Context, playerID string, limit int) ([]domain.ChampionStatistics, error)
	Count(ctx context.Context, playerID string) (int, error)
}

type CardStore interface {
	GetForDate(ctx context.Context, playerID, date string) (*domain.DailyCard, error)
	Create(ctx context.Context, card *domain.DailyCard) (*domain.DailyCard, error)
}

type WaitlistStore interface {
	Add(ctx context.Context, entry *domain.WaitlistEntry) (bool, error)
}

// Pacer blocks until the next upstream request may be sent.
type Pacer interface {
	Wait(ctx context.Context) error
}

type CardGenerator interface {
	Generate(ctx context.Context, player coach.PlayerContext, pool []coach.ChampionData) (coach.Card, domain.CardSource)
}
