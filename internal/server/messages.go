package server

import (
	"time"

	"clutchly/internal/domain"
	"clutchly/internal/service"
)

type PlayerRequest struct {
	PlayerID string `json:"playerId"`
}

type RegisterPlayerRequest struct {
	PlayerID string `json:"playerId,omitempty"`
	Email    string `json:"email"`
	Region   string `json:"region,omitempty"`
}

type LinkRiotAccountRequest struct {
	PlayerID string `json:"playerId"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type JoinWaitlistRequest struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

type PlayerResponse struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	RiotName         string     `json:"riotName,omitempty"`
	RiotTag          string     `json:"riotTag,omitempty"`
	Linked           bool       `json:"linked"`
	Region           string     `json:"region"`
	Rank             string     `json:"rank,omitempty"`
	Role             string     `json:"role,omitempty"`
	SubscriptionTier string     `json:"subscriptionTier"`
	LastSyncAt       *time.Time `json:"lastSyncAt,omitempty"`
}

type ChampionStatsResponse struct {
	ChampionID   int       `json:"championId"`
	ChampionName string    `json:"championName"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	WinRate      float64   `json:"winRate"`
	AvgKDA       float64   `json:"avgKda"`
	LastPlayed   time.Time `json:"lastPlayed"`
}

type ProfileResponse struct {
	Player           PlayerResponse          `json:"player"`
	Champions        []ChampionStatsResponse `json:"champions"`
	TrackedChampions int                     `json:"trackedChampions"`
}

type SyncMatchesResponse struct {
	MatchesListed    int            `json:"matchesListed"`
	MatchesProcessed int            `json:"matchesProcessed"`
	MatchesSkipped   int            `json:"matchesSkipped"`
	SkipCounts       map[string]int `json:"skipCounts,omitempty"`
	ChampionsUpdated int            `json:"championsUpdated"`
	Rank             string         `json:"rank,omitempty"`
	Role             string         `json:"role,omitempty"`
	SyncedAt         time.Time      `json:"syncedAt"`
}

type CardResponse struct {
	ID           string              `json:"id"`
	Date         string              `json:"date"`
	Picks        []domain.Pick       `json:"picks"`
	Avoid        domain.ChampionCall `json:"avoid"`
	Ban          domain.ChampionCall `json:"ban"`
	Build        domain.Build        `json:"build"`
	PatchVersion string              `json:"patchVersion"`
	Source       string              `json:"source"`
}

type JoinWaitlistResponse struct {
	Created bool   `json:"created"`
	Message string `json:"message"`
}

func toPlayerResponse(p *domain.PlayerProfile) PlayerResponse {
	resp := PlayerResponse{
		ID:               p.ID,
		Email:            p.Email,
		RiotName:         p.RiotName,
		RiotTag:          p.RiotTag,
		Linked:           p.IsLinked(),
		Region:           p.Region,
		Rank:             p.Rank,
		Role:             p.Role,
		SubscriptionTier: p.SubscriptionTier,
	}
	if !p.LastSyncAt.IsZero() {
		t := p.LastSyncAt
		resp.LastSyncAt = &t
	}
	return resp
}

func toProfileResponse(p *service.Profile) *ProfileResponse {
	resp := &ProfileResponse{
		Player:           toPlayerResponse(p.Player),
		Champions:        make([]ChampionStatsResponse, len(p.Champions)),
		TrackedChampions: p.TrackedChampions,
	}
	for i, c := range p.Champions {
		resp.Champions[i] = ChampionStatsResponse{
			ChampionID:   c.ChampionID,
			ChampionName: c.ChampionName,
			GamesPlayed:  c.GamesPlayed,
			Wins:         c.Wins,
			Losses:       c.Losses,
			WinRate:      c.WinRate,
			AvgKDA:       c.AvgKDA,
			LastPlayed:   c.LastPlayed,
		}
	}
	return resp
}

func toSyncResponse(r *domain.SyncResult) *SyncMatchesResponse {
	resp := &SyncMatchesResponse{
		MatchesListed:    r.MatchesListed,
		MatchesProcessed: r.MatchesProcessed,
		MatchesSkipped:   r.MatchesSkipped,
		ChampionsUpdated: r.ChampionsUpdated,
		Rank:             r.Rank,
		Role:             r.Role,
		SyncedAt:         r.SyncedAt,
	}
	if len(r.SkipCounts) > 0 {
		resp.SkipCounts = make(map[string]int, len(r.SkipCounts))
		for reason, n := range r.SkipCounts {
			resp.SkipCounts[string(reason)] = n
		}
	}
	return resp
}

func toCardResponse(c *domain.DailyCard) *CardResponse {
	return &CardResponse{
		ID:           c.ID,
		Date:         c.Date,
		Picks:        c.Picks,
		Avoid:        c.Avoid,
		Ban:          c.Ban,
		Build:        c.Build,
		PatchVersion: c.PatchVersion,
		Source:       string(c.Source),
	}
}
