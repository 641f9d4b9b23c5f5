package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"clutchly/internal/api"
	"clutchly/internal/coach"
	"clutchly/internal/domain"
)

type fakeRiot struct {
	mu sync.Mutex

	accounts  map[string]*api.AccountResponse // "name#tag"
	summoners map[string]*api.SummonerResponse
	entries   map[string][]api.LeagueEntryResponse
	matchIDs  []string
	listErr   error
	matches   map[string]*api.MatchResponse
	matchErr  map[string]error
	panicOn   string

	listCalls  int
	fetchCalls []string
	lastCount  int
	lastQueue  int
	block      chan struct{}
	rateLimit  api.RateLimitInfo
}

func (f *fakeRiot) GetRateLimitInfo() api.RateLimitInfo {
	return f.rateLimit
}

func (f *fakeRiot) ResolveAccount(_ context.Context, gameName, tagLine string) (*api.AccountResponse, error) {
	return f.accounts[gameName+"#"+tagLine], nil
}

func (f *fakeRiot) ResolveSummoner(_ context.Context, puuid, _ string) (*api.SummonerResponse, error) {
	return f.summoners[puuid], nil
}

func (f *fakeRiot) FetchRankedEntries(_ context.Context, summonerID, _ string) ([]api.LeagueEntryResponse, error) {
	return f.entries[summonerID], nil
}

func (f *fakeRiot) ListRecentMatchIDs(_ context.Context, _, _ string, count, queueID int) ([]string, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastCount, f.lastQueue = count, queueID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.matchIDs, nil
}

func (f *fakeRiot) FetchMatch(_ context.Context, matchID, _ string) (*api.MatchResponse, error) {
	f.mu.Lock()
	f.fetchCalls = append(f.fetchCalls, matchID)
	f.mu.Unlock()
	if matchID == f.panicOn {
		panic("corrupt match " + matchID)
	}
	if err := f.matchErr[matchID]; err != nil {
		return nil, err
	}
	return f.matches[matchID], nil
}

func match(id, puuid string, champID int, champ, position string, k, d, a int, win bool, end time.Time) *api.MatchResponse {
	return &api.MatchResponse{
		Metadata: api.MatchMetadata{MatchID: id, Participants: []string{puuid, "other"}},
		Info: api.MatchInfo{
			GameEndTimestamp: end.UnixMilli(),
			QueueID:          420,
			Participants: []api.MatchParticipant{
				{Puuid: "other", ChampionID: 1, ChampionName: "Annie", TeamPosition: "MIDDLE"},
				{Puuid: puuid, ChampionID: champID, ChampionName: champ, TeamPosition: position, Kills: k, Deaths: d, Assists: a, Win: win},
			},
		},
	}
}

type syncUpdate struct {
	rank, role string
	at         time.Time
}

type fakePlayers struct {
	mu      sync.Mutex
	players map[string]*domain.PlayerProfile
	updates []syncUpdate
}

func newFakePlayers(players ...*domain.PlayerProfile) *fakePlayers {
	f := &fakePlayers{players: map[string]*domain.PlayerProfile{}}
	for _, p := range players {
		f.players[p.ID] = p
	}
	return f
}

func (f *fakePlayers) Create(_ context.Context, player *domain.PlayerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.players[player.ID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *player
	f.players[player.ID] = &cp
	return nil
}

func (f *fakePlayers) Get(_ context.Context, id string) (*domain.PlayerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[id]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlayers) GetByPuuid(_ context.Context, puuid string) (*domain.PlayerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.players {
		if p.RiotPuuid == puuid {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePlayers) LinkRiotAccount(_ context.Context, id string, identity domain.PlayerIdentity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.RiotPuuid, p.RiotName, p.RiotTag = identity.Puuid, identity.GameName, identity.TagLine
	return nil
}

func (f *fakePlayers) UpdateSyncFields(_ context.Context, id, rank, role string, syncedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[id]
	if !ok {
		return domain.ErrNotFound
	}
	if rank != "" {
		p.Rank = rank
	}
	if role != "" {
		p.Role = role
	}
	p.LastSyncAt = syncedAt
	f.updates = append(f.updates, syncUpdate{rank, role, syncedAt})
	return nil
}

type fakeStats struct {
	mu      sync.Mutex
	rows    map[string]map[int]domain.ChampionStatistics
	batches int
	err     error
}

func newFakeStats() *fakeStats {
	return &fakeStats{rows: map[string]map[int]domain.ChampionStatistics{}}
}

func (f *fakeStats) UpsertBatch(_ context.Context, rows []domain.ChampionStatistics) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches++
	for _, r := range rows {
		if f.rows[r.PlayerID] == nil {
			f.rows[r.PlayerID] = map[int]domain.ChampionStatistics{}
		}
		f.rows[r.PlayerID][r.ChampionID] = r
	}
	return nil
}

func (f *fakeStats) TopByGames(_ context.Context, playerID string, limit int) ([]domain.ChampionStatistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ChampionStatistics
	for _, r := range f.rows[playerID] {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GamesPlayed != out[j].GamesPlayed {
			return out[i].GamesPlayed > out[j].GamesPlayed
		}
		return out[i].ChampionID < out[j].ChampionID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStats) Count(_ context.Context, playerID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows[playerID]), nil
}

type countingPacer struct {
	mu    sync.Mutex
	waits int
	err   error
}

func (p *countingPacer) Wait(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return p.err
}

type fakeCards struct {
	cards   map[string]*domain.DailyCard
	creates int
}

func (f *fakeCards) GetForDate(_ context.Context, playerID, date string) (*domain.DailyCard, error) {
	if c, ok := f.cards[playerID+"/"+date]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCards) Create(_ context.Context, card *domain.DailyCard) (*domain.DailyCard, error) {
	if f.cards == nil {
		f.cards = map[string]*domain.DailyCard{}
	}
	key := card.PlayerID + "/" + card.Date
	if c, ok := f.cards[key]; ok {
		return c, nil
	}
	f.creates++
	card.ID = fmt.Sprintf("card-%d", f.creates)
	f.cards[key] = card
	return card, nil
}

type fakeGenerator struct {
	calls  int
	player coach.PlayerContext
	pool   []coach.ChampionData
}

func (g *fakeGenerator) Generate(_ context.Context, player coach.PlayerContext, pool []coach.ChampionData) (coach.Card, domain.CardSource) {
	g.calls++
	g.player, g.pool = player, pool
	return coach.Fallback(pool), domain.CardSourceFallback
}

type fakeWaitlist struct {
	emails map[string]string
}

func (f *fakeWaitlist) Add(_ context.Context, entry *domain.WaitlistEntry) (bool, error) {
	if f.emails == nil {
		f.emails = map[string]string{}
	}
	if _, ok := f.emails[entry.Email]; ok {
		return false, nil
	}
	f.emails[entry.Email] = entry.Source
	return true, nil
}
