package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clutchly/internal/domain"
	"clutchly/internal/service"

	"connectrpc.com/connect"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type fakeServices struct {
	syncErr error
}

func (f *fakeServices) RegisterPlayer(_ context.Context, id, email, region string) (*domain.PlayerProfile, error) {
	return &domain.PlayerProfile{ID: "generated", Email: email, Region: "na1", SubscriptionTier: domain.TierFree}, nil
}

func (f *fakeServices) LinkRiotAccount(_ context.Context, playerID, gameName, tagLine string) (*domain.PlayerProfile, error) {
	if gameName == "Taken" {
		return nil, domain.ErrAlreadyLinked
	}
	return &domain.PlayerProfile{ID: playerID, RiotPuuid: "x", RiotName: gameName, RiotTag: tagLine}, nil
}

func (f *fakeServices) GetProfile(_ context.Context, playerID string) (*service.Profile, error) {
	return &service.Profile{
		Player:           &domain.PlayerProfile{ID: playerID, LastSyncAt: time.Unix(1700000000, 0).UTC()},
		Champions:        []domain.ChampionStatistics{{ChampionID: 222, ChampionName: "Jinx", GamesPlayed: 5, Wins: 3, Losses: 2, WinRate: 60}},
		TrackedChampions: 4,
	}, nil
}

func (f *fakeServices) Sync(_ context.Context, playerID string) (*domain.SyncResult, error) {
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return &domain.SyncResult{
		PlayerID:         playerID,
		MatchesListed:    30,
		MatchesProcessed: 19,
		MatchesSkipped:   1,
		SkipCounts:       map[domain.SkipReason]int{domain.SkipNotFound: 1},
		ChampionsUpdated: 4,
		Rank:             "GOLD II",
		Role:             "ADC",
	}, nil
}

func (f *fakeServices) GenerateCard(_ context.Context, playerID string) (*domain.DailyCard, error) {
	return &domain.DailyCard{ID: "c1", PlayerID: playerID, Date: "2024-02-01", Picks: []domain.Pick{{Champion: "Jinx", Confidence: 85}}, Source: domain.CardSourceAI}, nil
}

func (f *fakeServices) GetCard(_ context.Context, playerID string) (*domain.DailyCard, error) {
	return nil, fmt.Errorf("card %s: %w", playerID, domain.ErrNotFound)
}

func (f *fakeServices) Join(_ context.Context, email, source string) (bool, error) {
	if email == "bad" {
		return false, domain.ErrInvalidArgument
	}
	return email != "dup@example.com", nil
}

func newTestServer(t *testing.T, f *fakeServices) *httptest.Server {
	t.Helper()
	s := NewCoachServer(f, f, f, f, zerolog.Nop())
	path, handler := NewCoachServiceHandler(s)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, procedure, body string, out any) int {
	t.Helper()
	resp, err := http.Post(srv.URL+procedure, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", procedure, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", procedure, err)
		}
	}
	return resp.StatusCode
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestSyncMatches(t *testing.T) {
	srv := newTestServer(t, &fakeServices{})

	var got SyncMatchesResponse
	status := call(t, srv, SyncMatchesProcedure, `{"playerId":"p1"}`, &got)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if got.MatchesProcessed != 19 || got.ChampionsUpdated != 4 || got.Rank != "GOLD II" || got.SkipCounts["match_not_found"] != 1 {
		t.Errorf("response = %+v", got)
	}
}

func TestSyncMatches_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		syncErr  error
		wantCode string
		wantHTTP int
	}{
		{"missing player id", `{}`, nil, "invalid_argument", http.StatusBadRequest},
		{"unknown player", `{"playerId":"p1"}`, domain.ErrNotFound, "not_found", http.StatusNotFound},
		{"no ranked games", `{"playerId":"p1"}`, domain.ErrNoRankedHistory, "failed_precondition", http.StatusBadRequest},
		{"riot down", `{"playerId":"p1"}`, fmt.Errorf("%w: eof", domain.ErrUpstreamUnavailable), "unavailable", http.StatusServiceUnavailable},
		{"unexpected", `{"playerId":"p1"}`, errors.New("disk full"), "internal", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeServices{syncErr: tt.syncErr})

			var got errorBody
			status := call(t, srv, SyncMatchesProcedure, tt.body, &got)

			if status != tt.wantHTTP || got.Code != tt.wantCode {
				t.Errorf("got %d %q, want %d %q", status, got.Code, tt.wantHTTP, tt.wantCode)
			}
			if tt.wantCode == "internal" && strings.Contains(got.Message, "disk full") {
				t.Error("internal error details leaked to the client")
			}
		})
	}
}

func TestProfileAndCardProcedures(t *testing.T) {
	srv := newTestServer(t, &fakeServices{})

	var profile ProfileResponse
	if status := call(t, srv, GetProfileProcedure, `{"playerId":"p1"}`, &profile); status != http.StatusOK {
		t.Fatalf("GetProfile status = %d", status)
	}
	if profile.Player.ID != "p1" || profile.Player.LastSyncAt == nil || len(profile.Champions) != 1 || profile.Champions[0].WinRate != 60 || profile.TrackedChampions != 4 {
		t.Errorf("profile = %+v", profile)
	}

	var card CardResponse
	if status := call(t, srv, GenerateCardProcedure, `{"playerId":"p1"}`, &card); status != http.StatusOK {
		t.Fatalf("GenerateCard status = %d", status)
	}
	if card.ID != "c1" || card.Source != "ai" || card.Picks[0].Champion != "Jinx" {
		t.Errorf("card = %+v", card)
	}

	var missing errorBody
	if status := call(t, srv, GetCardProcedure, `{"playerId":"p1"}`, &missing); status != http.StatusNotFound || missing.Code != "not_found" {
		t.Errorf("GetCard = %d %q, want 404 not_found", status, missing.Code)
	}
}

func TestPlayerProcedures(t *testing.T) {
	srv := newTestServer(t, &fakeServices{})

	var player PlayerResponse
	if status := call(t, srv, RegisterPlayerProcedure, `{"email":"a@example.com"}`, &player); status != http.StatusOK {
		t.Fatalf("RegisterPlayer status = %d", status)
	}
	if player.ID != "generated" || player.SubscriptionTier != "free" || player.Linked {
		t.Errorf("player = %+v", player)
	}

	var e errorBody
	if status := call(t, srv, RegisterPlayerProcedure, `{}`, &e); status != http.StatusBadRequest {
		t.Errorf("RegisterPlayer without email status = %d, want 400", status)
	}

	if status := call(t, srv, LinkRiotAccountProcedure, `{"playerId":"p1","gameName":"Faker","tagLine":"KR1"}`, &player); status != http.StatusOK || !player.Linked {
		t.Errorf("LinkRiotAccount = %d %+v", status, player)
	}

	e = errorBody{}
	if status := call(t, srv, LinkRiotAccountProcedure, `{"playerId":"p1","gameName":"Taken","tagLine":"EUW"}`, &e); status != http.StatusConflict || e.Code != "already_exists" {
		t.Errorf("LinkRiotAccount taken = %d %q, want 409 already_exists", status, e.Code)
	}
}

func TestJoinWaitlist(t *testing.T) {
	srv := newTestServer(t, &fakeServices{})

	var got JoinWaitlistResponse
	call(t, srv, JoinWaitlistProcedure, `{"email":"new@example.com"}`, &got)
	if !got.Created || got.Message != "Successfully joined waitlist" {
		t.Errorf("new = %+v", got)
	}

	got = JoinWaitlistResponse{}
	call(t, srv, JoinWaitlistProcedure, `{"email":"dup@example.com"}`, &got)
	if got.Created || got.Message != "Email already registered" {
		t.Errorf("dup = %+v", got)
	}

	var e errorBody
	if status := call(t, srv, JoinWaitlistProcedure, `{"email":"bad"}`, &e); status != http.StatusBadRequest {
		t.Errorf("bad email status = %d, want 400", status)
	}
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{fmt.Errorf("player x: %w", domain.ErrNotFound), connect.CodeNotFound},
		{domain.ErrNoChampionData, connect.CodeFailedPrecondition},
		{domain.ErrAlreadyLinked, connect.CodeAlreadyExists},
		{domain.ErrInvalidArgument, connect.CodeInvalidArgument},
		{fmt.Errorf("sync interrupted: %w", context.DeadlineExceeded), connect.CodeDeadlineExceeded},
		{errors.New("other"), connect.CodeInternal},
	}
	for _, tt := range tests {
		if got := codeFor(tt.err); got != tt.want {
			t.Errorf("codeFor(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
