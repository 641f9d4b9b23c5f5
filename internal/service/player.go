package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clutchly/internal/api"
	"clutchly/internal/constants"
	"clutchly/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PlayerService struct {
	riot    RiotAPI
	players PlayerStore
	stats   ChampionStatsStore
	logger  zerolog.Logger
}

func NewPlayerService(riot RiotAPI, players PlayerStore, stats ChampionStatsStore, logger zerolog.Logger) *PlayerService {
	return &PlayerService{riot: riot, players: players, stats: stats, logger: logger}
}

type Profile struct {
	Player    *domain.PlayerProfile
	Champions []domain.ChampionStatistics
	// TrackedChampions counts every champion with stored statistics, not
	// only those in Champions.
	TrackedChampions int
}

// RegisterPlayer creates the profile for an externally authenticated user.
// An empty id gets a generated one.
func (s *PlayerService) RegisterPlayer(ctx context.Context, id, email, region string) (*domain.PlayerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	region = strings.ToLower(strings.TrimSpace(region))
	if region == "" {
		region = constants.DefaultPlatform
	}
	if !api.IsKnownPlatform(region) {
		return nil, fmt.Errorf("unknown region %q: %w", region, domain.ErrInvalidArgument)
	}
	if id == "" {
		id = uuid.NewString()
	}

	player := &domain.PlayerProfile{
		ID:               id,
		Email:            strings.TrimSpace(email),
		Region:           region,
		SubscriptionTier: domain.TierFree,
	}
	if err := s.players.Create(ctx, player); err != nil {
		s.logger.Error().Err(err).Str("player_id", id).Msg("failed to create player")
		return nil, err
	}

	s.logger.Info().Str("player_id", id).Str("region", region).Msg("player registered")
	return player, nil
}

// LinkRiotAccount attaches the Riot ID to the player. A puuid already linked
// to a different player is rejected.
func (s *PlayerService) LinkRiotAccount(ctx context.Context, playerID, gameName, tagLine string) (*domain.PlayerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	gameName, tagLine = strings.TrimSpace(gameName), strings.TrimPrefix(strings.TrimSpace(tagLine), "#")
	if gameName == "" || tagLine == "" {
		return nil, fmt.Errorf("riot id is required (Name#TAG): %w", domain.ErrInvalidArgument)
	}

	if _, err := s.players.Get(ctx, playerID); err != nil {
		return nil, err
	}

	account, err := s.riot.ResolveAccount(ctx, gameName, tagLine)
	if err != nil {
		s.logger.Error().Err(err).Str("name", gameName).Str("tag", tagLine).Msg("failed to resolve account")
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("riot account %s#%s: %w", gameName, tagLine, domain.ErrNotFound)
	}

	existing, err := s.players.GetByPuuid(ctx, account.Puuid)
	switch {
	case err == nil && existing.ID != playerID:
		return nil, domain.ErrAlreadyLinked
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	identity := domain.PlayerIdentity{Puuid: account.Puuid, GameName: account.GameName, TagLine: account.TagLine}
	if err := s.players.LinkRiotAccount(ctx, playerID, identity); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("player_id", playerID).
		Str("puuid", account.Puuid).
		Str("riot_id", account.GameName+"#"+account.TagLine).
		Msg("riot account linked")
	return s.players.Get(ctx, playerID)
}

// GetProfile loads the player, their most played champions and the number of
// tracked champions in parallel.
func (s *PlayerService) GetProfile(ctx context.Context, playerID string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var profile Profile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		player, err := s.players.Get(gctx, playerID)
		profile.Player = player
		return err
	})
	g.Go(func() error {
		champions, err := s.stats.TopByGames(gctx, playerID, constants.CardPoolSize)
		profile.Champions = champions
		return err
	})
	g.Go(func() error {
		n, err := s.stats.Count(gctx, playerID)
		profile.TrackedChampions = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &profile, nil
}
