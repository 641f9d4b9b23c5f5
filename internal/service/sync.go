package service

import (
	"context"
	"fmt"
	"maps"
	"time"

	"clutchly/internal/api"
	"clutchly/internal/config"
	"clutchly/internal/constants"
	"clutchly/internal/domain"
	"clutchly/internal/stats"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type SyncService struct {
	riot         RiotAPI
	players      PlayerStore
	stats        ChampionStatsStore
	pacer        Pacer
	listCount    int
	processLimit int
	group        singleflight.Group
	now          func() time.Time
	logger       zerolog.Logger
}

func NewSyncService(cfg *config.Config, riot RiotAPI, players PlayerStore, stats ChampionStatsStore, pacer Pacer, logger zerolog.Logger) *SyncService {
	return &SyncService{
		riot:         riot,
		players:      players,
		stats:        stats,
		pacer:        pacer,
		listCount:    cfg.MatchListCount,
		processLimit: cfg.MatchProcessLimit,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
}

// Sync ingests the player's recent ranked solo matches and overwrites their
// champion statistics with the result. Concurrent calls for the same player
// share one run.
func (s *SyncService) Sync(ctx context.Context, playerID string) (*domain.SyncResult, error) {
	v, err, shared := s.group.Do(playerID, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.SyncTimeout)
		defer cancel()
		return s.sync(ctx, playerID)
	})
	if shared {
		s.logger.Debug().Str("player_id", playerID).Msg("joined in-flight sync")
	}
	if err != nil {
		return nil, err
	}
	result := *v.(*domain.SyncResult)
	result.SkipCounts = maps.Clone(result.SkipCounts)
	return &result, nil
}

func (s *SyncService) sync(ctx context.Context, playerID string) (*domain.SyncResult, error) {
	log := s.logger.With().Str("player_id", playerID).Logger()

	profile, err := s.players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !profile.IsLinked() {
		return nil, fmt.Errorf("player %s has no linked riot account: %w", playerID, domain.ErrNotFound)
	}
	platform := profile.Region
	if platform == "" {
		platform = constants.DefaultPlatform
	}
	log = log.With().Str("puuid", profile.RiotPuuid).Str("platform", platform).Logger()
	log.Info().Msg("starting sync")

	rank := s.resolveRank(ctx, profile.RiotPuuid, platform, log)

	ids, err := s.riot.ListRecentMatchIDs(ctx, profile.RiotPuuid, platform, s.listCount, constants.RankedSoloQueueID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list matches")
		return nil, err
	}
	if len(ids) == 0 {
		log.Info().Msg("no ranked matches found")
		return nil, domain.ErrNoRankedHistory
	}

	window := ids
	if len(window) > s.processLimit {
		window = window[:s.processLimit]
	}

	outcomes, err := s.fetchMatches(ctx, profile.RiotPuuid, platform, window, log)
	if err != nil {
		return nil, err
	}

	result := &domain.SyncResult{
		PlayerID:      playerID,
		MatchesListed: len(ids),
		SkipCounts:    map[domain.SkipReason]int{},
	}
	participations := make([]domain.MatchParticipation, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Skipped() {
			result.MatchesSkipped++
			result.SkipCounts[o.Skip]++
			continue
		}
		participations = append(participations, o.Participation)
	}
	result.MatchesProcessed = len(participations)

	agg := stats.Aggregate(participations)
	rows := agg.Statistics(playerID)
	if err := s.stats.UpsertBatch(ctx, rows); err != nil {
		log.Error().Err(err).Msg("failed to upsert champion stats")
		return nil, fmt.Errorf("failed to upsert champion stats: %w", err)
	}
	result.ChampionsUpdated = len(rows)

	result.Role = agg.PrimaryRole()
	result.Rank = rank
	result.SyncedAt = s.now()
	if err := s.players.UpdateSyncFields(ctx, playerID, rank, result.Role, result.SyncedAt); err != nil {
		log.Error().Err(err).Msg("failed to update profile")
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	limits := s.riot.GetRateLimitInfo()
	log.Info().
		Int("listed", result.MatchesListed).
		Int("processed", result.MatchesProcessed).
		Int("skipped", result.MatchesSkipped).
		Int("champions", result.ChampionsUpdated).
		Str("rank", result.Rank).
		Str("role", result.Role).
		Str("app_rate_count", limits.AppCount).
		Str("app_rate_limit", limits.AppLimit).
		Str("method_rate_count", limits.MethodCount).
		Msg("sync completed")
	return result, nil
}

// resolveRank returns "{tier} {division}" for ranked solo, or "" when it
// cannot be determined. It never fails the sync.
func (s *SyncService) resolveRank(ctx context.Context, puuid, platform string, log zerolog.Logger) string {
	summoner, err := s.riot.ResolveSummoner(ctx, puuid, platform)
	if err != nil || summoner == nil {
		log.Warn().Err(err).Msg("summoner lookup missed, keeping stored rank")
		return ""
	}

	entries, err := s.riot.FetchRankedEntries(ctx, summoner.ID, platform)
	if err != nil {
		log.Warn().Err(err).Msg("league lookup failed, keeping stored rank")
		return ""
	}
	for _, e := range entries {
		if e.QueueType == constants.RankedSoloQueueType && e.Tier != "" {
			return e.Tier + " " + e.Rank
		}
	}
	log.Debug().Msg("no ranked solo entry")
	return ""
}

// fetchMatches fetches each match in order, one at a time. Only a cancelled
// context ends the loop early; every other failure becomes a skip.
func (s *SyncService) fetchMatches(ctx context.Context, puuid, platform string, ids []string, log zerolog.Logger) ([]domain.MatchOutcome, error) {
	outcomes := make([]domain.MatchOutcome, 0, len(ids))
	for _, id := range ids {
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("sync interrupted: %w", err)
		}
		outcome := s.fetchOne(ctx, puuid, platform, id)
		if outcome.Skipped() {
			log.Warn().Str("match_id", id).Str("reason", string(outcome.Skip)).Msg("skipping match")
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (s *SyncService) fetchOne(ctx context.Context, puuid, platform, matchID string) (outcome domain.MatchOutcome) {
	outcome.MatchID = matchID
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("match_id", matchID).Msg("panic while processing match")
			outcome = domain.MatchOutcome{MatchID: matchID, Skip: domain.SkipMalformed}
		}
	}()

	match, err := s.riot.FetchMatch(ctx, matchID, platform)
	switch {
	case err != nil:
		outcome.Skip = domain.SkipUnavailable
		return outcome
	case match == nil:
		outcome.Skip = domain.SkipNotFound
		return outcome
	}

	participation, skip := extractParticipation(match, puuid)
	if skip != "" {
		outcome.Skip = skip
		return outcome
	}
	participation.MatchID = matchID
	outcome.Participation = participation
	return outcome
}

func extractParticipation(match *api.MatchResponse, puuid string) (domain.MatchParticipation, domain.SkipReason) {
	p := match.Participant(puuid)
	if p == nil {
		return domain.MatchParticipation{}, domain.SkipNotParticipant
	}
	if p.ChampionID <= 0 || p.Kills < 0 || p.Deaths < 0 || p.Assists < 0 {
		return domain.MatchParticipation{}, domain.SkipMalformed
	}
	return domain.MatchParticipation{
		ChampionID:   p.ChampionID,
		ChampionName: p.ChampionName,
		Position:     p.TeamPosition,
		Kills:        p.Kills,
		Deaths:       p.Deaths,
		Assists:      p.Assists,
		Win:          p.Win,
		GameEnd:      time.UnixMilli(match.Info.GameEndTimestamp).UTC(),
	}, ""
}
