// Package scheduler periodically syncs linked players whose statistics have
// gone stale.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clutchly/internal/config"
	"clutchly/internal/constants"
	"clutchly/internal/domain"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Syncer interface {
	Sync(ctx context.Context, playerID string) (*domain.SyncResult, error)
}

type StalePlayerStore interface {
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]domain.PlayerProfile, error)
	MarkSyncAttempt(ctx context.Context, id string, at time.Time) error
}

type Scheduler struct {
	cron       *cron.Cron
	schedule   string
	staleAfter time.Duration
	syncer     Syncer
	players    StalePlayerStore
	logger     zerolog.Logger
}

func New(cfg *config.Config, syncer Syncer, players StalePlayerStore, logger zerolog.Logger) *Scheduler {
	logger = logger.With().Str("component", "scheduler").Logger()
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
		),
		schedule:   strings.TrimSpace(cfg.SyncSchedule),
		staleAfter: cfg.SyncStaleAfter,
		syncer:     syncer,
		players:    players,
		logger:     logger,
	}
}

func (s *Scheduler) Enabled() bool {
	return s.schedule != "" && s.schedule != "off"
}

func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.logger.Info().Msg("scheduled sync disabled")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(constants.ScheduledSyncBatch)*constants.SyncTimeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid SYNC_SCHEDULE %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", s.schedule).Dur("stale_after", s.staleAfter).Msg("scheduled sync started")
	return nil
}

// Stop waits for a running batch to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce syncs one batch of stale players, one at a time. Each player's
// attempt is stamped before its sync so players that keep failing rotate to
// the back of the queue. A failing player does not stop the batch.
func (s *Scheduler) RunOnce(ctx context.Context) (synced, failed int) {
	cutoff := time.Now().UTC().Add(-s.staleAfter)
	players, err := s.players.ListStale(ctx, cutoff, constants.ScheduledSyncBatch)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list stale players")
		return 0, 0
	}
	if len(players) == 0 {
		s.logger.Debug().Msg("no stale players")
		return 0, 0
	}

	s.logger.Info().Int("players", len(players)).Msg("starting scheduled sync batch")
	for _, p := range players {
		if ctx.Err() != nil {
			s.logger.Warn().Err(ctx.Err()).Msg("scheduled sync batch interrupted")
			break
		}

		if err := s.players.MarkSyncAttempt(ctx, p.ID, time.Now().UTC()); err != nil {
			s.logger.Warn().Err(err).Str("player_id", p.ID).Msg("failed to record sync attempt")
		}

		result, err := s.syncer.Sync(ctx, p.ID)
		switch {
		case errors.Is(err, domain.ErrNoRankedHistory):
			s.logger.Debug().Str("player_id", p.ID).Msg("player has no ranked history")
			failed++
		case err != nil:
			s.logger.Warn().Err(err).Str("player_id", p.ID).Msg("scheduled sync failed")
			failed++
		default:
			s.logger.Debug().Str("player_id", p.ID).Int("processed", result.MatchesProcessed).Msg("scheduled sync done")
			synced++
		}
	}

	s.logger.Info().Int("synced", synced).Int("failed", failed).Msg("scheduled sync batch finished")
	return synced, failed
}

func Register(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return s.Start()
		},
		OnStop: s.Stop,
	})
}

// cronLogger routes cron's own messages through zerolog.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
