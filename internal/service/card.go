package service

import (
	"context"
	"errors"
	"time"

	"clutchly/internal/coach"
	"clutchly/internal/constants"
	"clutchly/internal/domain"

	"github.com/rs/zerolog"
)

type CardService struct {
	players   PlayerStore
	stats     ChampionStatsStore
	cards     CardStore
	generator CardGenerator
	now       func() time.Time
	logger    zerolog.Logger
}

func NewCardService(players PlayerStore, stats ChampionStatsStore, cards CardStore, generator CardGenerator, logger zerolog.Logger) *CardService {
	return &CardService{
		players:   players,
		stats:     stats,
		cards:     cards,
		generator: generator,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *CardService) today() string {
	return s.now().UTC().Format(time.DateOnly)
}

// GenerateCard returns today's card, creating it on first request.
func (s *CardService) GenerateCard(ctx context.Context, playerID string) (*domain.DailyCard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CardTimeout)
	defer cancel()

	date := s.today()
	existing, err := s.cards.GetForDate(ctx, playerID, date)
	if err == nil {
		s.logger.Debug().Str("player_id", playerID).Str("date", date).Msg("returning stored card")
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	player, err := s.players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	champions, err := s.stats.TopByGames(ctx, playerID, constants.CardPoolSize)
	if err != nil {
		return nil, err
	}
	if len(champions) == 0 {
		return nil, domain.ErrNoChampionData
	}

	pool := make([]coach.ChampionData, len(champions))
	for i, c := range champions {
		pool[i] = coach.ChampionData{
			Name:    c.ChampionName,
			Games:   c.GamesPlayed,
			Wins:    c.Wins,
			WinRate: c.WinRate,
			AvgKDA:  c.AvgKDA,
		}
	}

	generated, source := s.generator.Generate(ctx, coach.PlayerContext{
		Rank:   player.Rank,
		Role:   player.Role,
		Region: player.Region,
	}, pool)

	card, err := s.cards.Create(ctx, &domain.DailyCard{
		PlayerID:     playerID,
		Date:         date,
		Picks:        generated.Picks,
		Avoid:        generated.Avoid,
		Ban:          generated.Ban,
		Build:        generated.Build,
		PatchVersion: constants.PatchVersion,
		Source:       source,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("player_id", playerID).Msg("failed to store card")
		return nil, err
	}

	s.logger.Info().Str("player_id", playerID).Str("date", date).Str("source", string(card.Source)).Msg("card generated")
	return card, nil
}

func (s *CardService) GetCard(ctx context.Context, playerID string) (*domain.DailyCard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.cards.GetForDate(ctx, playerID, s.today())
}
