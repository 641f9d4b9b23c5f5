// Package coach turns a player's champion statistics into a daily card.
package coach

import (
	"context"
	"sort"

	"clutchly/internal/config"
	"clutchly/internal/constants"
	"clutchly/internal/domain"

	"github.com/rs/zerolog"
)

type ChampionData struct {
	Name    string
	Games   int
	Wins    int
	WinRate float64
	AvgKDA  float64 // 0 when unknown
}

type PlayerContext struct {
	Rank   string
	Role   string
	Region string
}

type Card struct {
	Picks []domain.Pick       `json:"picks"`
	Avoid domain.ChampionCall `json:"avoid"`
	Ban   domain.ChampionCall `json:"ban"`
	Build domain.Build        `json:"build"`
}

// Completer sends a single-turn prompt to a text model and returns the reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	completer Completer
	logger    zerolog.Logger
}

func NewGenerator(completer Completer, logger zerolog.Logger) *Generator {
	return &Generator{completer: completer, logger: logger}
}

// ProvideGenerator builds a Generator backed by Anthropic when a key is set.
// Without one every card comes from the fallback ranker.
func ProvideGenerator(cfg *config.Config, logger zerolog.Logger) *Generator {
	if cfg.AnthropicAPIKey == "" {
		logger.Info().Msg("ANTHROPIC_API_KEY not set, cards will use the fallback ranker")
		return NewGenerator(nil, logger)
	}
	return NewGenerator(NewAnthropicClient(cfg, logger), logger)
}

// Generate asks the model for a card and falls back to the win-rate ranker on
// any failure. It never fails.
func (g *Generator) Generate(ctx context.Context, player PlayerContext, pool []ChampionData) (Card, domain.CardSource) {
	if g.completer == nil || len(pool) == 0 {
		return Fallback(pool), domain.CardSourceFallback
	}

	top := topByGames(pool, constants.CardPromptPoolSize)
	prompt := BuildPrompt(player.withDefaults(), top)
	g.logger.Debug().Int("pool", len(top)).Msg("requesting AI card")

	text, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn().Err(err).Msg("AI card generation failed, using fallback")
		return Fallback(pool), domain.CardSourceFallback
	}

	card, err := ParseCard(text)
	if err != nil {
		g.logger.Warn().Err(err).Str("raw", truncate(text, 500)).Msg("AI card unparseable, using fallback")
		return Fallback(pool), domain.CardSourceFallback
	}

	return card, domain.CardSourceAI
}

func (p PlayerContext) withDefaults() PlayerContext {
	if p.Rank == "" {
		p.Rank = "Gold"
	}
	if p.Role == "" {
		p.Role = "ADC"
	}
	if p.Region == "" {
		p.Region = "NA"
	}
	return p
}

func topByGames(pool []ChampionData, n int) []ChampionData {
	sorted := make([]ChampionData, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Games > sorted[j].Games
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
