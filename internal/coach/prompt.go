package coach

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var ErrInvalidCard = errors.New("invalid card")

const promptTemplate = `You are a League of Legends ranked coach. Generate tonight's personalized recommendations.

PLAYER INFO:
- Rank: {rank}
- Role: {role}
- Region: {region}

CHAMPION POOL (from their recent ranked games):
{pool}

Based on:
1. Their personal performance (prioritize high win rate champions they're comfortable on)
2. Current meta considerations
3. Which champions in their pool are strong right now

Generate recommendations in this EXACT JSON format (no markdown, no explanation, just JSON):
{
  "picks": [
    {"champion": "ChampionName", "confidence": 85, "reason": "Brief reason why this is their best pick tonight"},
    {"champion": "ChampionName", "confidence": 75, "reason": "Brief reason"},
    {"champion": "ChampionName", "confidence": 70, "reason": "Brief reason"}
  ],
  "avoid": {
    "champion": "ChampionName",
    "reason": "Why they should avoid this champion from their pool tonight"
  },
  "ban": {
    "champion": "ChampionName",
    "reason": "Why this ban helps them specifically"
  },
  "build": {
    "for": "TopPickChampionName",
    "items": ["Item1", "Item2", "Item3", "Item4", "Item5", "Item6"],
    "boots": "BootsName",
    "keystone": "KeystoneName"
  }
}

IMPORTANT:
- Picks MUST come from their champion pool
- Confidence scores should reflect their personal stats, not just meta strength
- Reasons should be personalized (reference their win rate, games played)
- Avoid champion should be from their pool (one they play but shouldn't tonight)
- Ban should counter their champion pool specifically
- Build should be for their top recommended pick`

func BuildPrompt(player PlayerContext, pool []ChampionData) string {
	return strings.NewReplacer(
		"{rank}", player.Rank,
		"{role}", player.Role,
		"{region}", player.Region,
		"{pool}", formatPool(pool),
	).Replace(promptTemplate)
}

func formatPool(pool []ChampionData) string {
	lines := make([]string, len(pool))
	for i, c := range pool {
		line := fmt.Sprintf("- %s: %d games, %d wins, %.1f%% WR", c.Name, c.Games, c.Wins, c.WinRate)
		if c.AvgKDA > 0 {
			line += fmt.Sprintf(", %.2f KDA", c.AvgKDA)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// ParseCard decodes a model reply, tolerating a markdown code fence around
// the JSON.
func ParseCard(text string) (Card, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var card Card
	if err := json.Unmarshal([]byte(cleaned), &card); err != nil {
		return Card{}, fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}

	switch {
	case len(card.Picks) == 0:
		return Card{}, fmt.Errorf("%w: no picks", ErrInvalidCard)
	case card.Avoid.Champion == "":
		return Card{}, fmt.Errorf("%w: missing avoid", ErrInvalidCard)
	case card.Ban.Champion == "":
		return Card{}, fmt.Errorf("%w: missing ban", ErrInvalidCard)
	case card.Build.Items == nil:
		return Card{}, fmt.Errorf("%w: missing build items", ErrInvalidCard)
	}
	for _, p := range card.Picks {
		if p.Champion == "" {
			return Card{}, fmt.Errorf("%w: pick without champion", ErrInvalidCard)
		}
	}

	return card, nil
}
