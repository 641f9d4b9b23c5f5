package coach

import (
	"fmt"
	"math"
	"sort"

	"clutchly/internal/constants"
	"clutchly/internal/domain"
)

var fallbackItems = []string{
	"Kraken Slayer",
	"Phantom Dancer",
	"Infinity Edge",
	"Lord Dominik's Regards",
	"Bloodthirster",
	"Guardian Angel",
}

// Fallback ranks champions with at least CardMinGames games by win rate. It
// is deterministic for a given pool.
func Fallback(pool []ChampionData) Card {
	var valid []ChampionData
	for _, c := range pool {
		if c.Games >= constants.CardMinGames {
			valid = append(valid, c)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].WinRate > valid[j].WinRate
	})

	top := valid
	if len(top) > 3 {
		top = top[:3]
	}

	card := Card{
		Picks: make([]domain.Pick, len(top)),
		Avoid: domain.ChampionCall{Champion: "None", Reason: "No data"},
		Ban:   domain.ChampionCall{Champion: "Nautilus", Reason: "Strong against most ADCs"},
		Build: domain.Build{
			For:      "Unknown",
			Items:    append([]string(nil), fallbackItems...),
			Boots:    "Berserker's Greaves",
			Keystone: "Lethal Tempo",
		},
	}

	for i, c := range top {
		card.Picks[i] = domain.Pick{
			Champion:   c.Name,
			Confidence: int(math.Round(85 - float64(i)*7)),
			Reason:     fmt.Sprintf("%.0f%% win rate over %d games", c.WinRate, c.Games),
		}
	}
	if len(top) > 0 {
		card.Build.For = top[0].Name
	}
	if len(valid) > 0 {
		worst := valid[len(valid)-1]
		card.Avoid = domain.ChampionCall{
			Champion: worst.Name,
			Reason:   fmt.Sprintf("Only %.0f%% win rate", worst.WinRate),
		}
	}

	return card
}
