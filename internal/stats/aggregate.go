package stats

import (
	"sort"
	"time"

	"clutchly/internal/domain"
)

// Accumulator holds the running totals for one champion.
type Accumulator struct {
	ChampionID   int
	ChampionName string
	Games        int
	Wins         int
	Kills        int
	Deaths       int
	Assists      int
	LastPlayed   time.Time
}

func (a Accumulator) Losses() int {
	return a.Games - a.Wins
}

// WinRate is a percentage in [0, 100]; zero games yields 0.
func (a Accumulator) WinRate() float64 {
	if a.Games == 0 {
		return 0
	}
	return 100 * float64(a.Wins) / float64(a.Games)
}

// AvgKDA is (kills+assists)/deaths over per-game averages. A deathless record
// reports kills+assists per game.
func (a Accumulator) AvgKDA() float64 {
	if a.Games == 0 {
		return 0
	}
	games := float64(a.Games)
	kills := float64(a.Kills) / games
	deaths := float64(a.Deaths) / games
	assists := float64(a.Assists) / games
	if deaths == 0 {
		return kills + assists
	}
	return (kills + assists) / deaths
}

type Result struct {
	Champions  map[int]Accumulator
	RoleCounts map[string]int

	// most recent game end per role, used to break primary role ties
	roleLast map[string]time.Time
}

// Aggregate reduces a batch of participations. The result does not depend on
// input order.
func Aggregate(matches []domain.MatchParticipation) Result {
	res := Result{
		Champions:  make(map[int]Accumulator),
		RoleCounts: make(map[string]int),
		roleLast:   make(map[string]time.Time),
	}

	for _, m := range matches {
		if role := NormalizeRole(m.Position); role != "" {
			res.RoleCounts[role]++
			if m.GameEnd.After(res.roleLast[role]) {
				res.roleLast[role] = m.GameEnd
			}
		}

		acc, seen := res.Champions[m.ChampionID]
		if !seen {
			acc = Accumulator{ChampionID: m.ChampionID, ChampionName: m.ChampionName, LastPlayed: m.GameEnd}
		}
		acc.Games++
		if m.Win {
			acc.Wins++
		}
		acc.Kills += m.Kills
		acc.Deaths += m.Deaths
		acc.Assists += m.Assists

		// the name from the latest game wins, ties resolved lexically, so
		// a renamed champion doesn't make the result order dependent
		switch {
		case m.GameEnd.After(acc.LastPlayed):
			acc.LastPlayed = m.GameEnd
			acc.ChampionName = m.ChampionName
		case m.GameEnd.Equal(acc.LastPlayed) && m.ChampionName < acc.ChampionName:
			acc.ChampionName = m.ChampionName
		}

		res.Champions[m.ChampionID] = acc
	}

	return res
}

// PrimaryRole returns the most played role, or "" when no roles were seen.
// Ties go to the role played most recently, then to the lexically smaller name.
func (r Result) PrimaryRole() string {
	best := ""
	bestCount := 0
	for role, count := range r.RoleCounts {
		switch {
		case count > bestCount:
		case count < bestCount:
			continue
		case r.roleLast[role].After(r.roleLast[best]):
		case r.roleLast[role].Equal(r.roleLast[best]) && role < best:
		default:
			continue
		}
		best, bestCount = role, count
	}
	return best
}

// Statistics converts the accumulators into rows for playerID, ordered by
// games played descending then champion id.
func (r Result) Statistics(playerID string) []domain.ChampionStatistics {
	rows := make([]domain.ChampionStatistics, 0, len(r.Champions))
	for _, acc := range r.Champions {
		rows = append(rows, domain.ChampionStatistics{
			PlayerID:     playerID,
			ChampionID:   acc.ChampionID,
			ChampionName: acc.ChampionName,
			GamesPlayed:  acc.Games,
			Wins:         acc.Wins,
			Losses:       acc.Losses(),
			WinRate:      acc.WinRate(),
			AvgKDA:       acc.AvgKDA(),
			LastPlayed:   acc.LastPlayed,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].GamesPlayed != rows[j].GamesPlayed {
			return rows[i].GamesPlayed > rows[j].GamesPlayed
		}
		return rows[i].ChampionID < rows[j].ChampionID
	})
	return rows
}
