package api

import (
	"clutchly/internal/config"

	"golang.org/x/time/rate"
)

// NewPacer returns the token bucket spacing match-detail fetches. The bucket
// is shared by every sync; Riot's ceiling is per API key.
func NewPacer(cfg *config.Config) *rate.Limiter {
	if cfg.MatchPacing <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(cfg.MatchPacing), 1)
}
