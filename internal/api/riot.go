package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"clutchly/internal/config"
	"clutchly/internal/constants"
	"clutchly/internal/domain"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

var errRateLimited = errors.New("riot api rate limited")

// RiotClient wraps the five Riot endpoints the sync pipeline needs. Ordinary
// HTTP failures (4xx/5xx) come back as absent values with a nil error; only
// transport failures return an error, wrapping domain.ErrUpstreamUnavailable.
type RiotClient struct {
	apiKey         string
	accountCluster string
	client         *fasthttp.Client
	cache          Cache
	logger         zerolog.Logger
	hostURL        func(route string) string
	retryBase      time.Duration
	maxRetries     uint64
	rateLimitMu    sync.RWMutex
	rateLimit      RateLimitInfo
}

type RateLimitInfo struct {
	AppLimit    string    `json:"app_limit"`
	AppCount    string    `json:"app_count"`
	MethodLimit string    `json:"method_limit"`
	MethodCount string    `json:"method_count"`
	RetryAfter  int       `json:"retry_after"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Option func(*RiotClient)

// WithHostURL overrides how a routing value ("na1", "americas") becomes a base URL.
func WithHostURL(fn func(route string) string) Option {
	return func(c *RiotClient) { c.hostURL = fn }
}

func WithRetry(base time.Duration, maxRetries uint64) Option {
	return func(c *RiotClient) {
		c.retryBase = base
		c.maxRetries = maxRetries
	}
}

func NewRiotClient(cfg *config.Config, cache Cache, logger zerolog.Logger, opts ...Option) *RiotClient {
	if cache == nil {
		cache = NopCache()
	}
	c := &RiotClient{
		apiKey:         cfg.RiotAPIKey,
		accountCluster: cfg.RiotAccountCluster,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		cache:  cache,
		logger: logger.With().Str("component", "riot").Logger(),
		hostURL: func(route string) string {
			return fmt.Sprintf("https://%s.api.riotgames.com", route)
		},
		retryBase:  constants.RiotRetryBase,
		maxRetries: constants.RiotMaxRetries,
	}
	if c.accountCluster == "" {
		c.accountCluster = DefaultCluster
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProvideRiotClient is the fx constructor; fx does not fill variadic options.
func ProvideRiotClient(cfg *config.Config, cache Cache, logger zerolog.Logger) *RiotClient {
	return NewRiotClient(cfg, cache, logger)
}

func (c *RiotClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *RiotClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if v := string(resp.Header.Peek("X-App-Rate-Limit")); v != "" {
		c.rateLimit.AppLimit = v
	}
	if v := string(resp.Header.Peek("X-App-Rate-Limit-Count")); v != "" {
		c.rateLimit.AppCount = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit")); v != "" {
		c.rateLimit.MethodLimit = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit-Count")); v != "" {
		c.rateLimit.MethodCount = v
	}
	c.rateLimit.RetryAfter = 0
	if v := string(resp.Header.Peek("Retry-After")); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.rateLimit.RetryAfter = secs
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *RiotClient) ResolveAccount(ctx context.Context, gameName, tagLine string) (*AccountResponse, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s", url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[AccountResponse](ctx, c, c.accountCluster, path, constants.AccountCacheTTL)
}

func (c *RiotClient) ResolveSummoner(ctx context.Context, puuid, platform string) (*SummonerResponse, error) {
	path := fmt.Sprintf("/lol/summoner/v4/summoners/by-puuid/%s", url.PathEscape(puuid))
	return doRequest[SummonerResponse](ctx, c, normalizePlatform(platform), path, constants.SummonerCacheTTL)
}

// FetchRankedEntries never returns nil entries for an HTTP failure, only an
// empty slice, so callers can filter by queue without a nil check.
func (c *RiotClient) FetchRankedEntries(ctx context.Context, summonerID, platform string) ([]LeagueEntryResponse, error) {
	path := fmt.Sprintf("/lol/league/v4/entries/by-summoner/%s", url.PathEscape(summonerID))
	entries, err := doRequest[[]LeagueEntryResponse](ctx, c, normalizePlatform(platform), path, constants.LeagueCacheTTL)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return []LeagueEntryResponse{}, nil
	}
	return *entries, nil
}

// ListRecentMatchIDs returns up to count match ids, most recent first. A
// queueID of 0 means no queue filter.
func (c *RiotClient) ListRecentMatchIDs(ctx context.Context, puuid, platform string, count, queueID int) ([]string, error) {
	params := url.Values{}
	params.Set("count", strconv.Itoa(count))
	if queueID != 0 {
		params.Set("queue", strconv.Itoa(queueID))
	}
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids?%s", url.PathEscape(puuid), params.Encode())

	ids, err := doRequest[[]string](ctx, c, ClusterFor(platform), path, constants.MatchListCacheTTL)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		return []string{}, nil
	}
	return *ids, nil
}

func (c *RiotClient) FetchMatch(ctx context.Context, matchID, platform string) (*MatchResponse, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/%s", url.PathEscape(matchID))
	return doRequest[MatchResponse](ctx, c, ClusterFor(platform), path, constants.MatchDetailCacheTTL)
}

func doRequest[T any](ctx context.Context, client *RiotClient, route, path string, ttl time.Duration) (*T, error) {
	cacheKey := route + ":" + path
	if cached, ok, err := client.cache.Get(ctx, cacheKey); err != nil {
		client.logger.Warn().Err(err).Str("key", cacheKey).Msg("cache read failed")
	} else if ok {
		var result T
		if err := json.Unmarshal(cached, &result); err == nil {
			client.logger.Debug().Str("key", cacheKey).Msg("cache hit")
			return &result, nil
		}
		client.logger.Warn().Str("key", cacheKey).Msg("discarding undecodable cache entry")
	}

	status, body, err := client.fetch(ctx, client.hostURL(route)+path)
	if err != nil {
		client.logger.Error().Err(err).Str("route", route).Str("path", path).Msg("riot request failed")
		return nil, err
	}

	if status != fasthttp.StatusOK {
		event := client.logger.Warn()
		if status == fasthttp.StatusNotFound {
			event = client.logger.Debug()
		}
		event.Int("status", status).Str("route", route).Str("path", path).Msg("riot request returned no data")
		return nil, nil
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		client.logger.Warn().Err(err).Str("route", route).Str("path", path).Msg("failed to decode riot response")
		return nil, nil
	}

	cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.CacheWriteTimeout)
	defer cancel()
	if err := client.cache.Set(cacheCtx, cacheKey, body, ttl); err != nil {
		client.logger.Warn().Err(err).Str("key", cacheKey).Msg("cache write failed")
	}

	return &result, nil
}

// fetch performs the GET, retrying 429s with exponential backoff. A 429 that
// outlives the retries is reported as a status, not an error.
func (c *RiotClient) fetch(ctx context.Context, target string) (int, []byte, error) {
	var status int
	var body []byte

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(target)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("X-Riot-Token", c.apiKey)

		var err error
		if deadline, ok := ctx.Deadline(); ok {
			err = c.client.DoDeadline(req, resp, deadline)
		} else {
			err = c.client.DoTimeout(req, resp, constants.ExternalAPITimeout)
		}
		if err != nil {
			return err
		}

		c.updateRateLimit(resp)
		status = resp.StatusCode()
		if status == fasthttp.StatusTooManyRequests {
			c.logger.Warn().
				Str("retry_after", string(resp.Header.Peek("Retry-After"))).
				Str("url", target).
				Msg("riot rate limit hit, backing off")
			return retry.RetryableError(errRateLimited)
		}

		body = append(body[:0], resp.Body()...)
		return nil
	})

	if errors.Is(err, errRateLimited) {
		return fasthttp.StatusTooManyRequests, nil, nil
	}
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return status, body, nil
}

func normalizePlatform(platform string) string {
	p := strings.ToLower(strings.TrimSpace(platform))
	if p == "" {
		return constants.DefaultPlatform
	}
	return p
}
