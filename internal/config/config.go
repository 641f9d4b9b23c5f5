package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIKey         string
	RiotAccountCluster string
	DBPath             string
	ServerPort         string
	LogLevel           string
	RedisURL           string
	AnthropicAPIKey    string
	AnthropicModel     string
	SyncSchedule       string
	SyncStaleAfter     time.Duration
	MatchPacing        time.Duration
	MatchListCount     int
	MatchProcessLimit  int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey:         getEnv("RIOT_API_KEY", ""),
		RiotAccountCluster: getEnv("RIOT_ACCOUNT_CLUSTER", "americas"),
		DBPath:             getEnv("DB_PATH", "clutchly.db"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RedisURL:           getEnv("REDIS_URL", ""),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		SyncSchedule:       getEnv("SYNC_SCHEDULE", "@every 6h"),
	}

	var err error
	if cfg.SyncStaleAfter, err = getEnvDuration("SYNC_STALE_AFTER", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.MatchPacing, err = getEnvDuration("MATCH_PACING", 100*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.MatchListCount, err = getEnvInt("MATCH_LIST_COUNT", 30); err != nil {
		return nil, err
	}
	if cfg.MatchProcessLimit, err = getEnvInt("MATCH_PROCESS_LIMIT", 20); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("account_cluster", cfg.RiotAccountCluster).
		Bool("redis_cache", cfg.RedisURL != "").
		Bool("ai_cards", cfg.AnthropicAPIKey != "").
		Str("sync_schedule", cfg.SyncSchedule).
		Dur("match_pacing", cfg.MatchPacing).
		Int("match_list_count", cfg.MatchListCount).
		Int("match_process_limit", cfg.MatchProcessLimit).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) validate() error {
	if c.RiotAPIKey == "" {
		return fmt.Errorf("RIOT_API_KEY is required")
	}
	if c.MatchListCount <= 0 || c.MatchListCount > 100 {
		return fmt.Errorf("MATCH_LIST_COUNT must be between 1 and 100, got %d", c.MatchListCount)
	}
	if c.MatchProcessLimit <= 0 {
		return fmt.Errorf("MATCH_PROCESS_LIMIT must be positive, got %d", c.MatchProcessLimit)
	}
	if c.MatchPacing < 0 {
		return fmt.Errorf("MATCH_PACING must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

var Module = fx.Provide(Load)
